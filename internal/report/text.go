package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Aman-CERP/docrank/internal/corpus"
	"github.com/Aman-CERP/docrank/internal/search"
)

// NoHitsText is printed for a topic no module matched.
const NoHitsText = "No hits"

// TextReporter writes a human-readable report.
type TextReporter struct {
	w       io.Writer
	styles  Styles
	verbose bool
}

// Report writes one block per topic:
//
//	basics
//	  1. Intro (score 5)
//	     https://learn.microsoft.com/training/modules/m1
//	     /corpus/m1
func (r *TextReporter) Report(c *corpus.Corpus, reports []TopicReport) error {
	bw := bufio.NewWriter(r.w)
	for i, tr := range reports {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		r.topic(bw, c, tr)
	}
	return bw.Flush()
}

func (r *TextReporter) topic(w io.Writer, c *corpus.Corpus, tr TopicReport) {
	s := r.styles
	fmt.Fprintln(w, s.Topic.Render(tr.Name))

	if tr.Ranking.NoHits() {
		fmt.Fprintf(w, "  %s\n", s.NoHits.Render(NoHitsText))
		return
	}

	for i, score := range tr.Ranking.Scores {
		m := c.Module(score.Module)
		if m == nil {
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			s.Rank.Render(fmt.Sprintf("%d.", i+1)),
			s.Title.Render(m.Title()),
			s.Score.Render("(score "+FormatScore(score.Score)+")"))
		fmt.Fprintf(w, "     %s\n", s.URL.Render(m.CanonicalURL()))
		fmt.Fprintf(w, "     %s\n", s.Path.Render(m.Path()))
	}

	if r.verbose {
		r.rawHits(w, c, tr)
	}
}

// rawHits lists, per keyword and then per ranked module, the units the
// keyword matched.
func (r *TextReporter) rawHits(w io.Writer, c *corpus.Corpus, tr TopicReport) {
	s := r.styles
	mods := rankedModules(c, tr.Ranking)

	fmt.Fprintf(w, "  %s\n", s.Section.Render("Raw hits"))
	for _, e := range tr.Entries {
		var blocks []search.EntryHits
		var owners []*corpus.Module
		for _, m := range mods {
			for _, eh := range search.RawHits([]*search.Entry{e}, m) {
				blocks = append(blocks, eh)
				owners = append(owners, m)
			}
		}
		if len(blocks) == 0 {
			continue
		}

		fmt.Fprintf(w, "    %s %s\n",
			s.Keyword.Render(e.Source()),
			s.Score.Render("(weight "+FormatScore(e.Weight())+")"))
		for i, eh := range blocks {
			fmt.Fprintf(w, "      %s\n", s.Title.Render(owners[i].Title()))
			for _, uh := range eh.Units {
				fmt.Fprintf(w, "        %s %d\n", s.Path.Render(uh.Unit.Path()), uh.Hits)
			}
		}
	}
}
