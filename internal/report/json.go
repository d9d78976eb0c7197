package report

import (
	"encoding/json"
	"io"

	"github.com/Aman-CERP/docrank/internal/corpus"
	"github.com/Aman-CERP/docrank/internal/search"
)

// JSONReporter writes the report as a single JSON document.
type JSONReporter struct {
	w       io.Writer
	verbose bool
}

// Document is the JSON report.
type Document struct {
	Topics []TopicDoc `json:"topics"`
}

// TopicDoc is one topic of the JSON report.
type TopicDoc struct {
	Name    string      `json:"name"`
	NoHits  bool        `json:"no_hits"`
	Results []ResultDoc `json:"results"`
}

// ResultDoc is one ranked module.
type ResultDoc struct {
	Rank    int          `json:"rank"`
	Title   string       `json:"title"`
	Score   float64      `json:"score"`
	URL     string       `json:"url"`
	Path    string       `json:"path"`
	RawHits []RawHitsDoc `json:"raw_hits,omitempty"`
}

// RawHitsDoc lists the units of a module one keyword matched.
type RawHitsDoc struct {
	Pattern string       `json:"pattern"`
	Weight  float64      `json:"weight"`
	Units   []UnitHitDoc `json:"units"`
}

// UnitHitDoc is one unit's hit count.
type UnitHitDoc struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Hits int    `json:"hits"`
}

// Report writes the JSON document.
func (r *JSONReporter) Report(c *corpus.Corpus, reports []TopicReport) error {
	doc := Document{Topics: make([]TopicDoc, 0, len(reports))}
	for _, tr := range reports {
		doc.Topics = append(doc.Topics, r.topic(c, tr))
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (r *JSONReporter) topic(c *corpus.Corpus, tr TopicReport) TopicDoc {
	td := TopicDoc{
		Name:    tr.Name,
		NoHits:  tr.Ranking.NoHits(),
		Results: []ResultDoc{},
	}
	for i, score := range tr.Ranking.Scores {
		m := c.Module(score.Module)
		if m == nil {
			continue
		}
		rd := ResultDoc{
			Rank:  i + 1,
			Title: m.Title(),
			Score: score.Score,
			URL:   m.CanonicalURL(),
			Path:  m.Path(),
		}
		if r.verbose {
			rd.RawHits = rawHitsDoc(c, search.RawHits(tr.Entries, m))
		}
		td.Results = append(td.Results, rd)
	}
	return td
}

func rawHitsDoc(c *corpus.Corpus, hits []search.EntryHits) []RawHitsDoc {
	out := make([]RawHitsDoc, 0, len(hits))
	for _, eh := range hits {
		units := make([]UnitHitDoc, 0, len(eh.Units))
		for _, uh := range eh.Units {
			units = append(units, UnitHitDoc{Path: uh.Unit.Path(), URL: c.UnitURL(uh.Unit), Hits: uh.Hits})
		}
		out = append(out, RawHitsDoc{Pattern: eh.Entry.Source(), Weight: eh.Entry.Weight(), Units: units})
	}
	return out
}
