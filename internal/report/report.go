// Package report renders per-topic rankings as text or JSON.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Aman-CERP/docrank/internal/corpus"
	"github.com/Aman-CERP/docrank/internal/search"
)

// TopicReport is the ranking of one topic together with the entries it
// was computed from.
type TopicReport struct {
	Name    string
	Ranking search.Ranking
	Entries []*search.Entry
}

// Build ranks each topic.
func Build(topics []*search.Topic) []TopicReport {
	reports := make([]TopicReport, 0, len(topics))
	for _, t := range topics {
		reports = append(reports, TopicReport{
			Name:    t.Name,
			Ranking: search.Rank(t.Name, t.Entries),
			Entries: t.Entries,
		})
	}
	return reports
}

// Options controls rendering.
type Options struct {
	// Verbose adds the raw per-unit hit breakdown.
	Verbose bool
	// Color enables styled text output.
	Color bool
}

// Reporter renders topic reports against the corpus they were scanned from.
type Reporter interface {
	Report(c *corpus.Corpus, reports []TopicReport) error
}

// New returns the reporter for format ("text" or "json").
func New(w io.Writer, format string, opts Options) (Reporter, error) {
	switch format {
	case "", "text":
		return &TextReporter{w: w, styles: GetStyles(!opts.Color), verbose: opts.Verbose}, nil
	case "json":
		return &JSONReporter{w: w, verbose: opts.Verbose}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// FormatScore renders a score without trailing zeros.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// rankedModules resolves the ranked modules of r in rank order.
func rankedModules(c *corpus.Corpus, r search.Ranking) []*corpus.Module {
	mods := make([]*corpus.Module, 0, len(r.Scores))
	for _, s := range r.Scores {
		if m := c.Module(s.Module); m != nil {
			mods = append(mods, m)
		}
	}
	return mods
}
