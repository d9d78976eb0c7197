package search

import (
	"fmt"
	"math"

	"github.com/Aman-CERP/docrank/internal/corpus"
)

// Entry is one weighted keyword pattern within a topic. Weight and pattern
// are fixed at construction; only Results changes while scanning.
type Entry struct {
	topic   string
	weight  float64
	row     int
	pattern *Pattern

	// Results accumulates hits for this entry. It is owned by the entry.
	Results *Results
}

// NewEntry creates an entry for topic. Row is the 1-based keyword file row
// the entry came from (0 if unknown). Weight must be a finite, non-negative
// number.
func NewEntry(topic string, weight float64, pattern *Pattern, row int) (*Entry, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return nil, fmt.Errorf("weight must be a non-negative number, got %v", weight)
	}
	if pattern == nil {
		return nil, fmt.Errorf("pattern is required")
	}
	return &Entry{
		topic:   topic,
		weight:  weight,
		row:     row,
		pattern: pattern,
		Results: NewResults(),
	}, nil
}

// Topic returns the topic name the entry belongs to.
func (e *Entry) Topic() string { return e.topic }

// Weight returns the relevance multiplier.
func (e *Entry) Weight() float64 { return e.weight }

// Row returns the keyword file row the entry was loaded from.
func (e *Entry) Row() int { return e.row }

// Pattern returns the compiled pattern.
func (e *Entry) Pattern() *Pattern { return e.pattern }

// Source returns the pattern text.
func (e *Entry) Source() string { return e.pattern.Source() }

// Results holds hit counts for one entry, keyed by module path and by unit
// path. Every module count equals the sum of the counts of its units.
type Results struct {
	ModuleHits map[string]int
	UnitHits   map[string]int
}

// NewResults returns empty results.
func NewResults() *Results {
	return &Results{
		ModuleHits: make(map[string]int),
		UnitHits:   make(map[string]int),
	}
}

// Add records n hits in u and in u's module. Non-positive n is ignored so
// counts only ever grow.
func (r *Results) Add(u *corpus.Unit, n int) {
	if n <= 0 {
		return
	}
	r.UnitHits[u.Path()] += n
	r.ModuleHits[u.Parent()] += n
}

// Merge adds every count in other to r.
func (r *Results) Merge(other *Results) {
	for k, n := range other.UnitHits {
		r.UnitHits[k] += n
	}
	for k, n := range other.ModuleHits {
		r.ModuleHits[k] += n
	}
}

// Reset discards all counts.
func (r *Results) Reset() {
	clear(r.ModuleHits)
	clear(r.UnitHits)
}

// Empty reports whether no hits have been recorded.
func (r *Results) Empty() bool {
	return len(r.ModuleHits) == 0
}
