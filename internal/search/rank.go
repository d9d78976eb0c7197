package search

import (
	"sort"

	"github.com/Aman-CERP/docrank/internal/corpus"
)

// TopN is the number of modules reported per topic.
const TopN = 3

// ModuleScore is a module's weighted score within one topic.
type ModuleScore struct {
	Module string  `json:"module"`
	Score  float64 `json:"score"`
}

// Ranking is the outcome of ranking one topic: up to TopN modules ordered
// by descending score. A ranking with no modules is the "no hits" outcome.
type Ranking struct {
	Topic  string
	Scores []ModuleScore
}

// NoHits reports whether no module had a hit for any entry in the topic.
func (r Ranking) NoHits() bool {
	return len(r.Scores) == 0
}

// WeightedScores sums hits times weight per module across entries. Only
// modules with at least one hit in at least one entry are present.
func WeightedScores(entries []*Entry) map[string]float64 {
	scores := make(map[string]float64)
	for _, e := range entries {
		for module, hits := range e.Results.ModuleHits {
			scores[module] += float64(hits) * e.Weight()
		}
	}
	return scores
}

// Rank orders the modules of a topic by weighted score, highest first, and
// keeps the top TopN. Equal scores are ordered by module path so the result
// does not depend on map iteration order.
func Rank(topic string, entries []*Entry) Ranking {
	scores := WeightedScores(entries)

	result := make([]ModuleScore, 0, len(scores))
	for module, score := range scores {
		result = append(result, ModuleScore{Module: module, Score: score})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Module < result[j].Module
	})
	if len(result) > TopN {
		result = result[:TopN]
	}

	return Ranking{Topic: topic, Scores: result}
}

// UnitHit is the hit count of one unit for one entry.
type UnitHit struct {
	Unit *corpus.Unit
	Hits int
}

// EntryHits lists the units of one module that an entry matched.
type EntryHits struct {
	Entry *Entry
	Units []UnitHit
}

// RawHits returns, for each entry with hits in m, the units of m the entry
// matched together with their counts, in m's unit order. Entries without
// hits in m are omitted.
func RawHits(entries []*Entry, m *corpus.Module) []EntryHits {
	var out []EntryHits
	for _, e := range entries {
		if e.Results.Empty() {
			continue
		}
		var units []UnitHit
		for _, u := range m.Units() {
			if n, ok := e.Results.UnitHits[u.Path()]; ok {
				units = append(units, UnitHit{Unit: u, Hits: n})
			}
		}
		if len(units) > 0 {
			out = append(out, EntryHits{Entry: e, Units: units})
		}
	}
	return out
}
