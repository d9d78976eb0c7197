package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_TieBreakByModulePath(t *testing.T) {
	// Given: modules A=10, B=7, C=7, D=3 from a single weight-1 entry
	c := buildCorpus(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1})
	e := newEntry(t, "topic", 1, "x")
	hits := map[string]int{"a": 10, "c": 7, "b": 7, "d": 3}
	for name, n := range hits {
		e.Results.Add(moduleNamed(t, c, name).Units()[0], n)
	}

	// When: ranking repeatedly
	for i := 0; i < 20; i++ {
		r := Rank("topic", []*Entry{e})

		// Then: top 3 with B before C every time
		require.Len(t, r.Scores, TopN)
		assert.Equal(t, moduleNamed(t, c, "a").Path(), r.Scores[0].Module)
		assert.Equal(t, moduleNamed(t, c, "b").Path(), r.Scores[1].Module)
		assert.Equal(t, moduleNamed(t, c, "c").Path(), r.Scores[2].Module)
		assert.Equal(t, []float64{10, 7, 7}, []float64{r.Scores[0].Score, r.Scores[1].Score, r.Scores[2].Score})
	}
}

func TestRank_NoHits(t *testing.T) {
	r := Rank("empty", []*Entry{newEntry(t, "empty", 1, "x")})

	assert.True(t, r.NoHits())
	assert.Equal(t, "empty", r.Topic)
	assert.Empty(t, r.Scores)

	assert.True(t, Rank("none", nil).NoHits())
}

func TestRank_WeightedSum(t *testing.T) {
	// Given: M1 has 3 "error" + 1 "warn", M2 has 2 "warn"
	c := buildCorpus(t, map[string]int{"m1": 2, "m2": 1})
	m1 := moduleNamed(t, c, "m1")
	m2 := moduleNamed(t, c, "m2")
	errEntry := newEntry(t, "basics", 1.0, "error")
	warnEntry := newEntry(t, "basics", 2.0, "warn")
	errEntry.Results.Add(m1.Units()[0], 2)
	errEntry.Results.Add(m1.Units()[1], 1)
	warnEntry.Results.Add(m1.Units()[1], 1)
	warnEntry.Results.Add(m2.Units()[0], 2)

	r := Rank("basics", []*Entry{errEntry, warnEntry})

	require.Len(t, r.Scores, 2)
	assert.Equal(t, ModuleScore{Module: m1.Path(), Score: 5}, r.Scores[0])
	assert.Equal(t, ModuleScore{Module: m2.Path(), Score: 4}, r.Scores[1])
}

func TestWeightedScores_Linearity(t *testing.T) {
	c := buildCorpus(t, map[string]int{"m1": 1, "m2": 1})
	m1 := moduleNamed(t, c, "m1")
	m2 := moduleNamed(t, c, "m2")

	build := func(weight float64) []*Entry {
		a := newEntry(t, "t", weight, "a")
		b := newEntry(t, "t", 1.5, "b")
		a.Results.Add(m1.Units()[0], 4)
		a.Results.Add(m2.Units()[0], 1)
		b.Results.Add(m1.Units()[0], 2)
		return []*Entry{a, b}
	}

	base := WeightedScores(build(2))
	scaled := WeightedScores(build(2 * 3))

	// Entry a contributes 8 to m1 and 2 to m2 at weight 2; k=3 adds (k-1)x that.
	assert.InDelta(t, base[m1.Path()]+2*8, scaled[m1.Path()], 1e-9)
	assert.InDelta(t, base[m2.Path()]+2*2, scaled[m2.Path()], 1e-9)
}

func TestRank_ZeroWeightHitsStillQualify(t *testing.T) {
	c := buildCorpus(t, map[string]int{"m1": 1})
	m1 := moduleNamed(t, c, "m1")
	e := newEntry(t, "t", 0, "x")
	e.Results.Add(m1.Units()[0], 5)

	r := Rank("t", []*Entry{e})

	require.False(t, r.NoHits())
	assert.Equal(t, ModuleScore{Module: m1.Path(), Score: 0}, r.Scores[0])
}

func TestRawHits(t *testing.T) {
	c := buildCorpus(t, map[string]int{"m1": 3, "m2": 1})
	m1 := moduleNamed(t, c, "m1")
	m2 := moduleNamed(t, c, "m2")
	a := newEntry(t, "t", 1, "a")
	b := newEntry(t, "t", 1, "b")
	none := newEntry(t, "t", 1, "c")
	a.Results.Add(m1.Units()[2], 1)
	a.Results.Add(m1.Units()[0], 2)
	a.Results.Add(m2.Units()[0], 9)
	b.Results.Add(m2.Units()[0], 1)

	got := RawHits([]*Entry{a, b, none}, m1)

	// Only entry a has hits in m1, in unit order, without m2's units
	require.Len(t, got, 1)
	assert.Same(t, a, got[0].Entry)
	require.Len(t, got[0].Units, 2)
	assert.Equal(t, UnitHit{Unit: m1.Units()[0], Hits: 2}, got[0].Units[0])
	assert.Equal(t, UnitHit{Unit: m1.Units()[2], Hits: 1}, got[0].Units[1])

	assert.Len(t, RawHits([]*Entry{a, b, none}, m2), 2)
}
