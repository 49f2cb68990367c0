package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binviz/internal/grid"
)

func newEngine(t *testing.T, data []byte) *Engine {
	t.Helper()
	hex, _, err := grid.Build(context.Background(), data)
	require.NoError(t, err)
	return New(hex)
}

var sample = []byte{0x0a, 0xff, 0x0a, 0x00}

func TestSearchCyclesThroughMatches(t *testing.T) {
	e := newEngine(t, sample)

	want := []struct {
		index   int
		outcome Outcome
	}{
		{0, Selected},
		{2, Selected},
		{0, Wrapped},
		{2, Selected},
		{0, Wrapped},
	}
	for i, w := range want {
		r := e.Search("0a")
		assert.Equal(t, w.outcome, r.Outcome, "call %d", i+1)
		assert.Equal(t, w.index, r.Cell.Index, "call %d", i+1)
		assert.True(t, r.Found())
	}
	assert.Equal(t, 2, e.MatchCount())
}

func TestSearchQueryChangeResetsCursor(t *testing.T) {
	e := newEngine(t, sample)
	for range 3 {
		e.Search("0a")
	}

	r := e.Search("ff")
	assert.Equal(t, Selected, r.Outcome)
	assert.Equal(t, 1, r.Cell.Index)
	assert.Equal(t, 1, e.MatchCount())

	r = e.Search("ff")
	assert.Equal(t, Wrapped, r.Outcome)
	assert.Equal(t, 1, r.Cell.Index)
}

func TestSearchNoMatch(t *testing.T) {
	e := newEngine(t, sample)
	e.Search("0a")

	r := e.Search("zz")
	assert.Equal(t, NoMatch, r.Outcome)
	assert.False(t, r.Found())
	assert.Equal(t, 0, e.MatchCount())
	assert.Equal(t, 0, e.Position())

	// a later retry with the same query scans again and stays usable
	r = e.Search("zz")
	assert.Equal(t, NoMatch, r.Outcome)
	r = e.Search("0a")
	assert.Equal(t, Selected, r.Outcome)
	assert.Equal(t, 0, r.Cell.Index)
}

func TestSearchBlankQueryIsIgnored(t *testing.T) {
	e := newEngine(t, sample)
	e.Search("0a")

	for _, q := range []string{"", "  ", "\t"} {
		r := e.Search(q)
		assert.Equal(t, Ignored, r.Outcome)
	}
	assert.Equal(t, 1, e.Position())

	r := e.Search("0a")
	assert.Equal(t, 2, r.Cell.Index, "cursor survives blank queries")
}

func TestSearchIsCaseSensitive(t *testing.T) {
	e := newEngine(t, sample)
	assert.Equal(t, NoMatch, e.Search("FF").Outcome)
}

func TestSearchSubstring(t *testing.T) {
	e := newEngine(t, sample)
	var got []int
	for range 3 {
		got = append(got, e.Search("0").Cell.Index)
	}
	assert.Equal(t, []int{0, 2, 3}, got)
}

func TestPosition(t *testing.T) {
	e := newEngine(t, sample)
	assert.Equal(t, 0, e.Position())

	e.Search("0a")
	assert.Equal(t, 1, e.Position())
	e.Search("0a")
	assert.Equal(t, 2, e.Position())
	e.Search("0a")
	assert.Equal(t, 1, e.Position())
}
