package selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binviz/internal/grid"
)

func newGrids(t *testing.T, n int) (*grid.Grid, *grid.Grid) {
	t.Helper()
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	hex, char, err := grid.Build(context.Background(), data)
	require.NoError(t, err)
	return hex, char
}

func selectedIndices(g *grid.Grid) []int {
	var out []int
	for _, c := range g.Find(func(c grid.Cell) bool { return c.Selected }) {
		out = append(out, c.Index)
	}
	return out
}

func TestSelectHexHighlightsCharCounterpart(t *testing.T) {
	hex, char := newGrids(t, 40)
	c := New(hex, char)

	sel, err := c.Select(grid.Hex, grid.CoordinateOf(20))
	require.NoError(t, err)

	assert.Equal(t, 20, sel.Hex.Index)
	assert.Equal(t, 20, sel.Char.Index)
	assert.Equal(t, sel.Hex.Coordinate, sel.Char.Coordinate)
	assert.True(t, sel.Hex.Selected)
	assert.True(t, sel.Char.Selected)
	assert.Equal(t, []int{20}, selectedIndices(hex))
	assert.Equal(t, []int{20}, selectedIndices(char))
}

func TestSelectClearsPreviousPairFromEitherGrid(t *testing.T) {
	hex, char := newGrids(t, 40)
	c := New(hex, char)

	_, err := c.Select(grid.Hex, grid.CoordinateOf(20))
	require.NoError(t, err)
	sel, err := c.Select(grid.Char, grid.CoordinateOf(3))
	require.NoError(t, err)

	assert.Equal(t, 3, sel.Index())
	assert.Equal(t, []int{3}, selectedIndices(hex))
	assert.Equal(t, []int{3}, selectedIndices(char))

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, grid.Hex, cur.Hex.Kind)
	assert.Equal(t, grid.Char, cur.Char.Kind)
}

func TestSelectPastEndIsIgnored(t *testing.T) {
	hex, char := newGrids(t, 20)
	c := New(hex, char)

	_, err := c.Select(grid.Hex, grid.CoordinateOf(2))
	require.NoError(t, err)

	_, err = c.Select(grid.Char, grid.Coordinate{Column: 8, Row: 1})
	require.ErrorIs(t, err, ErrNoCell)

	// the earlier pair is untouched
	assert.Equal(t, []int{2}, selectedIndices(hex))
	assert.Equal(t, []int{2}, selectedIndices(char))
}

func TestSelectMisalignedGridsReportsFault(t *testing.T) {
	hex, _ := newGrids(t, 32)
	_, char := newGrids(t, 16)
	c := New(hex, char)

	sel, err := c.Select(grid.Hex, grid.CoordinateOf(20))
	require.ErrorIs(t, err, ErrCounterpartMissing)
	assert.Equal(t, 20, sel.Hex.Index)
	assert.Empty(t, selectedIndices(char))
}

func TestSelectLastByteAndClear(t *testing.T) {
	hex, char := newGrids(t, 8)
	c := New(hex, char)

	_, err := c.Select(grid.Char, grid.CoordinateOf(7))
	require.NoError(t, err)
	_, err = c.Select(grid.Char, grid.CoordinateOf(8))
	require.ErrorIs(t, err, ErrNoCell)

	c.Clear()
	_, ok := c.Current()
	assert.False(t, ok)
	assert.Empty(t, selectedIndices(hex))
	assert.Empty(t, selectedIndices(char))
}
