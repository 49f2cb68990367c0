package grid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, data []byte) (*Grid, *Grid) {
	t.Helper()
	hex, char, err := Build(context.Background(), data)
	require.NoError(t, err)
	return hex, char
}

func TestBuildAlignment(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}
	hex, char := build(t, data)

	require.Equal(t, len(data), hex.Len())
	require.Equal(t, len(data), char.Len())
	for i := range data {
		h, ok := hex.Cell(i)
		require.True(t, ok)
		c, ok := char.Cell(i)
		require.True(t, ok)

		assert.Equal(t, i, h.Index)
		assert.Equal(t, h.Index, c.Index)
		assert.Equal(t, h.Coordinate, c.Coordinate)
		assert.Equal(t, Hex, h.Kind)
		assert.Equal(t, Char, c.Kind)
		assert.False(t, h.Selected || c.Selected)
	}
}

func TestCoordinateOf(t *testing.T) {
	assert.Equal(t, Coordinate{Column: 0, Row: 0}, CoordinateOf(0))
	assert.Equal(t, Coordinate{Column: 15, Row: 0}, CoordinateOf(15))
	assert.Equal(t, Coordinate{Column: 0, Row: 1}, CoordinateOf(16))
	assert.Equal(t, Coordinate{Column: 1, Row: 1}, CoordinateOf(17))
	assert.Equal(t, 17, CoordinateOf(17).Index())
}

func TestHexText(t *testing.T) {
	assert.Equal(t, "0a", HexText(10))
	assert.Equal(t, "ff", HexText(255))
	assert.Equal(t, "00", HexText(0))
	assert.Equal(t, "7f", HexText(0x7f))
}

func TestCharTextKeepsRawCodePoint(t *testing.T) {
	assert.Equal(t, "A", CharText('A'))
	assert.Equal(t, "\x00", CharText(0))
	assert.Equal(t, "\x1b", CharText(0x1b))
	assert.Equal(t, "é", CharText(0xe9))
	assert.Equal(t, "ÿ", CharText(0xff))
}

func TestBuildEmpty(t *testing.T) {
	hex, char := build(t, nil)
	assert.Equal(t, 0, hex.Len())
	assert.Equal(t, 0, char.Len())
	assert.Equal(t, 0, hex.Rows())
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hex, char, err := Build(ctx, []byte{1, 2, 3})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, hex)
	assert.Nil(t, char)
}

func TestLookup(t *testing.T) {
	hex, _ := build(t, make([]byte, 20))

	cell, ok := hex.Lookup(Coordinate{Column: 3, Row: 1})
	require.True(t, ok)
	assert.Equal(t, 19, cell.Index)

	_, ok = hex.Lookup(Coordinate{Column: 4, Row: 1})
	assert.False(t, ok, "past end of data")

	_, ok = hex.Lookup(Coordinate{Column: 16, Row: 0})
	assert.False(t, ok, "column out of range")

	_, ok = hex.Lookup(Coordinate{Column: -1, Row: 1})
	assert.False(t, ok)
}

func TestRows(t *testing.T) {
	hex, _ := build(t, make([]byte, 33))
	assert.Equal(t, 3, hex.Rows())
	assert.Len(t, hex.Row(0), RowLength)
	assert.Len(t, hex.Row(2), 1)
	assert.Nil(t, hex.Row(3))
}

func TestRowIsACopy(t *testing.T) {
	hex, _ := build(t, make([]byte, 20))

	row := hex.Row(1)
	row[0].Selected = true
	row[0].Text = "zz"

	cell, ok := hex.Cell(16)
	require.True(t, ok)
	assert.False(t, cell.Selected)
	assert.Equal(t, "00", cell.Text)
}

func TestFind(t *testing.T) {
	hex, _ := build(t, []byte{0x0a, 0xff, 0x0a, 0x00})
	found := hex.Find(func(c Cell) bool { return c.Text == "0a" })
	require.Len(t, found, 2)
	assert.Equal(t, 0, found[0].Index)
	assert.Equal(t, 2, found[1].Index)
}

func TestSetSelected(t *testing.T) {
	hex, _ := build(t, []byte{1, 2})
	assert.True(t, hex.SetSelected(1, true))
	cell, _ := hex.Cell(1)
	assert.True(t, cell.Selected)
	assert.False(t, hex.SetSelected(5, true))
}

func TestKindOpposite(t *testing.T) {
	assert.Equal(t, Char, Hex.Opposite())
	assert.Equal(t, Hex, Char.Opposite())
	assert.Equal(t, "hex", Hex.String())
}
