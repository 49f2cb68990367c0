package grid

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
)

// RowLength is the number of bytes shown per grid row.
const RowLength = 16

type Kind int

const (
	Hex Kind = iota
	Char
)

func (k Kind) String() string {
	switch k {
	case Hex:
		return "hex"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Opposite returns the grid kind paired with k.
func (k Kind) Opposite() Kind {
	if k == Hex {
		return Char
	}
	return Hex
}

type Coordinate struct {
	Column int
	Row    int
}

func CoordinateOf(index int) Coordinate {
	return Coordinate{Column: index % RowLength, Row: index / RowLength}
}

// Index is the byte offset a coordinate points at. It does not check bounds.
func (c Coordinate) Index() int {
	return c.Row*RowLength + c.Column
}

func (c Coordinate) Valid() bool {
	return c.Column >= 0 && c.Column < RowLength && c.Row >= 0
}

// Cell is one element of a grid. Index is the join key between the hex and
// char grids.
type Cell struct {
	Index      int
	Coordinate Coordinate
	Kind       Kind
	Text       string
	Selected   bool
}

type Grid struct {
	kind  Kind
	cells []Cell
}

// buildCheckEvery is how many cells are emitted between context checks.
const buildCheckEvery = 64 * RowLength

// Build converts data into the index-aligned hex and char grids. Either both
// grids are returned or neither is.
func Build(ctx context.Context, data []byte) (*Grid, *Grid, error) {
	hex := &Grid{kind: Hex, cells: make([]Cell, len(data))}
	char := &Grid{kind: Char, cells: make([]Cell, len(data))}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hex.fill(ctx, data, HexText) })
	g.Go(func() error { return char.fill(ctx, data, CharText) })
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return hex, char, nil
}

func (g *Grid) fill(ctx context.Context, data []byte, text func(byte) string) error {
	for i, b := range data {
		if i%buildCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		g.cells[i] = Cell{
			Index:      i,
			Coordinate: CoordinateOf(i),
			Kind:       g.kind,
			Text:       text(b),
		}
	}
	return nil
}

const hexDigits = "0123456789abcdef"

// HexText formats b as two lowercase hex digits.
func HexText(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0f]})
}

// CharText returns b read as a Latin-1 code point. Control bytes are kept as is.
func CharText(b byte) string {
	return string(charmap.ISO8859_1.DecodeByte(b))
}

func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

// Rows is the number of rows needed to lay out every cell.
func (g *Grid) Rows() int {
	n := g.Len()
	return (n + RowLength - 1) / RowLength
}

func (g *Grid) Cell(index int) (Cell, bool) {
	if g == nil || index < 0 || index >= len(g.cells) {
		return Cell{}, false
	}
	return g.cells[index], true
}

// Row returns a copy of the cells of one row. The last row may be short.
func (g *Grid) Row(row int) []Cell {
	if g == nil || row < 0 {
		return nil
	}
	start := row * RowLength
	if start >= len(g.cells) {
		return nil
	}
	end := min(start+RowLength, len(g.cells))
	out := make([]Cell, end-start)
	copy(out, g.cells[start:end])
	return out
}

// Lookup finds the cell at coord. Indices are aligned with coordinates, so the
// lookup is direct, but the found cell must still carry the same coordinate.
func (g *Grid) Lookup(coord Coordinate) (Cell, bool) {
	if !coord.Valid() {
		return Cell{}, false
	}
	cell, ok := g.Cell(coord.Index())
	if !ok || cell.Coordinate != coord {
		return Cell{}, false
	}
	return cell, true
}

// Find returns the cells accepted by match, in index order.
func (g *Grid) Find(match func(Cell) bool) []Cell {
	if g == nil {
		return nil
	}
	var out []Cell
	for _, c := range g.cells {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

// SetSelected sets the highlight flag of the cell at index.
func (g *Grid) SetSelected(index int, selected bool) bool {
	if g == nil || index < 0 || index >= len(g.cells) {
		return false
	}
	g.cells[index].Selected = selected
	return true
}
