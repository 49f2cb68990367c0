package selection

import (
	"errors"
	"fmt"

	"binviz/internal/grid"
)

var (
	// ErrNoCell is returned when the coordinate points past the last byte.
	ErrNoCell = errors.New("no cell at coordinate")
	// ErrCounterpartMissing means the grids are out of alignment.
	ErrCounterpartMissing = errors.New("counterpart cell missing")
)

// Selection is the pair of highlighted cells, one per grid.
type Selection struct {
	Hex  grid.Cell
	Char grid.Cell
}

func (s Selection) Index() int {
	return s.Hex.Index
}

// Controller keeps at most one highlighted cell per grid and keeps the two
// highlights on the same coordinate.
type Controller struct {
	hex  *grid.Grid
	char *grid.Grid

	current Selection
	active  bool
}

func New(hex, char *grid.Grid) *Controller {
	return &Controller{hex: hex, char: char}
}

func (c *Controller) grid(kind grid.Kind) *grid.Grid {
	if kind == grid.Hex {
		return c.hex
	}
	return c.char
}

// Select highlights the cell at coord in the kind grid and its counterpart in
// the other grid. Previous highlights are cleared first, whichever grid they
// came from.
func (c *Controller) Select(kind grid.Kind, coord grid.Coordinate) (Selection, error) {
	source, ok := c.grid(kind).Lookup(coord)
	if !ok {
		return Selection{}, fmt.Errorf("%s %+v: %w", kind, coord, ErrNoCell)
	}

	c.Clear()

	c.grid(kind).SetSelected(source.Index, true)
	source.Selected = true

	counterpart, ok := c.grid(kind.Opposite()).Lookup(source.Coordinate)
	if !ok {
		c.setCurrent(source, grid.Cell{Index: -1})
		return c.current, fmt.Errorf("%s %+v: %w", kind.Opposite(), coord, ErrCounterpartMissing)
	}
	c.grid(kind.Opposite()).SetSelected(counterpart.Index, true)
	counterpart.Selected = true

	c.setCurrent(source, counterpart)
	return c.current, nil
}

func (c *Controller) setCurrent(source, counterpart grid.Cell) {
	if source.Kind == grid.Hex {
		c.current = Selection{Hex: source, Char: counterpart}
	} else {
		c.current = Selection{Hex: counterpart, Char: source}
	}
	c.active = true
}

// Current returns the highlighted pair, if any.
func (c *Controller) Current() (Selection, bool) {
	return c.current, c.active
}

// Clear removes both highlights.
func (c *Controller) Clear() {
	if !c.active {
		return
	}
	c.hex.SetSelected(c.current.Hex.Index, false)
	c.char.SetSelected(c.current.Char.Index, false)
	c.current = Selection{}
	c.active = false
}
