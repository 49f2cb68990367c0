package scroll

import "binviz/internal/grid"

// Listener is told about every offset change, once per view.
type Listener func(view grid.Kind, offset int)

// Sync keeps the vertical offsets of the hex and char views equal.
type Sync struct {
	offsets   [2]int
	rowHeight int
	maxOffset int

	mirroring bool
	listener  Listener
}

func NewSync(rowHeight int) *Sync {
	if rowHeight < 1 {
		rowHeight = 1
	}
	return &Sync{rowHeight: rowHeight, maxOffset: -1}
}

// SetListener registers the function called on offset changes.
func (s *Sync) SetListener(l Listener) {
	s.listener = l
}

// SetMaxOffset bounds both offsets. A negative value removes the bound.
func (s *Sync) SetMaxOffset(limit int) {
	s.maxOffset = limit
	if limit >= 0 && s.offsets[grid.Hex] > limit {
		s.OnScroll(grid.Hex, limit)
	}
}

func (s *Sync) RowHeight() int {
	return s.rowHeight
}

func (s *Sync) Offset(view grid.Kind) int {
	return s.offsets[view]
}

// OnScroll records the offset of source and mirrors it onto the other view.
// Calls made from the listener while a mirror is running are dropped, so a
// view never gets its own offset fed back.
func (s *Sync) OnScroll(source grid.Kind, offset int) {
	if s.mirroring {
		return
	}
	s.mirroring = true
	defer func() { s.mirroring = false }()

	offset = s.clamp(offset)
	s.set(source, offset)
	s.set(source.Opposite(), offset)
}

// JumpTo scrolls the view owning cell to the cell's row.
func (s *Sync) JumpTo(cell grid.Cell) {
	s.OnScroll(cell.Kind, cell.Coordinate.Row*s.rowHeight)
}

// Reset moves both views back to the top without notifying the listener.
func (s *Sync) Reset() {
	s.offsets = [2]int{}
}

func (s *Sync) set(view grid.Kind, offset int) {
	if s.offsets[view] == offset {
		return
	}
	s.offsets[view] = offset
	if s.listener != nil {
		s.listener(view, offset)
	}
}

func (s *Sync) clamp(offset int) int {
	if s.maxOffset >= 0 && offset > s.maxOffset {
		offset = s.maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
