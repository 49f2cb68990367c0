// Package session ties the byte grids, selection, search and scroll state of
// one opened file together and swaps all of it at once when a new file is
// opened.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"binviz/internal/buffer"
	"binviz/internal/grid"
	"binviz/internal/scroll"
	"binviz/internal/search"
	"binviz/internal/selection"
)

var (
	// ErrLoad wraps every failure to read or index a file.
	ErrLoad = errors.New("load failed")
	// ErrNoDocument is returned by operations that need an opened file.
	ErrNoDocument = errors.New("no file open")
)

// Document is a fully loaded file with both grids built.
type Document struct {
	Buffer *buffer.Buffer
	Hex    *grid.Grid
	Char   *grid.Grid
}

func (d *Document) Path() string {
	if d == nil || d.Buffer == nil {
		return ""
	}
	return d.Buffer.Filename()
}

// Load reads path and builds its grids. No partial document is returned.
func Load(ctx context.Context, path string) (*Document, error) {
	buf, err := buffer.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return FromBuffer(ctx, buf)
}

// FromBuffer builds the grids for an already read buffer.
func FromBuffer(ctx context.Context, buf *buffer.Buffer) (*Document, error) {
	hex, char, err := grid.Build(ctx, buf.Data())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, buf.Filename(), err)
	}
	return &Document{Buffer: buf, Hex: hex, Char: char}, nil
}

type Session struct {
	mu sync.Mutex

	doc        *Document
	selection  *selection.Controller
	search     *search.Engine
	scroll     *scroll.Sync
	viewHeight int

	logger *slog.Logger
}

func New(logger *slog.Logger, rowHeight int) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		scroll: scroll.NewSync(rowHeight),
		logger: logger,
	}
}

// Scroll exposes the scroll sync so a painter can register a listener. The
// listener runs with the session locked and must not call back into it.
func (s *Session) Scroll() *scroll.Sync {
	return s.scroll
}

// OpenFile loads path and replaces the current document. On failure the
// current document stays as it was.
func (s *Session) OpenFile(ctx context.Context, path string) error {
	doc, err := Load(ctx, path)
	if err != nil {
		s.logger.Warn("open failed", slog.String("path", path), slog.Any("error", err))
		return err
	}
	s.Replace(doc)
	return nil
}

// Replace installs doc and drops every piece of state tied to the old one.
func (s *Session) Replace(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.selection = selection.New(doc.Hex, doc.Char)
	s.search = search.New(doc.Hex)
	s.scroll.Reset()
	s.updateMaxOffset()

	s.logger.Info("file loaded",
		slog.String("path", doc.Path()),
		slog.Int64("size", doc.Buffer.Size()),
		slog.Int("rows", doc.Hex.Rows()),
		slog.String("sha256", doc.Buffer.Hash()))
}

func (s *Session) Document() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// SelectCell highlights the cell at coord in the kind grid and its
// counterpart.
func (s *Session) SelectCell(coord grid.Coordinate, kind grid.Kind) (selection.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return selection.Selection{}, ErrNoDocument
	}
	sel, err := s.selection.Select(kind, coord)
	s.checkFault(err)
	return sel, err
}

// Selection returns the highlighted pair, if any.
func (s *Session) Selection() (selection.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return selection.Selection{}, false
	}
	return s.selection.Current()
}

// Search moves to the next hex cell containing query, selects it and scrolls
// both views to its row.
func (s *Session) Search(query string) search.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return search.Result{Outcome: search.Ignored}
	}

	res := s.search.Search(query)
	if !res.Found() {
		if res.Outcome == search.NoMatch {
			s.logger.Debug("search found nothing", slog.String("query", query))
		}
		return res
	}

	sel, err := s.selection.Select(grid.Hex, res.Cell.Coordinate)
	s.checkFault(err)
	if err == nil {
		res.Cell = sel.Hex
	}
	s.scroll.JumpTo(res.Cell)
	return res
}

// SearchStatus reports the current match number and total for the last query.
func (s *Session) SearchStatus() (position, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return 0, 0
	}
	return s.search.Position(), s.search.MatchCount()
}

// OnScroll mirrors a view's vertical offset onto the other view.
func (s *Session) OnScroll(view grid.Kind, offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll.OnScroll(view, offset)
}

// ScrollOffset returns the vertical offset of one view.
func (s *Session) ScrollOffset(view grid.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll.Offset(view)
}

// SetViewHeight tells the session how many lines the views show, so the last
// line can be scrolled to the bottom of the view but not past it.
func (s *Session) SetViewHeight(lines int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewHeight = max(lines, 1)
	s.updateMaxOffset()
}

// updateMaxOffset bounds scrolling in lines. Without a view height the last
// row may be scrolled to the top.
func (s *Session) updateMaxOffset() {
	if s.doc == nil {
		return
	}
	rh := s.scroll.RowHeight()
	total := s.doc.Hex.Rows() * rh
	if s.viewHeight > 0 {
		s.scroll.SetMaxOffset(max(total-s.viewHeight, 0))
		return
	}
	s.scroll.SetMaxOffset(max(total-rh, 0))
}

func (s *Session) checkFault(err error) {
	if errors.Is(err, selection.ErrCounterpartMissing) {
		s.logger.Error("grid alignment fault", slog.Any("error", err))
	}
}
