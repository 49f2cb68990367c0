package search

import (
	"strings"

	"binviz/internal/grid"
)

type Outcome int

const (
	// Ignored means the query was blank and nothing changed.
	Ignored Outcome = iota
	Selected
	NoMatch
	// Wrapped means a full cycle finished and the first match was picked again.
	Wrapped
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Selected:
		return "selected"
	case NoMatch:
		return "no match"
	case Wrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

type Result struct {
	Outcome Outcome
	Cell    grid.Cell
}

// Found reports whether the result carries a cell to select.
func (r Result) Found() bool {
	return r.Outcome == Selected || r.Outcome == Wrapped
}

// Engine runs forward cyclic substring searches over the hex grid text.
type Engine struct {
	hex *grid.Grid

	query   string
	matches []grid.Cell
	cached  bool
	cursor  int
}

func New(hex *grid.Grid) *Engine {
	return &Engine{hex: hex}
}

// Search returns the next match for query. Calling it again with the same
// query moves through the matches and wraps back to the first one.
func (e *Engine) Search(query string) Result {
	if strings.TrimSpace(query) == "" {
		return Result{Outcome: Ignored}
	}

	if query != e.query {
		e.query = query
		e.cursor = 0
		e.matches = nil
		e.cached = false
	}

	if !e.cached {
		matches := e.hex.Find(func(c grid.Cell) bool {
			return strings.Contains(c.Text, query)
		})
		if len(matches) == 0 {
			return Result{Outcome: NoMatch}
		}
		e.matches = matches
		e.cached = true
	}

	n := len(e.matches)
	outcome := Selected
	if e.cursor != 0 && e.cursor%n == 0 {
		outcome = Wrapped
	}

	cell := e.matches[e.cursor%n]
	e.cursor++
	return Result{Outcome: outcome, Cell: cell}
}

// MatchCount is the size of the cached match set, zero before the first hit.
func (e *Engine) MatchCount() int {
	return len(e.matches)
}

// Position is the 1-based number of the match returned last, or 0.
func (e *Engine) Position() int {
	if !e.cached || e.cursor == 0 {
		return 0
	}
	return (e.cursor-1)%len(e.matches) + 1
}
