package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"binviz/internal/config"
	"binviz/internal/grid"
	"binviz/internal/search"
	"binviz/internal/selection"
	"binviz/internal/session"
	"binviz/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewFind
	ViewOpen
)

type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Watch reloads the open file when it changes on disk.
	Watch bool
}

type Model struct {
	ctx     context.Context
	session *session.Session
	config  *config.Config
	styles  *config.Styles
	logger  *slog.Logger
	keys    keyMap
	help    help.Model

	hexView  viewport.Model
	charView viewport.Model
	input    textinput.Model

	view   View
	focus  grid.Kind
	width  int
	height int

	path    string
	loading bool
	loadSeq int

	watchEnabled bool
	watcher      *watch.Watcher

	// File browser state
	browserPath  string
	browserItems []os.DirEntry
	browserIndex int

	statusMsg  string
	statusWarn bool
}

type fileLoadedMsg struct {
	seq    int
	path   string
	doc    *session.Document
	err    error
	reload bool
}

type fileChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// NewModel creates the viewer. When path is set the file is loaded by the
// command returned from Init; otherwise the file browser is shown.
func NewModel(ctx context.Context, path string, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	input := textinput.New()
	input.Prompt = "Find hex: "
	input.Placeholder = "e.g. 0a"
	input.CharLimit = 64

	m := &Model{
		ctx:          ctx,
		session:      session.New(logger, cfg.Display.RowHeight),
		config:       cfg,
		styles:       config.NewStyles(&cfg.Theme),
		logger:       logger,
		keys:         defaultKeyMap(),
		help:         help.New(),
		hexView:      viewport.New(hexContentWidth, 1),
		charView:     viewport.New(charContentWidth, 1),
		input:        input,
		view:         ViewMain,
		focus:        grid.Hex,
		path:         path,
		watchEnabled: opts.Watch,
	}
	m.session.Scroll().SetListener(func(view grid.Kind, offset int) {
		m.viewport(view).SetYOffset(offset)
	})

	if path == "" {
		m.openBrowser()
	}
	return m
}

func (m *Model) viewport(view grid.Kind) *viewport.Model {
	if view == grid.Hex {
		return &m.hexView
	}
	return &m.charView
}

// Session exposes the core state, mainly for tests and the dump command.
func (m *Model) Session() *session.Session {
	return m.session
}

// Close stops the file watcher, if any.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Close()
	m.watcher = nil
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.path == "" {
		return nil
	}
	return m.loadFile(m.path, false)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case fileLoadedMsg:
		return m.handleLoaded(msg)

	case fileChangedMsg:
		return m.handleFileChanged(msg)

	case watchErrMsg:
		m.logger.Warn("watch error", slog.Any("error", msg.err))
		return m, m.waitForChange()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.view == ViewFind {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) loadFile(path string, reload bool) tea.Cmd {
	m.loadSeq++
	m.loading = true
	seq, ctx := m.loadSeq, m.ctx
	return func() tea.Msg {
		doc, err := session.Load(ctx, path)
		return fileLoadedMsg{seq: seq, path: path, doc: doc, err: err, reload: reload}
	}
}

func (m *Model) handleLoaded(msg fileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.loadSeq {
		// superseded by a later open
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		m.logger.Warn("open failed", slog.String("path", msg.path), slog.Any("error", msg.err))
		m.setWarning(fmt.Sprintf("Error: %v", msg.err))
		return m, nil
	}

	m.session.Replace(msg.doc)
	m.path = msg.path
	m.session.SetViewHeight(m.hexView.Height)
	m.refresh()

	if msg.reload {
		m.logger.Info("file reloaded", slog.String("path", msg.path))
		m.setStatus("Reloaded from disk")
	}
	return m, m.ensureWatch(msg.path)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear status message on any key
	m.statusMsg = ""
	m.statusWarn = false

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewFind:
		return m.handleFindKey(msg)
	case ViewOpen:
		return m.handleOpenKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
	case key.Matches(msg, m.keys.Open):
		m.openBrowser()
	case key.Matches(msg, m.keys.Find):
		m.view = ViewFind
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Next):
		m.runSearch(m.input.Value())
	case key.Matches(msg, m.keys.SwitchGrid):
		m.focus = m.focus.Opposite()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-grid.RowLength)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(grid.RowLength)
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(m.focus, -m.visibleRows()*m.rowHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.focus, m.visibleRows()*m.rowHeight())
	case key.Matches(msg, m.keys.Top):
		m.selectIndex(0)
	case key.Matches(msg, m.keys.Bottom):
		if doc := m.session.Document(); doc != nil {
			m.selectIndex(doc.Hex.Len() - 1)
		}
	}
	return m, nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back, m.keys.Help, m.keys.Quit) {
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
		m.input.Blur()
	case tea.KeyEnter:
		m.runSearch(m.input.Value())
	case tea.KeyCtrlC:
		return m, m.quit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewMain && m.view != ViewFind {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if view, ok := m.panelAt(msg.X); ok {
			m.scrollBy(view, -wheelStep*m.rowHeight())
		}
	case tea.MouseButtonWheelDown:
		if view, ok := m.panelAt(msg.X); ok {
			m.scrollBy(view, wheelStep*m.rowHeight())
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		if view, coord, ok := m.cellAt(msg.X, msg.Y); ok {
			m.selectAt(view, coord)
		}
	}
	return m, nil
}

const wheelStep = 3

func (m *Model) quit() tea.Cmd {
	if err := m.Close(); err != nil {
		m.logger.Warn("close watcher", slog.Any("error", err))
	}
	return tea.Quit
}

func (m *Model) selectAt(view grid.Kind, coord grid.Coordinate) {
	sel, err := m.session.SelectCell(coord, view)
	if err != nil {
		if !errors.Is(err, selection.ErrNoCell) && !errors.Is(err, session.ErrNoDocument) {
			// alignment faults are logged by the session
			m.refresh()
		}
		return
	}
	m.focus = view
	m.ensureVisible(sel.Hex.Coordinate.Row)
	m.refresh()
}

func (m *Model) selectIndex(index int) {
	if index < 0 {
		return
	}
	m.selectAt(m.focus, grid.CoordinateOf(index))
}

func (m *Model) moveSelection(delta int) {
	doc := m.session.Document()
	if doc == nil || doc.Hex.Len() == 0 {
		return
	}

	index := 0
	if sel, ok := m.session.Selection(); ok {
		index = sel.Index() + delta
	}
	index = max(0, min(index, doc.Hex.Len()-1))
	m.selectIndex(index)
}

func (m *Model) ensureVisible(row int) {
	rh := m.rowHeight()
	top := m.session.ScrollOffset(m.focus) / rh
	visRows := m.visibleRows()

	if row < top {
		m.session.OnScroll(m.focus, row*rh)
	} else if row >= top+visRows {
		m.session.OnScroll(m.focus, (row-visRows+1)*rh)
	}
}

func (m *Model) scrollBy(view grid.Kind, delta int) {
	m.session.OnScroll(view, m.session.ScrollOffset(view)+delta)
}

func (m *Model) runSearch(query string) {
	res := m.session.Search(query)
	switch res.Outcome {
	case search.Ignored:
		return
	case search.NoMatch:
		m.setWarning(fmt.Sprintf("Not found: %q", query))
		return
	case search.Wrapped:
		m.setStatus("Wrapped to start. " + m.matchStatus())
	default:
		m.setStatus(m.matchStatus())
	}
	m.focus = grid.Hex
	m.refresh()
}

func (m *Model) matchStatus() string {
	pos, total := m.session.SearchStatus()
	return fmt.Sprintf("Match %d of %d", pos, total)
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusWarn = false
}

func (m *Model) setWarning(msg string) {
	m.statusMsg = msg
	m.statusWarn = true
}

func (m *Model) rowHeight() int {
	return m.session.Scroll().RowHeight()
}

func (m *Model) visibleRows() int {
	return max(m.hexView.Height/m.rowHeight(), 1)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := max(height-chromeLines, 1)
	m.hexView.Height = vpHeight
	m.charView.Height = vpHeight
	m.help.Width = width
	m.input.Width = max(width-len(m.input.Prompt)-2, 10)

	m.session.SetViewHeight(m.hexView.Height)
	m.refresh()
}
