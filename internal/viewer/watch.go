package viewer

import (
	"errors"
	"log/slog"
	"path/filepath"

	"binviz/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// ensureWatch points the watcher at path and returns the command waiting for
// its first change. It returns nil when watching is off or already armed.
func (m *Model) ensureWatch(path string) tea.Cmd {
	if !m.watchEnabled {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if m.watcher != nil && m.watcher.Path() == abs {
		return nil
	}
	if err := m.Close(); err != nil {
		m.logger.Warn("close watcher", slog.Any("error", err))
	}

	w, err := watch.New(path, watch.DefaultDebounce)
	if err != nil {
		m.logger.Warn("watch failed", slog.String("path", path), slog.Any("error", err))
		m.setWarning("Cannot watch file: " + err.Error())
		return nil
	}
	m.watcher = w
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		err := w.Next()
		if errors.Is(err, watch.ErrClosed) {
			return nil
		}
		if err != nil {
			return watchErrMsg{err: err}
		}
		return fileChangedMsg{path: w.Path()}
	}
}

func (m *Model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	if m.watcher == nil || m.watcher.Path() != msg.path {
		return m, nil
	}

	cmds := []tea.Cmd{m.waitForChange()}
	doc := m.session.Document()
	if doc == nil {
		return m, tea.Batch(cmds...)
	}

	changed, err := doc.Buffer.HasChangedOnDisk()
	if err != nil {
		// the file may be mid-replace; the next event retries
		m.logger.Debug("change check failed", slog.Any("error", err))
		return m, tea.Batch(cmds...)
	}
	if changed {
		cmds = append(cmds, m.loadFile(doc.Path(), true))
	}
	return m, tea.Batch(cmds...)
}
