package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const browserVisibleItems = 15

func (m *Model) openBrowser() {
	m.view = ViewOpen
	dir := ""
	if m.path != "" {
		dir = filepath.Dir(m.path)
	}
	if dir == "" {
		dir, _ = os.Getwd()
	}
	m.browserPath = dir
	m.browserIndex = 0
	m.loadBrowserItems()
}

func (m *Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		if m.session.Document() != nil {
			m.view = ViewMain
		}
	case tea.KeyCtrlC:
		return m, m.quit()
	case tea.KeyUp:
		if m.browserIndex > 0 {
			m.browserIndex--
		}
	case tea.KeyDown:
		if m.browserIndex < len(m.browserItems)-1 {
			m.browserIndex++
		}
	case tea.KeyEnter:
		return m.handleBrowserEnter()
	}
	return m, nil
}

func (m *Model) handleBrowserEnter() (tea.Model, tea.Cmd) {
	if m.browserIndex >= len(m.browserItems) {
		return m, nil
	}

	item := m.browserItems[m.browserIndex]
	path := filepath.Join(m.browserPath, item.Name())

	if item.IsDir() {
		m.browserPath = path
		m.loadBrowserItems()
		m.browserIndex = 0
		return m, nil
	}

	// The grids of the current file stay up until the new one is built.
	m.view = ViewMain
	return m, m.loadFile(path, false)
}

func (m *Model) loadBrowserItems() {
	entries, err := os.ReadDir(m.browserPath)
	if err != nil {
		m.browserItems = nil
		m.setWarning(fmt.Sprintf("Error: %v", err))
		return
	}

	m.browserItems = make([]os.DirEntry, 0, len(entries)+1)

	// Sort: directories first, then files
	var dirs, files []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	if filepath.Dir(m.browserPath) != m.browserPath {
		m.browserItems = append(m.browserItems, &parentDirEntry{})
	}
	m.browserItems = append(m.browserItems, dirs...)
	m.browserItems = append(m.browserItems, files...)
}

type parentDirEntry struct{}

func (p *parentDirEntry) Name() string               { return ".." }
func (p *parentDirEntry) IsDir() bool                { return true }
func (p *parentDirEntry) Type() os.FileMode          { return os.ModeDir }
func (p *parentDirEntry) Info() (os.FileInfo, error) { return nil, nil }

func (m *Model) renderOpen() string {
	var b strings.Builder
	b.WriteString("\nOPEN FILE\n")
	b.WriteString("=========\n\n")
	b.WriteString("Path: ")
	b.WriteString(m.browserPath)
	b.WriteString("\n\n")

	startIdx := 0
	if m.browserIndex >= browserVisibleItems {
		startIdx = m.browserIndex - browserVisibleItems + 1
	}

	for i := startIdx; i < len(m.browserItems) && i < startIdx+browserVisibleItems; i++ {
		item := m.browserItems[i]
		prefix := "  "
		if i == m.browserIndex {
			prefix = "> "
		}
		name := item.Name()
		if item.IsDir() {
			name += "/"
		}
		b.WriteString(fmt.Sprintf("%s%s\n", prefix, name))
	}

	b.WriteString("\nEnter opens the file or directory, ESC goes back\n")
	return b.String()
}
