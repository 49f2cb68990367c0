package viewer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	SwitchGrid key.Binding
	Find       key.Binding
	Next       key.Binding
	Open       key.Binding
	Help       key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Back       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:        key.NewBinding(key.WithKeys("home", "ctrl+home"), key.WithHelp("home", "first byte")),
		Bottom:     key.NewBinding(key.WithKeys("end", "ctrl+end"), key.WithHelp("end", "last byte")),
		SwitchGrid: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch grid")),
		Find:       key.NewBinding(key.WithKeys("f", "F", "/"), key.WithHelp("f", "find")),
		Next:       key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "next match")),
		Open:       key.NewBinding(key.WithKeys("o", "O"), key.WithHelp("o", "open file")),
		Help:       key.NewBinding(key.WithKeys("h", "H", "?"), key.WithHelp("h", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search / open")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchGrid, k.Find, k.Next, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.SwitchGrid, k.Find, k.Next, k.Confirm},
		{k.Open, k.Back, k.Help, k.Quit},
	}
}
