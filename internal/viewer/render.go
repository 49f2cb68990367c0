package viewer

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"binviz/internal/grid"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Layout of the main view. Every row of the grids is one line per row height.
const (
	offsetWidth      = 10 // "%08x" plus two spaces
	hexCellsWidth    = grid.RowLength*3 - 1 + 4
	hexContentWidth  = offsetWidth + hexCellsWidth
	charContentWidth = grid.RowLength
	panelGap         = 1

	// legend, title, column header, two borders, find bar, status, help
	chromeLines = 8
	// first content line of both panels
	gridTop = 4

	hexCellsLeft = 1 + offsetWidth
	charLeft     = hexContentWidth + 2 + panelGap + 1
)

// hexColumnX is the x of column col relative to the first hex cell. Columns
// are grouped by four with a wider gap in the middle.
func hexColumnX(col int) int {
	x := col * 3
	for j := 0; j < col; j++ {
		if (j+1)%8 == 0 {
			x += 2
		} else if (j+1)%4 == 0 {
			x++
		}
	}
	return x
}

func hexGap(col int) string {
	switch {
	case (col+1)%8 == 0:
		return "   "
	case (col+1)%4 == 0:
		return "  "
	default:
		return " "
	}
}

// panelAt reports which grid the screen column x belongs to.
func (m *Model) panelAt(x int) (grid.Kind, bool) {
	switch {
	case x >= 0 && x < hexContentWidth+2:
		return grid.Hex, true
	case x >= charLeft-1 && x <= charLeft+charContentWidth:
		return grid.Char, true
	}
	return grid.Hex, false
}

// cellAt maps a screen position to a grid coordinate. Positions on gaps,
// borders or padding lines map to nothing.
func (m *Model) cellAt(x, y int) (grid.Kind, grid.Coordinate, bool) {
	line := y - gridTop
	if line < 0 || line >= m.hexView.Height {
		return grid.Hex, grid.Coordinate{}, false
	}

	view := grid.Hex
	col := -1
	if rel := x - hexCellsLeft; rel >= 0 {
		for c := 0; c < grid.RowLength; c++ {
			if cx := hexColumnX(c); rel == cx || rel == cx+1 {
				col = c
				break
			}
		}
	}
	if col < 0 {
		if rel := x - charLeft; rel >= 0 && rel < charContentWidth {
			view, col = grid.Char, rel
		}
	}
	if col < 0 {
		return grid.Hex, grid.Coordinate{}, false
	}

	rh := m.rowHeight()
	abs := line + m.session.ScrollOffset(view)
	if abs%rh != 0 {
		return grid.Hex, grid.Coordinate{}, false
	}
	return view, grid.Coordinate{Column: col, Row: abs / rh}, true
}

// displayChar returns what the terminal paints for a char cell.
func (m *Model) displayChar(text string) string {
	return DisplayText(text, m.config.Display.ControlPlaceholder)
}

// DisplayText returns text as it should be painted in a one column cell. The
// cell text itself is never changed; runes a terminal would act on or could
// not fit in one column are swapped for placeholder. An empty placeholder
// leaves them raw.
func DisplayText(text, placeholder string) string {
	r, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsControl(r) && runewidth.RuneWidth(r) == 1 {
		return text
	}
	if placeholder == "" {
		return text
	}
	return runewidth.FillRight(runewidth.Truncate(placeholder, 1, ""), 1)
}

// refresh repaints both viewports from the grids and reapplies the shared
// scroll offset.
func (m *Model) refresh() {
	doc := m.session.Document()
	if doc == nil {
		m.hexView.SetContent("")
		m.charView.SetContent("")
		return
	}

	rh := m.rowHeight()
	var hex, char strings.Builder
	for row := 0; row < doc.Hex.Rows(); row++ {
		if row > 0 {
			hex.WriteString("\n")
			char.WriteString("\n")
		}

		hex.WriteString(m.styles.Offset.Render(fmt.Sprintf("%08x", row*grid.RowLength)))
		hex.WriteString("  ")
		cells := doc.Hex.Row(row)
		for i, cell := range cells {
			style := m.styles.Hex
			if cell.Selected {
				style = m.styles.Selection
			}
			hex.WriteString(style.Render(cell.Text))
			if i < len(cells)-1 {
				hex.WriteString(hexGap(i))
			}
		}

		for _, cell := range doc.Char.Row(row) {
			style := m.styles.Char
			if cell.Selected {
				style = m.styles.Selection
			}
			char.WriteString(style.Render(m.displayChar(cell.Text)))
		}

		for extra := 1; extra < rh; extra++ {
			hex.WriteString("\n")
			char.WriteString("\n")
		}
	}

	m.hexView.SetContent(hex.String())
	m.charView.SetContent(char.String())
	m.hexView.SetYOffset(m.session.ScrollOffset(grid.Hex))
	m.charView.SetYOffset(m.session.ScrollOffset(grid.Char))
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Legend
	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	switch m.view {
	case ViewHelp:
		b.WriteString(m.renderHelp())
	case ViewOpen:
		b.WriteString(m.renderOpen())
		if m.statusMsg != "" {
			b.WriteString("\n")
			b.WriteString(m.renderStatus())
		}
	default:
		b.WriteString(m.renderMainView())
	}

	return b.String()
}

func (m *Model) renderLegend() string {
	var items []string

	hl := func(text string, highlightIdx int) string {
		var result strings.Builder
		for i, ch := range text {
			if i == highlightIdx {
				result.WriteString(m.styles.LegendHighlight.Render(string(ch)))
			} else {
				result.WriteString(m.styles.Legend.Render(string(ch)))
			}
		}
		return result.String()
	}

	items = append(items, hl("Quit", 0))
	items = append(items, hl("Help", 0))

	switch m.view {
	case ViewMain:
		items = append(items, hl("Open", 0))
		items = append(items, hl("Find", 0))
		if m.input.Value() != "" {
			items = append(items, hl("Next", 0))
		} else {
			items = append(items, m.styles.Disabled.Render("Next"))
		}
		items = append(items, m.styles.LegendHighlight.Render("TAB")+m.styles.Legend.Render(" Grid"))
	case ViewFind:
		items = append(items, m.styles.LegendHighlight.Render("ENTER")+m.styles.Legend.Render(" Next"))
		items = append(items, m.styles.LegendHighlight.Render("ESC")+m.styles.Legend.Render(" Back"))
	default:
		items = append(items, m.styles.LegendHighlight.Render("ESC")+m.styles.Legend.Render(" Back"))
	}

	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	return m.styles.Legend.Width(m.width).Render(legend)
}

func (m *Model) renderMainView() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	doc := m.session.Document()
	if doc == nil {
		if m.loading {
			b.WriteString(fmt.Sprintf("\nLoading %s...\n", m.path))
		} else {
			b.WriteString("\nNo file open. Press O to open a file.\n")
		}
		if m.statusMsg != "" {
			b.WriteString(m.renderStatus())
		}
		return b.String()
	}

	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")

	hexPanel, charPanel := m.styles.Panel, m.styles.Panel
	if m.focus == grid.Hex {
		hexPanel = m.styles.FocusedPanel
	} else {
		charPanel = m.styles.FocusedPanel
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		hexPanel.Render(m.hexView.View()),
		strings.Repeat(" ", panelGap),
		charPanel.Render(m.charView.View()),
	))
	b.WriteString("\n")

	if m.view == ViewFind {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m *Model) renderTitle() string {
	if m.path == "" {
		return m.styles.Disabled.Render("[no file]")
	}
	parts := []string{m.styles.HelpTitle.Render(filepath.Base(m.path))}
	if doc := m.session.Document(); doc != nil {
		parts = append(parts, fmt.Sprintf("%d bytes", doc.Buffer.Size()))
		if sel, ok := m.session.Selection(); ok {
			parts = append(parts, fmt.Sprintf("offset 0x%08x (%d)", sel.Index(), sel.Index()))
			if b, ok := doc.Buffer.ByteAt(sel.Index()); ok {
				parts = append(parts, fmt.Sprintf("value 0x%02x (%d)", b, b))
			}
		}
	}
	if m.loading {
		parts = append(parts, m.styles.Status.Render("loading"))
	}
	return strings.Join(parts, " | ")
}

func (m *Model) renderColumnHeader() string {
	// Offset column plus the panel border
	header := strings.Repeat(" ", hexCellsLeft)

	selCol := -1
	if sel, ok := m.session.Selection(); ok {
		selCol = sel.Hex.Coordinate.Column
	}
	for i := 0; i < grid.RowLength; i++ {
		hex := fmt.Sprintf("%02x", i)
		if i == selCol {
			hex = m.styles.Selection.Render(hex)
		}
		header += hex
		if i < grid.RowLength-1 {
			header += hexGap(i)
		}
	}

	header += strings.Repeat(" ", charLeft-hexCellsLeft-hexCellsWidth)
	for i := 0; i < grid.RowLength; i++ {
		digit := fmt.Sprintf("%x", i)
		if i == selCol {
			digit = m.styles.Selection.Render(digit)
		}
		header += digit
	}
	return header
}

func (m *Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusWarn {
		return m.styles.Warning.Render(m.statusMsg)
	}
	return m.styles.Status.Render(m.statusMsg)
}

func (m *Model) renderHelp() string {
	help := `
HELP - binviz Binary Viewer
===========================

The left grid shows each byte as hex, the right grid the same byte as a
character. Selecting a byte in one grid highlights it in the other.

Find searches the hex text of every byte. Press Enter again to move to the
next match; after the last match the search wraps to the first one.

`
	full := m.help
	full.ShowAll = true
	return help + full.View(m.keys) + "\n\nPress ESC or H to close this help screen.\n"
}
