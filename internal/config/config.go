package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/gofrs/flock"
)

type Theme struct {
	OffsetColor         string `toml:"offset_color"`
	HexColor            string `toml:"hex_color"`
	CharColor           string `toml:"char_color"`
	SelectionForeground string `toml:"selection_foreground"`
	SelectionBackground string `toml:"selection_background"`
	FocusColor          string `toml:"focus_color"`
	LegendBackground    string `toml:"legend_background"`
	LegendHighlight     string `toml:"legend_highlight"`
	BorderColor         string `toml:"border_color"`
	StatusColor         string `toml:"status_color"`
	WarningColor        string `toml:"warning_color"`
	DisabledColor       string `toml:"disabled_color"`
}

type Display struct {
	// ControlPlaceholder is painted instead of char cells a terminal cannot
	// show, such as control codes. Empty paints them raw.
	ControlPlaceholder string `toml:"control_placeholder"`
	RowHeight          int    `toml:"row_height"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Config struct {
	Theme   Theme   `toml:"theme"`
	Display Display `toml:"display"`
	Log     Log     `toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			OffsetColor:         "#5F87AF",
			HexColor:            "#D0D0D0",
			CharColor:           "#AFD787",
			SelectionForeground: "#000000",
			SelectionBackground: "#FFFFFF",
			FocusColor:          "#FF00FF",
			LegendBackground:    "#0000FF",
			LegendHighlight:     "#FF0000",
			BorderColor:         "#0000FF",
			StatusColor:         "#FFAA00",
			WarningColor:        "#FF5F5F",
			DisabledColor:       "#666666",
		},
		Display: Display{
			ControlPlaceholder: ".",
			RowHeight:          1,
		},
		Log: Log{
			Level: "info",
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "binviz.toml"
	}
	return filepath.Join(home, ".config", "binviz", "binviz.toml")
}

// Load reads the config at path, or at ConfigPath when path is empty. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Display.RowHeight < 1 {
		cfg.Display.RowHeight = 1
	}

	return cfg, nil
}

// Save writes the config to path, or to ConfigPath when path is empty. The
// write holds a lock file next to the config.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

type Styles struct {
	Offset          lipgloss.Style
	Hex             lipgloss.Style
	Char            lipgloss.Style
	Selection       lipgloss.Style
	Legend          lipgloss.Style
	LegendHighlight lipgloss.Style
	Panel           lipgloss.Style
	FocusedPanel    lipgloss.Style
	Status          lipgloss.Style
	Warning         lipgloss.Style
	Disabled        lipgloss.Style
	HelpTitle       lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Offset: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.OffsetColor)),
		Hex: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.HexColor)),
		Char: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.CharColor)),
		// selected cells are drawn inverted
		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SelectionBackground)).
			Foreground(lipgloss.Color(theme.SelectionForeground)),
		Legend: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		LegendHighlight: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.BorderColor)),
		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.FocusColor)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.StatusColor)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.WarningColor)).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DisabledColor)),
		HelpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
	}
}
