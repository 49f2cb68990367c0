package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "binviz.toml")

	cfg := DefaultConfig()
	cfg.Theme.SelectionBackground = "#123456"
	cfg.Display.ControlPlaceholder = "·"
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binviz.toml")
	content := "[theme]\nhex_color = \"#ABCDEF\"\n\n[display]\nrow_height = 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", cfg.Theme.HexColor)
	assert.Equal(t, DefaultConfig().Theme.CharColor, cfg.Theme.CharColor)
	assert.Equal(t, 1, cfg.Display.RowHeight)
	assert.Equal(t, ".", cfg.Display.ControlPlaceholder)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binviz.toml")
	require.NoError(t, os.WriteFile(path, []byte("[theme\n"), 0644))

	cfg, err := Load(path)
	require.Error(t, err)
	assert.NotNil(t, cfg, "defaults are still returned")
}

func TestNewStyles(t *testing.T) {
	s := NewStyles(&DefaultConfig().Theme)
	assert.True(t, s.Panel.GetBorderTop())
	assert.NotEqual(t, s.Selection.GetBackground(), s.Hex.GetBackground())
}
