package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "viewer")
	log.Debug("hidden")
	log.Info("file loaded", slog.Int("rows", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "viewer", rec["component"])
	assert.Equal(t, "file loaded", rec["msg"])
	assert.EqualValues(t, 3, rec["rows"])
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "binviz.log")
	log, closer, err := OpenFile(path, slog.LevelInfo, "test")
	require.NoError(t, err)
	log.Warn("open failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"open failed"`)
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	log, closer, err := OpenFile("", slog.LevelDebug, "test")
	require.NoError(t, err)
	log.Info("nowhere")
	assert.NoError(t, closer.Close())
}
