package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadReadsFile(t *testing.T) {
	path := writeConfig(t, `{"photos_dir": "/tmp/pics", "width": 640, "fps": 24}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pics", cfg.PhotosDir)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 24.0, cfg.FPS)
	assert.Zero(t, cfg.Height, "unset fields stay zero until Resolve")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"width": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolvePrecedence(t *testing.T) {
	cfg := Config{Width: 640, OutDir: "from-file"}
	cfg.Resolve(Flags{Width: 800, Frames: 10})

	assert.Equal(t, 800, cfg.Width, "flag beats file")
	assert.Equal(t, "from-file", cfg.OutDir, "file value kept without flag")
	assert.Equal(t, 10, cfg.Frames, "flag beats default")
	assert.Equal(t, 720, cfg.Height, "default fills the rest")
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 30.0, cfg.FPS)
	assert.Greater(t, cfg.Workers, 0)
}

func TestResolveDefaultsFromZero(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, "frames", cfg.OutDir)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 300, cfg.Frames)
	assert.Empty(t, cfg.PhotosDir, "no photos dir means synthetic feed")
}
