package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("CAPTSCREEN_OUTPUT_DIR", "")
	t.Setenv("CAPTSCREEN_FFMPEG_PATH", "")
	t.Setenv("CAPTSCREEN_FRAMERATE", "")
	t.Setenv("CAPTSCREEN_CONTAINER", "")
	t.Setenv("CAPTSCREEN_LOG_LEVEL", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, DefaultFramerate, cfg.Framerate)
	assert.Equal(t, "mp4", cfg.Container)
	assert.Equal(t, DefaultFilenameTemplate, cfg.FilenameTemplate)
	assert.DirExists(t, cfg.StateDir)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	configHome := os.Getenv("XDG_CONFIG_HOME")
	dir := filepath.Join(configHome, "captscreen")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	outputDir := t.TempDir()
	content := `
output_dir = "` + outputDir + `"
framerate = 25
container = ".mkv"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, outputDir, cfg.OutputDir)
	assert.Equal(t, 25, cfg.Framerate)
	assert.Equal(t, "mkv", cfg.Container, "leading dot is stripped")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	outputDir := t.TempDir()
	t.Setenv("CAPTSCREEN_OUTPUT_DIR", outputDir)
	t.Setenv("CAPTSCREEN_FRAMERATE", "60")
	t.Setenv("CAPTSCREEN_CONTAINER", "avi")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, outputDir, cfg.OutputDir)
	assert.Equal(t, 60, cfg.Framerate)
	assert.Equal(t, "avi", cfg.Container)
}

func TestEnvFramerateInvalidIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("CAPTSCREEN_FRAMERATE", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultFramerate, cfg.Framerate)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "videos"), expandTilde("~/videos"))
	assert.Equal(t, "/absolute/path", expandTilde("/absolute/path"))
	assert.Equal(t, "relative", expandTilde("relative"))
}
