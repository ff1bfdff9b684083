package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFilenameTemplate is the default recording filename template (without
// the container extension).
// Available placeholders: {{.Year}}, {{.Month}}, {{.Day}}, {{.Hour}}, {{.Minute}}, {{.Second}}
const DefaultFilenameTemplate = "recording_{{.Year}}-{{.Month}}-{{.Day}}_{{.Hour}}-{{.Minute}}-{{.Second}}"

// DefaultFramerate matches the capture rate the tool has always used.
const DefaultFramerate = 20

type Config struct {
	OutputDir        string
	StateDir         string
	FFmpegPath       string
	Framerate        int
	Container        string // output container extension, e.g. "mp4"
	FilenameTemplate string // Go template for recording file names
	LogLevel         string
}

type fileConfig struct {
	OutputDir        string `toml:"output_dir"`
	FFmpegPath       string `toml:"ffmpeg_path"`
	Framerate        int    `toml:"framerate"`
	Container        string `toml:"container"`
	FilenameTemplate string `toml:"filename_template"`
	LogLevel         string `toml:"log_level"`
}

func Load() (*Config, error) {
	cfg := &Config{
		OutputDir:        ".",
		StateDir:         defaultStateDir(),
		FFmpegPath:       "ffmpeg",
		Framerate:        DefaultFramerate,
		Container:        "mp4",
		FilenameTemplate: DefaultFilenameTemplate,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.OutputDir != "" {
				cfg.OutputDir = expandTilde(fc.OutputDir)
			}
			if fc.FFmpegPath != "" {
				cfg.FFmpegPath = expandTilde(fc.FFmpegPath)
			}
			if fc.Framerate > 0 {
				cfg.Framerate = fc.Framerate
			}
			if fc.Container != "" {
				cfg.Container = strings.TrimPrefix(fc.Container, ".")
			}
			if fc.FilenameTemplate != "" {
				cfg.FilenameTemplate = fc.FilenameTemplate
			}
			if fc.LogLevel != "" {
				cfg.LogLevel = fc.LogLevel
			}
		}
	}

	applyEnvOverrides(cfg)

	// The output dir defaults to the working directory and is only created
	// when it points somewhere else. The state dir must always exist.
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, err
	}
	if cfg.OutputDir != "." {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CAPTSCREEN_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = expandTilde(v)
	}
	if v := os.Getenv("CAPTSCREEN_FFMPEG_PATH"); v != "" {
		cfg.FFmpegPath = expandTilde(v)
	}
	if v := os.Getenv("CAPTSCREEN_FRAMERATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Framerate = n
		}
	}
	if v := os.Getenv("CAPTSCREEN_CONTAINER"); v != "" {
		cfg.Container = strings.TrimPrefix(v, ".")
	}
	if v := os.Getenv("CAPTSCREEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "captscreen")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "captscreen")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "captscreen")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "captscreen")
	}
	return filepath.Join(os.TempDir(), "captscreen")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
