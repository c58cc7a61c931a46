package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tabedit/internal/grid"
)

type EditorOptions struct {
	Labels []string `toml:"labels"`
}

type LogOptions struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

type Config struct {
	Editor EditorOptions     `toml:"editor"`
	Keymap map[string]string `toml:"keymap"`
	Log    LogOptions        `toml:"log"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Labels: append([]string(nil), grid.DefaultLabels...),
		},
		Keymap: map[string]string{
			"esc":         "quit",
			"up":          "move_up",
			"down":        "move_down",
			"left":        "move_left",
			"right":       "move_right",
			"shift+left":  "widen_left",
			"shift+right": "widen_right",
			"backspace":   "backspace",
		},
	}
}

// Load merges the user's config.toml over Default. A missing file is not an
// error. TABEDIT_LOG_FILE overrides the configured log file.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if err := merge(&cfg, path); err != nil {
		return cfg, err
	}
	if v := os.Getenv("TABEDIT_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return cfg, nil
}

func merge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if userCfg.Editor.Labels != nil {
		if err := validateLabels(userCfg.Editor.Labels); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.Editor.Labels = userCfg.Editor.Labels
	}
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	if userCfg.Log.File != "" {
		cfg.Log.File = userCfg.Log.File
	}
	if userCfg.Log.Debug {
		cfg.Log.Debug = true
	}
	return nil
}

// validateLabels requires one single-cell label per track so every track
// prefix has the same width.
func validateLabels(labels []string) error {
	if len(labels) != grid.TrackCount {
		return fmt.Errorf("editor.labels: want %d labels, got %d", grid.TrackCount, len(labels))
	}
	for _, l := range labels {
		if len([]rune(l)) != 1 || runewidth.StringWidth(l) != 1 {
			return fmt.Errorf("editor.labels: %q must be a single narrow character", l)
		}
	}
	return nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TABEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tabedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tabedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
