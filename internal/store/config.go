package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Config struct {
	// OutputDir is where the TUI writes merged files. Empty means the
	// current working directory.
	OutputDir string `json:"outputDir,omitempty"`

	// OutputPattern names merged files; "{ts}" expands to unix millis.
	OutputPattern string `json:"outputPattern,omitempty"`

	// RestoreSession reloads the last file list when the TUI starts without args.
	RestoreSession bool `json:"restoreSession,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// Theme forces background detection ("light", "dark", "auto").
	Theme string `json:"theme,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.pdfmerge).
	if v := strings.TrimSpace(os.Getenv("PDFMERGE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pdfmerge"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config so an accidental overwrite is recoverable.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by Set, sorted.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var configSetters = map[string]func(*Config, string) error{
	"outputDir": func(c *Config, v string) error {
		c.OutputDir = v
		return nil
	},
	"outputPattern": func(c *Config, v string) error {
		c.OutputPattern = v
		return nil
	},
	"restoreSession": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			c.RestoreSession = true
		case "0", "false", "no", "off", "":
			c.RestoreSession = false
		default:
			return fmt.Errorf("restoreSession: expected true|false, got %q", v)
		}
		return nil
	},
	"tui.glyphs": func(c *Config, v string) error {
		switch v {
		case "", "unicode", "ascii":
		default:
			return fmt.Errorf("tui.glyphs: expected unicode|ascii, got %q", v)
		}
		c.tui().Glyphs = v
		return nil
	},
	"tui.theme": func(c *Config, v string) error {
		switch v {
		case "", "auto", "light", "dark":
		default:
			return fmt.Errorf("tui.theme: expected auto|light|dark, got %q", v)
		}
		c.tui().Theme = v
		return nil
	},
}

func (c *Config) tui() *TUIConfig {
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
	return c.TUI
}

// Set updates one key in place.
func (c *Config) Set(key, value string) error {
	fn, ok := configSetters[strings.TrimSpace(key)]
	if !ok {
		return fmt.Errorf("unknown config key: %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return fn(c, strings.TrimSpace(value))
}

// Get returns the current value of key as Set would accept it.
func (c *Config) Get(key string) (string, bool) {
	switch strings.TrimSpace(key) {
	case "outputDir":
		return c.OutputDir, true
	case "outputPattern":
		return c.OutputPattern, true
	case "restoreSession":
		if c.RestoreSession {
			return "true", true
		}
		return "false", true
	case "tui.glyphs":
		if c.TUI == nil {
			return "", true
		}
		return c.TUI.Glyphs, true
	case "tui.theme":
		if c.TUI == nil {
			return "", true
		}
		return c.TUI.Theme, true
	}
	return "", false
}
