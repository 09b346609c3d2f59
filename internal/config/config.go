package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/blockwrap/internal/engine"
	"github.com/dshills/blockwrap/internal/engine/segment"
)

// MaxPanes is the largest number of editor panes.
const MaxPanes = 4

// Config is the parsed configuration file.
type Config struct {
	Editor EditorConfig      `toml:"editor"`
	Log    LogConfig         `toml:"log"`
	Theme  ThemeConfig       `toml:"theme"`
	Keys   map[string]string `toml:"keys"`
}

// EditorConfig holds the [editor] section.
type EditorConfig struct {
	WrapWidth int  `toml:"wrap_width"`
	Panes     int  `toml:"panes"`
	DebugPane bool `toml:"debug_pane"`
}

// LogConfig holds the [log] section. An empty File disables logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ThemeConfig holds the [theme] section. Colours are "#rrggbb".
type ThemeConfig struct {
	Text         string `toml:"text"`
	Background   string `toml:"background"`
	Indent       string `toml:"indent"`
	Continuation string `toml:"continuation"`
	Border       string `toml:"border"`
	Active       string `toml:"active"`
	Debug        string `toml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			WrapWidth: segment.DefaultWrapWidth,
			Panes:     2,
			DebugPane: true,
		},
		Log: LogConfig{Level: "info"},
		Theme: ThemeConfig{
			Text:         "#d0d0d0",
			Background:   "#1c1c1c",
			Indent:       "#3a3a3a",
			Continuation: "#5f87af",
			Border:       "#585858",
			Active:       "#ffaf00",
			Debug:        "#87af87",
		},
		Keys: map[string]string{},
	}
}

// DefaultPath returns the user configuration file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "blockwrap", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, bytes.NewReader(data))
}

// LoadFrom reads a configuration from r over the defaults.
func LoadFrom(r io.Reader) (*Config, error) {
	return parse("<reader>", r)
}

func parse(source string, r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks value ranges, colours and key bindings.
func (c *Config) Validate() error {
	if c.Editor.WrapWidth < segment.MinWrapWidth {
		return fmt.Errorf("%w: %d is below %d", ErrInvalidWrapWidth, c.Editor.WrapWidth, segment.MinWrapWidth)
	}
	if c.Editor.Panes < 1 || c.Editor.Panes > MaxPanes {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPanes, c.Editor.Panes, MaxPanes)
	}
	for name, hex := range c.Theme.colors() {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: %s = %q", ErrInvalidColor, name, hex)
		}
	}
	for key, cmd := range c.Keys {
		if _, err := engine.ParseCommand(cmd); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidBinding, key, err)
		}
	}
	return nil
}

func (t ThemeConfig) colors() map[string]string {
	return map[string]string{
		"text":         t.Text,
		"background":   t.Background,
		"indent":       t.Indent,
		"continuation": t.Continuation,
		"border":       t.Border,
		"active":       t.Active,
		"debug":        t.Debug,
	}
}
