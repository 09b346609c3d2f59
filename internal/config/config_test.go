package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	src := `
[editor]
wrap_width = 24
panes = 1

[log]
level = "debug"

[theme]
text = "#ffffff"

[keys]
"Ctrl+D" = "delete_char_forward"
`
	cfg, err := LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Editor.WrapWidth != 24 || cfg.Editor.Panes != 1 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if !cfg.Editor.DebugPane {
		t.Error("debug_pane default lost")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Theme.Text != "#ffffff" || cfg.Theme.Background != Default().Theme.Background {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if cfg.Keys["Ctrl+D"] != "delete_char_forward" {
		t.Errorf("keys = %v", cfg.Keys)
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"narrow wrap", "[editor]\nwrap_width = 3\n", ErrInvalidWrapWidth},
		{"no panes", "[editor]\npanes = 0\n", ErrInvalidPanes},
		{"too many panes", "[editor]\npanes = 9\n", ErrInvalidPanes},
		{"bad colour", "[theme]\ntext = \"red\"\n", ErrInvalidColor},
		{"unknown command", "[keys]\n\"F2\" = \"explode\"\n", ErrInvalidBinding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadFrom() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine bool
	}{
		{"syntax", "[editor]\nwrap_width = = 3\n", true},
		{"unknown key", "[editor]\ncolumns = 3\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(strings.NewReader(tt.src))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if tt.wantLine && perr.Line != 2 {
				t.Errorf("line = %d, want 2", perr.Line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.WrapWidth != Default().Editor.WrapWidth {
		t.Errorf("wrap width = %d", cfg.Editor.WrapWidth)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\nwrap_width = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.WrapWidth != 30 {
		t.Errorf("wrap width = %d, want 30", cfg.Editor.WrapWidth)
	}
}

// offer sends without blocking the watcher goroutine.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\nwrap_width = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan *Config, 4)
	errs := make(chan error, 4)
	w, err := Watch(path, func(c *Config) { offer(got, c) },
		WithDebounce(10*time.Millisecond),
		WithErrorHandler(func(err error) { offer(errs, err) }))
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\nwrap_width = 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A reload may observe the truncated file first.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Editor.WrapWidth == 50 {
				return
			}
		case err := <-errs:
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	errs := make(chan error, 4)
	w, err := Watch(path, func(*Config) {},
		WithDebounce(10*time.Millisecond),
		WithErrorHandler(func(err error) { offer(errs, err) }))
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\npanes = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-errs:
		if !errors.Is(err, ErrInvalidPanes) {
			t.Errorf("error = %v, want ErrInvalidPanes", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "c.toml"), func(*Config) {})
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() = %v, want ErrWatcherClosed", err)
	}
}
