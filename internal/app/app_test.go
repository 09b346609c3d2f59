package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/config"
	"github.com/dshills/blockwrap/internal/render"
)

func noConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.toml")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = noConfig(t)
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func keyRune(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func key(k backend.Key, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Mod: mod}
}

func ctrl(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyCtrl, Rune: r, Mod: backend.ModCtrl}
}

func post(t *testing.T, b backend.Backend, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		if err := b.PostEvent(ev); err != nil {
			t.Fatalf("PostEvent(%+v) error: %v", ev, err)
		}
	}
}

func TestTypingAndQuit(t *testing.T) {
	mem := backend.NewMemory(100, 20)
	a := newApp(t, Options{Backend: mem})
	post(t, mem, keyRune('x'), keyRune('y'), key(backend.KeyEscape, 0))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := a.Active().Editor.Text(); !strings.HasPrefix(got, "xyPane 1:\n") {
		t.Errorf("Text() = %q", got)
	}
	if got := mem.Row(0); !strings.HasPrefix(got, " pane 1") {
		t.Errorf("title row = %q", got)
	}
	if got := mem.Row(1); !strings.HasPrefix(got, " xyPane 1:") {
		t.Errorf("first text row = %q", got)
	}
	if x, y, visible := mem.Cursor(); !visible || x != 3 || y != 1 {
		t.Errorf("cursor = (%d,%d,%t), want (3,1,true)", x, y, visible)
	}
}

func TestPaneSwitch(t *testing.T) {
	mem := backend.NewMemory(100, 20)
	a := newApp(t, Options{Backend: mem})
	post(t, mem, ctrl('w'), keyRune('z'), key(backend.KeyEscape, 0))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	docs := a.Documents()
	if len(docs) != 2 {
		t.Fatalf("panes = %d, want 2", len(docs))
	}
	if got := docs[1].Editor.Text(); !strings.HasPrefix(got, "zPane 2:") {
		t.Errorf("pane 2 text = %q", got)
	}
	if got := docs[0].Editor.Text(); !strings.HasPrefix(got, "Pane 1:") {
		t.Errorf("pane 1 text = %q", got)
	}

	a.focus(-1)
	if a.active != 1 {
		t.Errorf("focus(-1) = %d, want 1", a.active)
	}
	a.focus(2)
	if a.active != 0 {
		t.Errorf("focus(2) = %d, want 0", a.active)
	}
}

func TestCancelledContextQuits(t *testing.T) {
	mem := backend.NewMemory(80, 12)
	a := newApp(t, Options{Backend: mem})
	post(t, mem, key(backend.KeyF2, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := a.Message(); got != "F2 is not bound" {
		t.Errorf("Message() = %q", got)
	}
}

func TestRunTwice(t *testing.T) {
	a := newApp(t, Options{Backend: backend.NewMemory(80, 12)})
	a.running.Store(true)
	if err := a.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestDebugPaneActions(t *testing.T) {
	mem := backend.NewMemory(100, 20)
	a := newApp(t, Options{Backend: mem})
	alt := func(k backend.Key) backend.Event { return key(k, backend.ModAlt) }
	post(t, mem, alt(backend.KeyDown), alt(backend.KeyDown), alt(backend.KeyUp), key(backend.KeyF12, 0), key(backend.KeyEscape, 0))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if a.debug {
		t.Error("F12 did not hide the debug pane")
	}
	if a.debugScroll != 10 {
		t.Errorf("debugScroll = %d, want 10", a.debugScroll)
	}
	if got := mem.Row(0); strings.Contains(got, "state") {
		t.Errorf("debug pane still drawn: %q", got)
	}
}

func TestResize(t *testing.T) {
	mem := backend.NewMemory(100, 20)
	a := newApp(t, Options{Backend: mem})
	mem.Resize(40, 6)
	post(t, mem, key(backend.KeyEscape, 0))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// 6 rows: title, 4 text rows, status
	if got := len(a.Active().Editor.Rows()); got > 4 {
		t.Errorf("rows = %d, want at most 4", got)
	}
}

// started wires a backend and renderer without running the loop.
func started(t *testing.T, opts Options) (*Application, *backend.Memory) {
	t.Helper()
	mem := backend.NewMemory(100, 20)
	a := newApp(t, opts)
	a.backend = mem
	a.renderer = render.New(mem, a.theme)
	a.layout()
	return a, mem
}

func TestReload(t *testing.T) {
	a, _ := started(t, Options{
		Files: []string{writeFile(t, "long.txt", strings.Repeat("w", 24)+"\n")},
	})
	if got := len(a.Active().Editor.Rows()); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}

	cfg := config.Default()
	cfg.Editor.WrapWidth = 10
	cfg.Editor.DebugPane = false
	cfg.Keys = map[string]string{"F2": "indent"}
	if err := a.handle(backend.Event{Type: backend.EventInterrupt, Data: cfg}); err != nil {
		t.Fatalf("handle() error: %v", err)
	}
	if got := len(a.Active().Editor.Rows()); got != 3 {
		t.Errorf("rows after reload = %d, want 3", got)
	}
	if a.debug {
		t.Error("debug pane still shown")
	}
	if a.Config() != cfg {
		t.Error("config not replaced")
	}
	if got := a.Message(); got != "config reloaded" {
		t.Errorf("Message() = %q", got)
	}
	if b, ok := a.keymap.Lookup(key(backend.KeyF2, 0)); !ok || b.Command != "indent" {
		t.Errorf("F2 = %+v, %v", b, ok)
	}
}

func TestReloadErrors(t *testing.T) {
	a, _ := started(t, Options{})
	before := a.Config()

	bad := config.Default()
	bad.Keys = map[string]string{"F2": "update_pane_size"}
	_ = a.handle(backend.Event{Type: backend.EventInterrupt, Data: bad})
	if a.Config() != before {
		t.Error("rejected config was applied")
	}
	if !strings.Contains(a.Message(), "keys") {
		t.Errorf("Message() = %q", a.Message())
	}

	_ = a.handle(backend.Event{Type: backend.EventInterrupt, Data: errors.New("boom")})
	if got := a.Message(); got != "config: boom" {
		t.Errorf("Message() = %q", got)
	}

	if err := a.handle(backend.Event{Type: backend.EventInterrupt, Data: quitSignal{}}); !errors.Is(err, ErrQuit) {
		t.Errorf("quit signal = %v", err)
	}
}

func TestHeadless(t *testing.T) {
	file := writeFile(t, "main.go", "func main() {\r\n\tx := 1\r\n}\r\n")
	script := writeFile(t, "edit.lua", `editor.insert("// ")`)
	var out bytes.Buffer
	a := newApp(t, Options{
		Files:    []string{file},
		Script:   script,
		Headless: true,
		Stdout:   &out,
	})

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := "== main.go ==\n// func main() {\n    x := 1\n}\n\n== pane 2 ==\nPane 2:\nEdit this text.\nUse Ctrl+W to switch panes.\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestHeadlessScriptError(t *testing.T) {
	script := writeFile(t, "bad.lua", `editor.command("explode")`)
	a := newApp(t, Options{Script: script, Headless: true, Stdout: &bytes.Buffer{}})
	if err := a.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNewErrors(t *testing.T) {
	badConfig := writeFile(t, "config.toml", "[editor]\npanes = 9\n")
	badColor := writeFile(t, "color.toml", "[theme]\ntext = \"red\"\n")
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"too many files", Options{Files: []string{"a", "b", "c", "d", "e"}}, ErrTooManyFiles},
		{"missing file", Options{Files: []string{filepath.Join(t.TempDir(), "nope.txt")}}, os.ErrNotExist},
		{"invalid config", Options{ConfigPath: badConfig}, config.ErrInvalidPanes},
		{"invalid colour", Options{ConfigPath: badColor}, config.ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.ConfigPath == "" {
				tt.opts.ConfigPath = noConfig(t)
			}
			_, err := New(tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			var op *OperationError
			if !errors.As(err, &op) {
				t.Errorf("error %T is not an OperationError", err)
			}
		})
	}
}

func TestPanesFollowFiles(t *testing.T) {
	files := []string{
		writeFile(t, "a.txt", "a\n"),
		writeFile(t, "b.txt", "b\n"),
		writeFile(t, "c.txt", "c\n"),
	}
	a := newApp(t, Options{Files: files, Headless: true, Stdout: &bytes.Buffer{}})
	docs := a.Documents()
	if len(docs) != 3 {
		t.Fatalf("panes = %d, want 3", len(docs))
	}
	ids := map[string]bool{}
	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if docs[i].Name != name || docs[i].Path != files[i] {
			t.Errorf("doc %d = %s (%s)", i, docs[i].Name, docs[i].Path)
		}
		if _, err := uuid.Parse(docs[i].ID); err != nil {
			t.Errorf("doc %d ID %q: %v", i, docs[i].ID, err)
		}
		ids[docs[i].ID] = true
	}
	if len(ids) != 3 {
		t.Errorf("document IDs not unique: %v", ids)
	}
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "blockwrap.log")
	cfgPath := writeFile(t, "config.toml", fmt.Sprintf("[log]\nlevel = \"debug\"\nfile = %q\n", logPath))
	a, err := New(Options{ConfigPath: cfgPath, Headless: true, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	a.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] blockwrap: started with 2 panes") {
		t.Errorf("log = %q", data)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"e\u0301", "\u00e9"},
		{"a\r\nb\rc", "a\nb\nc"},
		{"\tx", "    x"},
		{"ok\xff", "ok\uFFFD"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOperationError(t *testing.T) {
	err := &OperationError{Op: "open", Target: "x.txt", Err: os.ErrPermission}
	if got := err.Error(); got != "open x.txt: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("Unwrap lost the cause")
	}
	if got := (&OperationError{Op: "init"}).Error(); got != "init" {
		t.Errorf("Error() = %q", got)
	}
}
