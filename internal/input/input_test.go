package input

import (
	"errors"
	"testing"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/engine"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"a", Chord{Key: backend.KeyRune, Rune: 'a'}},
		{"A", Chord{Key: backend.KeyRune, Rune: 'A'}},
		{"Shift+a", Chord{Key: backend.KeyRune, Rune: 'A'}},
		{"+", Chord{Key: backend.KeyRune, Rune: '+'}},
		{"Alt++", Chord{Key: backend.KeyRune, Rune: '+', Mod: backend.ModAlt}},
		{"Space", Chord{Key: backend.KeyRune, Rune: ' '}},
		{"Ctrl+A", Chord{Key: backend.KeyCtrl, Rune: 'a'}},
		{"ctrl+shift+a", Chord{Key: backend.KeyCtrl, Rune: 'a'}},
		{"C+w", Chord{Key: backend.KeyCtrl, Rune: 'w'}},
		{"Ctrl+Alt+x", Chord{Key: backend.KeyCtrl, Rune: 'x', Mod: backend.ModAlt}},
		{"Enter", Chord{Key: backend.KeyEnter}},
		{"esc", Chord{Key: backend.KeyEscape}},
		{"Shift+Up", Chord{Key: backend.KeyUp, Mod: backend.ModShift}},
		{"Shift+Tab", Chord{Key: backend.KeyBacktab}},
		{"Backtab", Chord{Key: backend.KeyBacktab}},
		{"F8", Chord{Key: backend.KeyF8}},
		{" PgDn ", Chord{Key: backend.KeyPageDown}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseKey(tt.spec)
			if err != nil {
				t.Fatalf("ParseKey(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptyKey},
		{"   ", ErrEmptyKey},
		{"Ctrl+", ErrInvalidKey},
		{"Hyper+a", ErrInvalidKey},
		{"ab", ErrInvalidKey},
		{"F13", ErrInvalidKey},
		{"\t", ErrEmptyKey},
		{"Ctrl+\x01", ErrInvalidKey},
	}

	for _, tt := range tests {
		if _, err := ParseKey(tt.spec); !errors.Is(err, tt.want) {
			t.Errorf("ParseKey(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestChordStringRoundTrip(t *testing.T) {
	specs := []string{"a", "Ctrl+A", "Ctrl+Alt+X", "Shift+Up", "Shift+Tab", "F12", "Space", "Alt+w", "Ctrl+Up"}
	for _, spec := range specs {
		c, err := ParseKey(spec)
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", spec, err)
		}
		back, err := ParseKey(c.String())
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", c.String(), err)
		}
		if back != c {
			t.Errorf("%q -> %q -> %+v, want %+v", spec, c.String(), back, c)
		}
	}
}

func key(k backend.Key, r rune, mod backend.ModMask) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k, Rune: r, Mod: mod}
}

func TestDefaultLookup(t *testing.T) {
	km := Default()
	tests := []struct {
		name string
		ev   backend.Event
		want Binding
	}{
		{"rune", key(backend.KeyRune, 'x', 0), Insert('x')},
		{"shifted rune", key(backend.KeyRune, 'X', backend.ModShift), Insert('X')},
		{"enter", key(backend.KeyEnter, 0, 0), Insert('\n')},
		{"backspace", key(backend.KeyBackspace, 0, 0), Command(engine.CmdDeleteCharBackward)},
		{"ctrl h", key(backend.KeyCtrl, 'h', backend.ModCtrl), Command(engine.CmdDeleteCharBackward)},
		{"ctrl a", key(backend.KeyCtrl, 'a', backend.ModCtrl), Command(engine.CmdMoveZero)},
		{"shift up", key(backend.KeyUp, 0, backend.ModShift), Command(engine.CmdScrollUp)},
		{"up", key(backend.KeyUp, 0, 0), Command(engine.CmdMoveUp)},
		{"backtab", key(backend.KeyBacktab, 0, backend.ModShift), Command(engine.CmdDedent)},
		{"shift tab", key(backend.KeyTab, 0, backend.ModShift), Command(engine.CmdDedent)},
		{"tab", key(backend.KeyTab, 0, 0), Command(engine.CmdIndent)},
		{"f8", key(backend.KeyF8, 0, 0), Command(engine.CmdSplitBuffer)},
		{"esc", key(backend.KeyEscape, 0, 0), Binding{Action: ActionQuit}},
		{"ctrl w", key(backend.KeyCtrl, 'w', backend.ModCtrl), Binding{Action: ActionNextPane}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Lookup(tt.ev)
			if !ok {
				t.Fatalf("Lookup(%+v) not found", tt.ev)
			}
			if got != tt.want {
				t.Errorf("Lookup(%+v) = %+v, want %+v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestLookupMisses(t *testing.T) {
	km := Default()
	misses := []backend.Event{
		{Type: backend.EventResize, Width: 80, Height: 24},
		key(backend.KeyRune, 'x', backend.ModAlt),
		key(backend.KeyCtrl, 'z', backend.ModCtrl),
		key(backend.KeyF2, 0, 0),
	}
	for _, ev := range misses {
		if b, ok := km.Lookup(ev); ok {
			t.Errorf("Lookup(%+v) = %+v, want miss", ev, b)
		}
	}
}

func TestOverride(t *testing.T) {
	km := Default()
	err := km.Override(map[string]string{
		"Ctrl+D": "delete_char_forward",
		"Tab":    "dedent",
		"Alt+x":  "insert_char",
	})
	if err != nil {
		t.Fatalf("Override error: %v", err)
	}

	if b, _ := km.Lookup(key(backend.KeyCtrl, 'd', backend.ModCtrl)); b != Command(engine.CmdDeleteCharForward) {
		t.Errorf("Ctrl+D = %+v", b)
	}
	if b, _ := km.Lookup(key(backend.KeyTab, 0, 0)); b != Command(engine.CmdDedent) {
		t.Errorf("Tab = %+v", b)
	}
	if b, _ := km.Lookup(key(backend.KeyRune, 'x', backend.ModAlt)); b != Insert('x') {
		t.Errorf("Alt+x = %+v", b)
	}
}

func TestOverrideErrors(t *testing.T) {
	tests := []struct {
		name string
		keys map[string]string
		want error
	}{
		{"bad key", map[string]string{"Hyper+q": "indent"}, ErrInvalidKey},
		{"bad command", map[string]string{"F2": "explode"}, engine.ErrUnknownCommand},
		{"pane size", map[string]string{"F2": "update_pane_size"}, ErrUnbindable},
		{"insert on special", map[string]string{"F2": "insert_char"}, ErrUnbindable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := Default()
			before := len(km.Bindings())
			err := km.Override(tt.keys)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Override error = %v, want %v", err, tt.want)
			}
			if got := len(km.Bindings()); got != before {
				t.Errorf("bindings = %d, want %d", got, before)
			}
		})
	}
}

func TestOverrideKeepsGoodEntries(t *testing.T) {
	km := New()
	err := km.Override(map[string]string{
		"F2": "explode",
		"F3": "indent",
	})
	if !errors.Is(err, engine.ErrUnknownCommand) {
		t.Fatalf("Override error = %v", err)
	}
	if b, ok := km.Lookup(key(backend.KeyF3, 0, 0)); !ok || b != Command(engine.CmdIndent) {
		t.Errorf("F3 = %+v, %v", b, ok)
	}
}

func TestUnbind(t *testing.T) {
	km := Default()
	if err := km.Unbind("Esc"); err != nil {
		t.Fatal(err)
	}
	if _, ok := km.Lookup(key(backend.KeyEscape, 0, 0)); ok {
		t.Error("Esc still bound")
	}
	if err := km.Unbind(""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Unbind(\"\") error = %v", err)
	}
}

func TestBindingsSorted(t *testing.T) {
	entries := Default().Bindings()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Chord.String() > entries[i].Chord.String() {
			t.Fatalf("not sorted at %d: %s > %s", i, entries[i-1].Chord, entries[i].Chord)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		b    Binding
		want string
	}{
		{Insert('\n'), `insert_char '\n'`},
		{Command(engine.CmdIndent), "indent"},
		{Binding{Action: ActionQuit}, "quit"},
		{Binding{Action: Action(99)}, "Action(99)"},
	}
	for _, tt := range tests {
		if got := tt.b.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func FuzzParseKey(f *testing.F) {
	for _, s := range []string{"a", "Ctrl+A", "Alt++", "Shift+Tab", "F8", "++", "Ctrl+"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, spec string) {
		c, err := ParseKey(spec)
		if err != nil {
			return
		}
		back, err := ParseKey(c.String())
		if err != nil {
			t.Fatalf("ParseKey(%q) ok but String %q fails: %v", spec, c.String(), err)
		}
		if back != c {
			t.Fatalf("round trip %q: %+v != %+v", spec, back, c)
		}
	})
}
