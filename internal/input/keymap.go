package input

import (
	"errors"
	"fmt"
	"sort"
	"unicode"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/engine"
)

// Action says what a binding does.
type Action int

// Actions. Everything except ActionCommand is handled by the host.
const (
	ActionNone Action = iota
	ActionCommand
	ActionQuit
	ActionNextPane
	ActionPrevPane
	ActionToggleDebug
	ActionDebugUp
	ActionDebugDown
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionCommand:     "command",
	ActionQuit:        "quit",
	ActionNextPane:    "next_pane",
	ActionPrevPane:    "prev_pane",
	ActionToggleDebug: "toggle_debug",
	ActionDebugUp:     "debug_up",
	ActionDebugDown:   "debug_down",
}

// String returns the name of the action.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Binding is the target of a chord.
type Binding struct {
	Action  Action
	Command engine.Command
	Args    engine.Args
}

// Command returns a binding that dispatches cmd.
func Command(cmd engine.Command) Binding {
	return Binding{Action: ActionCommand, Command: cmd}
}

// Insert returns a binding that inserts r.
func Insert(r rune) Binding {
	return Binding{Action: ActionCommand, Command: engine.CmdInsertChar, Args: engine.Args{Char: r}}
}

// Keymap maps chords to bindings. The zero value is not usable; call
// New or Default.
type Keymap struct {
	bindings map[Chord]Binding
}

// New returns an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[Chord]Binding)}
}

// Default returns the standard bindings.
func Default() *Keymap {
	m := New()
	for spec, b := range map[string]Binding{
		"Enter":      Insert('\n'),
		"Backspace":  Command(engine.CmdDeleteCharBackward),
		"Ctrl+H":     Command(engine.CmdDeleteCharBackward),
		"Delete":     Command(engine.CmdDeleteCharForward),
		"Up":         Command(engine.CmdMoveUp),
		"Down":       Command(engine.CmdMoveDown),
		"Left":       Command(engine.CmdMoveLeft),
		"Right":      Command(engine.CmdMoveRight),
		"Home":       Command(engine.CmdMoveStart),
		"End":        Command(engine.CmdMoveEnd),
		"Ctrl+A":     Command(engine.CmdMoveZero),
		"Shift+Up":   Command(engine.CmdScrollUp),
		"Shift+Down": Command(engine.CmdScrollDown),
		"PageUp":     Command(engine.CmdPageUp),
		"PageDown":   Command(engine.CmdPageDown),
		"F8":         Command(engine.CmdSplitBuffer),
		"F7":         Command(engine.CmdCreateWindow),
		"F6":         Command(engine.CmdRootWindow),
		"Tab":        Command(engine.CmdIndent),
		"Shift+Tab":  Command(engine.CmdDedent),
		"Esc":        {Action: ActionQuit},
		"Ctrl+Q":     {Action: ActionQuit},
		"Ctrl+W":     {Action: ActionNextPane},
		"Alt+w":      {Action: ActionPrevPane},
		"F12":        {Action: ActionToggleDebug},
		"Alt+Up":     {Action: ActionDebugUp},
		"Alt+Down":   {Action: ActionDebugDown},
	} {
		if err := m.Bind(spec, b); err != nil {
			panic(err)
		}
	}
	return m
}

// Bind binds spec to b, replacing any earlier binding.
func (m *Keymap) Bind(spec string, b Binding) error {
	c, err := ParseKey(spec)
	if err != nil {
		return err
	}
	m.bindings[c] = b
	return nil
}

// Unbind removes the binding of spec.
func (m *Keymap) Unbind(spec string) error {
	c, err := ParseKey(spec)
	if err != nil {
		return err
	}
	delete(m.bindings, c)
	return nil
}

// Override applies config bindings of chord to command name. Commands
// that take arguments other than a character cannot be bound; binding
// insert_char to a printable chord inserts that chord's rune.
func (m *Keymap) Override(keys map[string]string) error {
	// sorted so the first error is stable
	specs := make([]string, 0, len(keys))
	for spec := range keys {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	var errs []error
	for _, spec := range specs {
		c, err := ParseKey(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cmd, err := engine.ParseCommand(keys[spec])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", spec, err))
			continue
		}
		b := Command(cmd)
		switch cmd {
		case engine.CmdUpdatePaneSize:
			errs = append(errs, fmt.Errorf("%w: %s = %s", ErrUnbindable, spec, cmd))
			continue
		case engine.CmdInsertChar:
			if c.Key != backend.KeyRune {
				errs = append(errs, fmt.Errorf("%w: %s = %s", ErrUnbindable, spec, cmd))
				continue
			}
			b = Insert(c.Rune)
		}
		m.bindings[c] = b
	}
	return errors.Join(errs...)
}

// Lookup returns the binding for a key event. Unbound printable runes
// without Ctrl or Alt insert themselves.
func (m *Keymap) Lookup(ev backend.Event) (Binding, bool) {
	if ev.Type != backend.EventKey {
		return Binding{}, false
	}
	c := ChordOf(ev)
	if b, ok := m.bindings[c]; ok {
		return b, true
	}
	if c.Key == backend.KeyRune && c.Mod == backend.ModNone && unicode.IsPrint(c.Rune) {
		return Insert(c.Rune), true
	}
	return Binding{}, false
}

// Entry is one row of Bindings.
type Entry struct {
	Chord   Chord
	Binding Binding
}

// Bindings lists the keymap ordered by chord name.
func (m *Keymap) Bindings() []Entry {
	out := make([]Entry, 0, len(m.bindings))
	for c, b := range m.bindings {
		out = append(out, Entry{Chord: c, Binding: b})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}

// Describe returns what the binding does, for help text.
func (b Binding) Describe() string {
	if b.Action != ActionCommand {
		return b.Action.String()
	}
	if b.Command == engine.CmdInsertChar {
		return fmt.Sprintf("%s %q", b.Command, b.Args.Char)
	}
	return string(b.Command)
}
