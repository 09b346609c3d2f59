package backend

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates a backend for the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a tcell
// simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	return nil
}

func (t *Terminal) Shutdown() { t.screen.Fini() }

func (t *Terminal) Size() (int, int) { return t.screen.Size() }

func (t *Terminal) SetContent(x, y int, mainc rune, combc []rune, style Style) {
	t.screen.SetContent(x, y, mainc, combc, toTcellStyle(style))
}

func (t *Terminal) Clear() { t.screen.Clear() }

func (t *Terminal) Show() { t.screen.Show() }

func (t *Terminal) ShowCursor(x, y int) { t.screen.ShowCursor(x, y) }

func (t *Terminal) HideCursor() { t.screen.HideCursor() }

// PollEvent skips tcell events with no counterpart (mouse, focus, paste)
// so EventNone only ever means the screen was finalised.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		if out := convertEvent(ev); out.Type != EventNone {
			return out
		}
	}
}

func (t *Terminal) PostEvent(ev Event) error {
	var tev tcell.Event
	switch ev.Type {
	case EventKey:
		k, r, m := toTcellKey(ev)
		tev = tcell.NewEventKey(k, r, m)
	case EventResize:
		tev = tcell.NewEventResize(ev.Width, ev.Height)
	case EventInterrupt:
		tev = tcell.NewEventInterrupt(ev.Data)
	default:
		return nil
	}
	if err := t.screen.PostEvent(tev); err != nil {
		return fmt.Errorf("%w: %w", ErrQueueFull, err)
	}
	return nil
}

func toTcellColor(c Color) tcell.Color {
	if c.Default {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toTcellStyle(s Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.Fg)).
		Background(toTcellColor(s.Bg)).
		Bold(s.Attr&AttrBold != 0).
		Dim(s.Attr&AttrDim != 0).
		Italic(s.Attr&AttrItalic != 0).
		Underline(s.Attr&AttrUnderline != 0).
		Reverse(s.Attr&AttrReverse != 0)
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		out := Event{Type: EventKey, Mod: convertMod(e.Modifiers())}
		out.Key, out.Rune = convertKey(e.Key(), e.Rune())
		if out.Key == KeyRune && out.Mod.Has(ModCtrl) && unicode.IsLetter(out.Rune) {
			out.Key, out.Rune = KeyCtrl, unicode.ToLower(out.Rune)
		}
		if out.Key == KeyCtrl {
			out.Mod |= ModCtrl
		}
		return out
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}
	default:
		return Event{Type: EventNone}
	}
}

var fromTcell = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// convertKey maps a tcell key. Backspace, Tab, Enter and Escape share
// codes with Ctrl chords and take precedence over them.
func convertKey(k tcell.Key, r rune) (Key, rune) {
	if k == tcell.KeyRune {
		return KeyRune, r
	}
	if key, ok := fromTcell[k]; ok {
		return key, 0
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrl, 'a' + rune(k-tcell.KeyCtrlA)
	}
	return KeyNone, 0
}

func toTcellKey(ev Event) (tcell.Key, rune, tcell.ModMask) {
	mod := toTcellMod(ev.Mod)
	switch ev.Key {
	case KeyRune:
		return tcell.KeyRune, ev.Rune, mod
	case KeyCtrl:
		return tcell.KeyCtrlA + tcell.Key(ev.Rune-'a'), 0, mod | tcell.ModCtrl
	}
	for tk, k := range fromTcell {
		if k == ev.Key && tk != tcell.KeyBackspace {
			return tk, 0, mod
		}
	}
	return tcell.KeyNUL, 0, mod
}

func convertMod(m tcell.ModMask) ModMask {
	var out ModMask
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	return out
}

func toTcellMod(m ModMask) tcell.ModMask {
	var out tcell.ModMask
	if m.Has(ModShift) {
		out |= tcell.ModShift
	}
	if m.Has(ModCtrl) {
		out |= tcell.ModCtrl
	}
	if m.Has(ModAlt) {
		out |= tcell.ModAlt
	}
	return out
}
