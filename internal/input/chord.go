package input

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/blockwrap/internal/backend"
)

// Chord is a normalised key press: a key, the rune for KeyRune and
// KeyCtrl, and the modifiers not already implied by the key.
type Chord struct {
	Key  backend.Key
	Rune rune
	Mod  backend.ModMask
}

var keyNames = map[string]backend.Key{
	"esc":       backend.KeyEscape,
	"escape":    backend.KeyEscape,
	"enter":     backend.KeyEnter,
	"return":    backend.KeyEnter,
	"tab":       backend.KeyTab,
	"backtab":   backend.KeyBacktab,
	"backspace": backend.KeyBackspace,
	"bs":        backend.KeyBackspace,
	"delete":    backend.KeyDelete,
	"del":       backend.KeyDelete,
	"home":      backend.KeyHome,
	"end":       backend.KeyEnd,
	"pageup":    backend.KeyPageUp,
	"pgup":      backend.KeyPageUp,
	"pagedown":  backend.KeyPageDown,
	"pgdn":      backend.KeyPageDown,
	"up":        backend.KeyUp,
	"down":      backend.KeyDown,
	"left":      backend.KeyLeft,
	"right":     backend.KeyRight,
	"f1":        backend.KeyF1,
	"f2":        backend.KeyF2,
	"f3":        backend.KeyF3,
	"f4":        backend.KeyF4,
	"f5":        backend.KeyF5,
	"f6":        backend.KeyF6,
	"f7":        backend.KeyF7,
	"f8":        backend.KeyF8,
	"f9":        backend.KeyF9,
	"f10":       backend.KeyF10,
	"f11":       backend.KeyF11,
	"f12":       backend.KeyF12,
}

// canonical names, used by String
var keyLabels = map[backend.Key]string{
	backend.KeyEscape:    "Esc",
	backend.KeyEnter:     "Enter",
	backend.KeyTab:       "Tab",
	backend.KeyBacktab:   "Backtab",
	backend.KeyBackspace: "Backspace",
	backend.KeyDelete:    "Delete",
	backend.KeyHome:      "Home",
	backend.KeyEnd:       "End",
	backend.KeyPageUp:    "PageUp",
	backend.KeyPageDown:  "PageDown",
	backend.KeyUp:        "Up",
	backend.KeyDown:      "Down",
	backend.KeyLeft:      "Left",
	backend.KeyRight:     "Right",
	backend.KeyF1:        "F1",
	backend.KeyF2:        "F2",
	backend.KeyF3:        "F3",
	backend.KeyF4:        "F4",
	backend.KeyF5:        "F5",
	backend.KeyF6:        "F6",
	backend.KeyF7:        "F7",
	backend.KeyF8:        "F8",
	backend.KeyF9:        "F9",
	backend.KeyF10:       "F10",
	backend.KeyF11:       "F11",
	backend.KeyF12:       "F12",
}

var modNames = map[string]backend.ModMask{
	"shift":   backend.ModShift,
	"s":       backend.ModShift,
	"ctrl":    backend.ModCtrl,
	"control": backend.ModCtrl,
	"c":       backend.ModCtrl,
	"alt":     backend.ModAlt,
	"meta":    backend.ModAlt,
	"a":       backend.ModAlt,
	"m":       backend.ModAlt,
}

// ParseKey parses a chord such as "Ctrl+A", "Shift+Up", "F8" or "x".
// A literal plus is written "+" or "Alt++".
func ParseKey(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptyKey
	}

	var mods backend.ModMask
	keyPart := spec
	if len(spec) > 1 {
		// a trailing "+" after a separator is the plus key itself
		body, last := spec, ""
		if strings.HasSuffix(spec, "++") {
			body, last = spec[:len(spec)-2], "+"
		} else if i := strings.LastIndex(spec, "+"); i >= 0 {
			body, last = spec[:i], spec[i+1:]
		} else {
			body = ""
		}
		if last != "" || body != "" {
			for _, p := range strings.Split(body, "+") {
				p = strings.ToLower(strings.TrimSpace(p))
				if p == "" {
					continue
				}
				m, ok := modNames[p]
				if !ok {
					return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidKey, p)
				}
				mods |= m
			}
			keyPart = strings.TrimSpace(last)
		}
	}
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: %q has no key", ErrInvalidKey, spec)
	}

	if k, ok := keyNames[strings.ToLower(keyPart)]; ok {
		return normalize(Chord{Key: k, Mod: mods}), nil
	}
	if strings.EqualFold(keyPart, "space") {
		keyPart = " "
	}
	r, size := utf8.DecodeRuneInString(keyPart)
	if r == utf8.RuneError || size != len(keyPart) {
		return Chord{}, fmt.Errorf("%w: %q", ErrInvalidKey, spec)
	}
	if !unicode.IsPrint(r) {
		return Chord{}, fmt.Errorf("%w: %q is not printable", ErrInvalidKey, spec)
	}
	return normalize(Chord{Key: backend.KeyRune, Rune: r, Mod: mods}), nil
}

// ChordOf returns the chord of a key event.
func ChordOf(ev backend.Event) Chord {
	return normalize(Chord{Key: ev.Key, Rune: ev.Rune, Mod: ev.Mod})
}

func normalize(c Chord) Chord {
	switch c.Key {
	case backend.KeyRune:
		if c.Mod.Has(backend.ModCtrl) && unicode.IsLetter(c.Rune) {
			c.Key, c.Rune = backend.KeyCtrl, unicode.ToLower(c.Rune)
			c.Mod &^= backend.ModCtrl | backend.ModShift
			break
		}
		if c.Mod.Has(backend.ModShift) {
			c.Rune = unicode.ToUpper(c.Rune)
		}
		c.Mod &^= backend.ModShift
	case backend.KeyCtrl:
		c.Rune = unicode.ToLower(c.Rune)
		c.Mod &^= backend.ModCtrl | backend.ModShift
	case backend.KeyTab:
		if c.Mod.Has(backend.ModShift) {
			c.Key = backend.KeyBacktab
			c.Mod &^= backend.ModShift
		}
	case backend.KeyBacktab:
		c.Mod &^= backend.ModShift
	default:
		c.Rune = 0
	}
	return c
}

// String formats the chord the way ParseKey reads it.
func (c Chord) String() string {
	var b strings.Builder
	if c.Key == backend.KeyCtrl || c.Mod.Has(backend.ModCtrl) {
		b.WriteString("Ctrl+")
	}
	if c.Mod.Has(backend.ModAlt) {
		b.WriteString("Alt+")
	}
	if c.Mod.Has(backend.ModShift) {
		b.WriteString("Shift+")
	}
	switch c.Key {
	case backend.KeyRune:
		if c.Rune == ' ' {
			b.WriteString("Space")
		} else {
			b.WriteRune(c.Rune)
		}
	case backend.KeyCtrl:
		if c.Rune < utf8.RuneSelf {
			b.WriteRune(unicode.ToUpper(c.Rune))
		} else {
			b.WriteRune(c.Rune)
		}
	case backend.KeyBacktab:
		b.WriteString("Shift+Tab")
	default:
		if s, ok := keyLabels[c.Key]; ok {
			b.WriteString(s)
		} else {
			b.WriteString("?")
		}
	}
	return b.String()
}
