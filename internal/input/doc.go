// Package input maps key events to editor commands.
//
// A Keymap binds chords to Bindings. Chords are written the way the
// config file writes them:
//
//	"a", "Enter", "Ctrl+A", "Shift+Up", "Alt+x", "F8", "Shift+Tab"
//
// Modifier names are case-insensitive. Shift on a printable rune is
// folded into the rune itself, so "Shift+a" and "A" are the same chord.
//
// # Usage
//
//	km := input.Default()
//	if err := km.Override(cfg.Keys); err != nil {
//		return err
//	}
//	if b, ok := km.Lookup(ev); ok && b.Action == input.ActionCommand {
//		editor.Dispatch(b.Command, b.Args)
//	}
//
// Printable runes without a binding of their own fall through to
// insert_char.
package input
