package engine

import (
	"fmt"
	"slices"
)

// Command names a logical editor command. The names are shared by key
// maps, configuration files and scripts.
type Command string

// Commands understood by Dispatch.
const (
	CmdInsertChar         Command = "insert_char"
	CmdDeleteCharForward  Command = "delete_char_forward"
	CmdDeleteCharBackward Command = "delete_char_backward"
	CmdMoveUp             Command = "move_cursor_up"
	CmdMoveDown           Command = "move_cursor_down"
	CmdMoveLeft           Command = "move_cursor_left"
	CmdMoveRight          Command = "move_cursor_right"
	CmdMoveStart          Command = "move_cursor_at_start"
	CmdMoveEnd            Command = "move_cursor_at_end"
	CmdMoveZero           Command = "move_cursor_at_0"
	CmdScrollUp           Command = "scroll_up"
	CmdScrollDown         Command = "scroll_down"
	CmdPageUp             Command = "page_up"
	CmdPageDown           Command = "page_down"
	CmdSplitBuffer        Command = "split_buffer"
	CmdCreateWindow       Command = "create_window"
	CmdRootWindow         Command = "root_window"
	CmdIndent             Command = "indent"
	CmdDedent             Command = "dedent"
	CmdUpdatePaneSize     Command = "update_pane_size"
)

// Args carries command operands. Char is used by insert_char; Width and
// Height by update_pane_size.
type Args struct {
	Char          rune
	Width, Height int
}

var simple = map[Command]func(*Editor) bool{
	CmdDeleteCharForward:  (*Editor).DeleteCharForward,
	CmdDeleteCharBackward: (*Editor).DeleteCharBackward,
	CmdMoveUp:             (*Editor).MoveUp,
	CmdMoveDown:           (*Editor).MoveDown,
	CmdMoveLeft:           (*Editor).MoveLeft,
	CmdMoveRight:          (*Editor).MoveRight,
	CmdMoveStart:          (*Editor).MoveStart,
	CmdMoveEnd:            (*Editor).MoveEnd,
	CmdMoveZero:           (*Editor).MoveZero,
	CmdScrollUp:           (*Editor).ScrollUp,
	CmdScrollDown:         (*Editor).ScrollDown,
	CmdPageUp:             (*Editor).PageUp,
	CmdPageDown:           (*Editor).PageDown,
	CmdSplitBuffer:        (*Editor).SplitBuffer,
	CmdCreateWindow:       (*Editor).CreateWindow,
	CmdRootWindow:         (*Editor).RootWindow,
	CmdIndent:             (*Editor).Indent,
	CmdDedent:             (*Editor).Dedent,
}

// Commands returns every command name in sorted order.
func Commands() []Command {
	out := []Command{CmdInsertChar, CmdUpdatePaneSize}
	for c := range simple {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// ParseCommand validates a command name.
func ParseCommand(name string) (Command, error) {
	c := Command(name)
	if _, ok := simple[c]; ok || c == CmdInsertChar || c == CmdUpdatePaneSize {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Dispatch runs cmd and reports whether the display changed.
func (e *Editor) Dispatch(cmd Command, args Args) (bool, error) {
	switch cmd {
	case CmdInsertChar:
		if args.Char == 0 {
			return false, fmt.Errorf("%s: %w", cmd, ErrMissingArgument)
		}
		return e.InsertChar(args.Char), nil
	case CmdUpdatePaneSize:
		if args.Width <= 0 || args.Height <= 0 {
			return false, fmt.Errorf("%s: %w", cmd, ErrMissingArgument)
		}
		return e.UpdatePaneSize(args.Width, args.Height), nil
	}
	fn, ok := simple[cmd]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return fn(e), nil
}
