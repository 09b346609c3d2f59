// Package script runs Lua programs against an editor.
//
// Scripts run in a restricted gopher-lua state: only the base, table,
// string and math libraries are opened, and the loaders (dofile,
// loadfile, load, loadstring, require) are removed. A single global
// table, editor, is installed:
//
//	editor.command(name [, arg...])  -- dispatch a command, returns changed
//	editor.insert(str)               -- insert every character of str
//	editor.text()                    -- document text with indentation
//	editor.rows()                    -- visible rows as a table of strings
//	editor.cursor()                  -- x, y of the screen cursor
//	editor.state(path)               -- gjson query over the debug state
//	editor.commands()                -- every command name
//
// insert_char takes a one-character string; update_pane_size takes a
// width and a height. Errors raised by these functions abort the script
// and surface from Run as ErrScriptFailed.
//
// A Runner is not safe for concurrent use. Each Run is bounded by the
// runner's timeout and by the caller's context.
package script
