package script

import (
	"unicode/utf8"

	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockwrap/internal/engine"
)

func (r *Runner) install() {
	t := r.L.NewTable()
	r.L.SetFuncs(t, map[string]lua.LGFunction{
		"command":  r.command,
		"insert":   r.insert,
		"text":     r.text,
		"rows":     r.rows,
		"cursor":   r.cursor,
		"state":    r.state,
		"commands": r.commands,
	})
	r.L.SetGlobal("editor", t)
}

// editor.command(name [, arg...]) -> changed
func (r *Runner) command(L *lua.LState) int {
	cmd, err := engine.ParseCommand(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	var args engine.Args
	switch cmd {
	case engine.CmdInsertChar:
		s := L.CheckString(2)
		c, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) {
			L.ArgError(2, "want a single character")
			return 0
		}
		args.Char = c
	case engine.CmdUpdatePaneSize:
		args.Width = L.CheckInt(2)
		args.Height = L.CheckInt(3)
	}

	changed, err := r.editor.Dispatch(cmd, args)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LBool(changed))
	return 1
}

// editor.insert(str) -> count of characters inserted
func (r *Runner) insert(L *lua.LState) int {
	n := 0
	for _, c := range L.CheckString(1) {
		if r.editor.InsertChar(c) {
			n++
		}
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (r *Runner) text(L *lua.LState) int {
	L.Push(lua.LString(r.editor.Text()))
	return 1
}

func (r *Runner) rows(L *lua.LState) int {
	t := L.NewTable()
	for _, row := range r.editor.Rows() {
		t.Append(lua.LString(row))
	}
	L.Push(t)
	return 1
}

func (r *Runner) cursor(L *lua.LState) int {
	x, y := r.editor.CursorPosition()
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	return 2
}

// editor.state([path]) -> value at path in the debug state, or the whole
// state as a table when path is omitted
func (r *Runner) state(L *lua.LState) int {
	js, err := r.editor.DebugJSON()
	if err != nil {
		L.RaiseError("state: %s", err.Error())
		return 0
	}
	res := gjson.Parse(js)
	if path := L.OptString(1, ""); path != "" {
		res = res.Get(path)
	}
	L.Push(toLua(L, res))
	return 1
}

func (r *Runner) commands(L *lua.LState) int {
	t := L.NewTable()
	for _, c := range engine.Commands() {
		t.Append(lua.LString(c))
	}
	L.Push(t)
	return 1
}

// toLua converts a gjson result. Arrays become sequences and objects
// become string-keyed tables; missing values are nil.
func toLua(L *lua.LState, res gjson.Result) lua.LValue {
	switch res.Type {
	case gjson.True:
		return lua.LTrue
	case gjson.False:
		return lua.LFalse
	case gjson.Number:
		return lua.LNumber(res.Num)
	case gjson.String:
		return lua.LString(res.Str)
	case gjson.JSON:
		t := L.NewTable()
		if res.IsArray() {
			for _, v := range res.Array() {
				t.Append(toLua(L, v))
			}
			return t
		}
		res.ForEach(func(k, v gjson.Result) bool {
			t.RawSetString(k.String(), toLua(L, v))
			return true
		})
		return t
	default:
		return lua.LNil
	}
}
