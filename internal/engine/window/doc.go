// Package window implements a scrollable view over a range of visual lines
// and the screen-space cursor that lives in it.
//
// The cursor is kept in screen coordinates (CurX, CurY). Its logical
// position in the text is derived lazily and cached until the cursor moves
// or the text changes. The cursor may sit past the end of a line or below
// the last line; the gap is reported as trailing spaces and newlines and is
// materialised as real text by the next edit.
package window
