package window

import (
	"testing"

	"github.com/dshills/blockwrap/internal/engine/segment"
	"github.com/dshills/blockwrap/internal/engine/vline"
)

func setup(t *testing.T, content string, wrap, height int) (*segment.Set, *Window) {
	t.Helper()
	set := segment.New(content, wrap)
	w := New(set, set.Head, vline.Handle{}, wrap, height)
	set.Lines.OnMerge(w.Redirect)
	return set, w
}

func display(set *segment.Set, w *Window) []string {
	var out []string
	it := w.Lines(set)
	for it.Next() {
		out = append(out, it.Line().Text)
	}
	return out
}

func repeat(n int, fn func() bool) {
	for i := 0; i < n; i++ {
		fn()
	}
}

func checkCursor(t *testing.T, w *Window, x, y int) {
	t.Helper()
	if gx, gy := w.CursorPosition(); gx != x || gy != y {
		t.Errorf("cursor = (%d, %d), want (%d, %d)", gx, gy, x, y)
	}
}

func checkText(t *testing.T, set *segment.Set, want string) {
	t.Helper()
	if got := set.Text(); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if err := set.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestPositionDerivation(t *testing.T) {
	tests := []struct {
		name  string
		moves func(set *segment.Set, w *Window)
		want  Position
	}{
		{"origin", func(*segment.Set, *Window) {}, Position{}},
		{"inside line", func(set *segment.Set, w *Window) {
			repeat(3, func() bool { return w.Right(set) })
		}, Position{Offset: 3, RelativeX: 3}},
		{"past line end", func(set *segment.Set, w *Window) {
			repeat(8, func() bool { return w.Right(set) })
		}, Position{Offset: 5, TrailingSpaces: 3, RelativeX: 8}},
		{"second line", func(set *segment.Set, w *Window) {
			w.Down(set)
			repeat(2, func() bool { return w.Right(set) })
		}, Position{Offset: 8, RelativeX: 2}},
		{"below the text", func(set *segment.Set, w *Window) {
			repeat(3, func() bool { return w.Down(set) })
		}, Position{Offset: 9, Newlines: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, w := setup(t, "hello\nab\n", 10, 5)
			tt.moves(set, w)
			if got := w.Position(set); got != tt.want {
				t.Errorf("Position = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPositionIsCached(t *testing.T) {
	set, w := setup(t, "hello\n", 10, 5)
	w.Right(set)
	p := w.Position(set)
	w.CurX = 4
	if got := w.Position(set); got != p {
		t.Error("position recomputed without invalidation")
	}
	w.Invalidate()
	if got := w.Position(set); got.Offset != 4 {
		t.Errorf("Offset = %d after invalidation, want 4", got.Offset)
	}
}

func TestTypeBelowLastLine(t *testing.T) {
	set, w := setup(t, "abc\n", 10, 5)
	before := len(display(set, w))
	w.Down(set)
	if !w.InsertChar(set, 'a') {
		t.Fatal("InsertChar returned false")
	}
	checkText(t, set, "abc\na\n")
	if got := len(display(set, w)); got != before+1 {
		t.Errorf("rows = %d, want %d", got, before+1)
	}
	checkCursor(t, w, 1, 1)
}

func TestTypeWithVirtualWhitespace(t *testing.T) {
	set, w := setup(t, "abc\n", 10, 5)
	w.Down(set)
	w.Down(set)
	w.Right(set)
	w.Right(set)
	w.InsertChar(set, 'x')
	checkText(t, set, "abc\n\n  x\n")
	checkCursor(t, w, 3, 2)
}

func TestTypePastLineEnd(t *testing.T) {
	set, w := setup(t, "ab\ncdefg\n", 10, 5)
	w.Down(set)
	w.RowEnd(set)
	w.Up(set)
	w.InsertChar(set, 'z')
	checkText(t, set, "ab   z\ncdefg\n")
	checkCursor(t, w, 6, 0)
}

func TestInsertOverflowMovesCursor(t *testing.T) {
	set, w := setup(t, "abcdefgh\n", 8, 5)
	w.RowEnd(set)
	checkCursor(t, w, 8, 0)
	w.InsertChar(set, 'X')
	if got := display(set, w); len(got) != 2 || got[0] != "abcdefgh" || got[1] != "X\n" {
		t.Errorf("rows = %q", got)
	}
	checkCursor(t, w, 1, 1)
}

func TestInsertDeleteInverse(t *testing.T) {
	set, w := setup(t, "abcdefgh\nxyz\n", 8, 5)
	before := display(set, w)
	repeat(7, func() bool { return w.Right(set) })

	w.InsertChar(set, 'X')
	checkText(t, set, "abcdefgXh\nxyz\n")
	checkCursor(t, w, 0, 1)

	w.DeleteCharBackward(set)
	checkText(t, set, "abcdefgh\nxyz\n")
	checkCursor(t, w, 7, 0)
	after := display(set, w)
	if len(after) != len(before) {
		t.Fatalf("rows = %q, want %q", after, before)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("row %d = %q, want %q", i, after[i], before[i])
		}
	}
}

func TestInsertNewline(t *testing.T) {
	set, w := setup(t, "abcd\n", 10, 5)
	w.Right(set)
	w.Right(set)
	w.InsertChar(set, '\n')
	checkText(t, set, "ab\ncd\n")
	checkCursor(t, w, 0, 1)
}

func TestDeleteForward(t *testing.T) {
	t.Run("joins with padding", func(t *testing.T) {
		set, w := setup(t, "ab\ncd\n", 10, 5)
		repeat(4, func() bool { return w.Right(set) })
		if !w.DeleteCharForward(set) {
			t.Fatal("DeleteCharForward returned false")
		}
		checkText(t, set, "ab  cd\n")
		checkCursor(t, w, 4, 0)
	})
	t.Run("keeps final terminator", func(t *testing.T) {
		set, w := setup(t, "ab\n", 10, 5)
		w.RowEnd(set)
		if w.DeleteCharForward(set) {
			t.Error("deleted the final terminator")
		}
		checkText(t, set, "ab\n")
	})
	t.Run("below the text", func(t *testing.T) {
		set, w := setup(t, "ab\n", 10, 5)
		w.Down(set)
		if w.DeleteCharForward(set) {
			t.Error("delete below the text should be a no-op")
		}
	})
}

func TestDeleteBackwardConsumesVirtualWhitespace(t *testing.T) {
	set, w := setup(t, "ab\n", 10, 5)
	w.Down(set)
	w.Right(set)
	w.Right(set)

	w.DeleteCharBackward(set)
	checkCursor(t, w, 1, 1)
	w.DeleteCharBackward(set)
	checkCursor(t, w, 0, 1)
	w.DeleteCharBackward(set)
	checkCursor(t, w, 2, 0)
	checkText(t, set, "ab\n")

	w.DeleteCharBackward(set)
	checkText(t, set, "a\n")
	checkCursor(t, w, 1, 0)

	w.DeleteCharBackward(set)
	if w.DeleteCharBackward(set) {
		t.Error("backspace at the start of the text should be a no-op")
	}
}

func TestDeleteBackwardJoinsLines(t *testing.T) {
	set, w := setup(t, "ab\ncd\n", 10, 5)
	w.Down(set)
	w.DeleteCharBackward(set)
	checkText(t, set, "abcd\n")
	checkCursor(t, w, 2, 0)
}

func TestHorizontalMovementAcrossWrap(t *testing.T) {
	set, w := setup(t, "abcdefghijklmnop\n", 8, 5)
	repeat(7, func() bool { return w.Right(set) })
	checkCursor(t, w, 7, 0)
	w.Right(set)
	checkCursor(t, w, 0, 1)
	w.Left(set)
	checkCursor(t, w, 7, 0)
	w.Zero()
	if w.Left(set) {
		t.Error("Left at the origin should report no change")
	}
}

func TestHomeEndToggle(t *testing.T) {
	set, w := setup(t, "    foo  \n", 20, 5)
	steps := []struct {
		name string
		fn   func() bool
		x    int
	}{
		{"home skips indent", func() bool { return w.RowStart(set) }, 4},
		{"home again", func() bool { return w.RowStart(set) }, 0},
		{"end skips trailing", func() bool { return w.RowEnd(set) }, 7},
		{"end again", func() bool { return w.RowEnd(set) }, 9},
	}
	for _, s := range steps {
		s.fn()
		if w.CurX != s.x {
			t.Errorf("%s: x = %d, want %d", s.name, w.CurX, s.x)
		}
	}
}

func TestScrolling(t *testing.T) {
	set, w := setup(t, "l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\n", 10, 3)
	w.Down(set)
	w.Down(set)
	if !w.Down(set) {
		t.Fatal("Down at the bottom should scroll")
	}
	checkCursor(t, w, 0, 2)
	if w.TopIdx != 1 || w.CursorIdx != 3 {
		t.Errorf("TopIdx %d CursorIdx %d, want 1 and 3", w.TopIdx, w.CursorIdx)
	}
	if got := display(set, w); len(got) != 3 || got[0] != "l1\n" {
		t.Errorf("rows = %q", got)
	}

	w.ScrollUp(set)
	if w.TopIdx != 0 || w.CursorIdx != 2 {
		t.Errorf("after ScrollUp TopIdx %d CursorIdx %d, want 0 and 2", w.TopIdx, w.CursorIdx)
	}
	if w.ScrollUp(set) {
		t.Error("ScrollUp at the origin should report no change")
	}

	w.PageDown(set)
	if w.TopIdx != 2 {
		t.Errorf("after PageDown TopIdx = %d, want 2", w.TopIdx)
	}
	w.PageUp(set)
	if w.TopIdx != 0 {
		t.Errorf("after PageUp TopIdx = %d, want 0", w.TopIdx)
	}
}

func TestInvalidPositionIsNoop(t *testing.T) {
	set := segment.New("a\n    b\n", 20)
	root := set.First()
	set.Split(root, set.Lines.Next(set.Head), 4)
	w := New(set, set.Head, vline.Handle{}, 20, 5)
	set.Lines.OnMerge(w.Redirect)

	w.Down(set)
	w.Right(set)
	w.Right(set)
	if !w.Position(set).Invalid {
		t.Fatal("position left of the segment indent should be invalid")
	}
	if w.InsertChar(set, 'z') {
		t.Error("InsertChar at an invalid position should be a no-op")
	}

	w.Right(set)
	w.Right(set)
	if !w.InsertChar(set, 'z') {
		t.Fatal("InsertChar at the indent should succeed")
	}
	checkText(t, set, "a\n    zb\n")

	it := w.Lines(set)
	it.Next()
	it.Next()
	if it.Line().Indent != 4 {
		t.Errorf("row indent = %d, want 4", it.Line().Indent)
	}
}

func TestDisplayIteratorBoundedAndRestartable(t *testing.T) {
	set, w := setup(t, "a\nb\nc\n", 10, 2)
	it := w.Lines(set)
	n := 0
	for it.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}
	it.Reset()
	if !it.Next() || it.Line().Text != "a\n" || it.Row() != 0 {
		t.Error("Reset did not rewind to the top row")
	}
}

func TestRedirectWhenTopMerged(t *testing.T) {
	set, w := setup(t, "abcdefghi\nxy\n", 8, 1)
	w.Down(set)
	if w.TopIdx != 1 {
		t.Fatalf("TopIdx = %d, want 1", w.TopIdx)
	}
	w.DeleteCharForward(set)
	checkText(t, set, "abcdefgh\nxy\n")
	if w.Top != set.Head || w.TopIdx != 0 {
		t.Errorf("Top = %s idx %d, want head idx 0", w.Top, w.TopIdx)
	}
	checkCursor(t, w, 8, 0)
}

func TestShrinkKeepsVirtualCursorInPane(t *testing.T) {
	set, w := setup(t, "a\n", 20, 6)
	repeat(5, func() bool { return w.Down(set) })
	checkCursor(t, w, 0, 5)

	w.Resize(set, 20, 3)
	checkCursor(t, w, 0, 2)
	if p := w.Position(set); p.Newlines != 2 {
		t.Errorf("Newlines = %d, want 2", p.Newlines)
	}
	if w.TopIdx != 0 || w.CursorIdx != 0 {
		t.Errorf("TopIdx %d CursorIdx %d, want 0 and 0", w.TopIdx, w.CursorIdx)
	}
}

func TestResync(t *testing.T) {
	set, w := setup(t, "a\nb\nc\nd\n", 10, 2)
	w.Down(set)
	w.Down(set)
	w.TopIdx, w.CursorIdx = 9, 9
	w.Resync(set)
	if w.TopIdx != 1 || w.CursorIdx != 2 {
		t.Errorf("TopIdx %d CursorIdx %d, want 1 and 2", w.TopIdx, w.CursorIdx)
	}
	checkCursor(t, w, 0, 1)
}
