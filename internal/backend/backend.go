// Package backend abstracts the terminal the host draws on.
package backend

// Color is a 24-bit colour or the terminal default.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault is the terminal's default colour.
var ColorDefault = Color{Default: true}

// RGB returns a true colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Attr is a set of text attributes.
type Attr uint8

// Text attributes.
const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style is the appearance of a cell.
type Style struct {
	Fg, Bg Color
	Attr   Attr
}

// StyleDefault uses the terminal's default colours.
var StyleDefault = Style{Fg: ColorDefault, Bg: ColorDefault}

// EventType identifies the kind of an event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Key is a decoded key.
type Key int

// Keys. Control chords are reported as KeyCtrl with the lower-case letter
// in Rune.
const (
	KeyNone Key = iota
	KeyRune
	KeyCtrl
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask is the modifier state of a key event.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether m contains mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Event is a terminal or host event.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	Width, Height int

	// Data is the payload of an EventInterrupt.
	Data any
}

// Backend is a drawing surface with an event queue.
type Backend interface {
	// Init prepares the backend. It must be called first.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	Size() (width, height int)

	// SetContent sets one cell to a grapheme cluster: a base rune and its
	// combining runes. Cells outside the screen are ignored.
	SetContent(x, y int, mainc rune, combc []rune, style Style)

	Clear()

	// Show flushes pending changes to the display.
	Show()

	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks until the next event. It returns EventNone after
	// Shutdown.
	PollEvent() Event

	// PostEvent queues an event from another goroutine.
	PostEvent(ev Event) error
}
