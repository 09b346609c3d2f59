package backend

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// Memory is an in-memory Backend for tests and headless runs.
type Memory struct {
	mu            sync.Mutex
	width, height int
	cells         []string
	styles        []Style
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	events        chan Event
	done          chan struct{}
	closeOnce     sync.Once
}

// NewMemory creates a memory backend of the given size.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	m.resize(width, height)
	return m
}

func (m *Memory) resize(width, height int) {
	m.width, m.height = width, height
	m.cells = make([]string, width*height)
	m.styles = make([]Style, width*height)
	for i := range m.cells {
		m.cells[i] = " "
		m.styles[i] = StyleDefault
	}
}

func (m *Memory) Init() error { return nil }

// Shutdown makes PollEvent return EventNone once the queue is drained.
func (m *Memory) Shutdown() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Memory) SetContent(x, y int, mainc rune, combc []rune, style Style) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	i := y*m.width + x
	m.cells[i] = string(mainc) + string(combc)
	m.styles[i] = style
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resize(m.width, m.height)
}

func (m *Memory) Show() {
	m.mu.Lock()
	m.shows++
	m.mu.Unlock()
}

func (m *Memory) ShowCursor(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorX, m.cursorY, m.cursorVisible = x, y, true
}

func (m *Memory) HideCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorVisible = false
}

func (m *Memory) PollEvent() Event {
	select {
	case ev := <-m.events:
		return ev
	case <-m.done:
		select {
		case ev := <-m.events:
			return ev
		default:
			return Event{Type: EventNone}
		}
	}
}

func (m *Memory) PostEvent(ev Event) error {
	select {
	case m.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Resize changes the size and queues a resize event.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	m.resize(width, height)
	m.mu.Unlock()
	_ = m.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// Row returns row y as text with trailing blanks removed. The cell after a
// wide cluster is covered by it and skipped.
func (m *Memory) Row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	var sb strings.Builder
	row := m.cells[y*m.width : (y+1)*m.width]
	for x := 0; x < len(row); x++ {
		sb.WriteString(row[x])
		if uniseg.StringWidth(row[x]) == 2 {
			x++
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Rows returns every row, see Row.
func (m *Memory) Rows() []string {
	_, h := m.Size()
	out := make([]string, h)
	for y := range out {
		out[y] = m.Row(y)
	}
	return out
}

// StyleAt returns the style of a cell.
func (m *Memory) StyleAt(x, y int) Style {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return StyleDefault
	}
	return m.styles[y*m.width+x]
}

// Cursor returns the cursor position and visibility.
func (m *Memory) Cursor() (x, y int, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursorX, m.cursorY, m.cursorVisible
}

// Shows returns how many times Show was called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
