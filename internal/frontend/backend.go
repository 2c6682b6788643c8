// Package frontend draws a chonker session in a terminal and feeds the
// terminal's input back to it.
package frontend

import (
	"sync"

	"github.com/dshills/chonker/internal/input"
)

// Backend is a cell-addressed display with an input queue.
type Backend interface {
	// Init prepares the display. Call it before anything else.
	Init() error

	// Shutdown restores the terminal.
	// A blocked PollEvent returns nil afterwards.
	Shutdown()

	// Size returns the display size in cells.
	Size() (width, height int)

	// SetContent sets one cell. comb holds combining runes that follow
	// mainc in the same grapheme. Positions outside the terminal are
	// silently ignored.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Clear blanks every cell.
	Clear()

	// Show flushes changes to the display.
	Show()

	// ShowCursor places the caret at cell (x, y).
	ShowCursor(x, y int)

	// HideCursor removes the caret.
	HideCursor()

	// PollEvent waits for and returns the next event, or nil once the
	// backend has shut down.
	PollEvent() input.Event

	// PostEvent queues a synthetic event.
	PostEvent(ev input.Event)
}

// cell is one NullBackend screen position.
type cell struct {
	str   string
	style Style
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	events        chan input.Event
	closed        bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan input.Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
	return nil
}

func (b *NullBackend) reset() {
	b.cells = make([][]cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = cell{str: " ", style: DefaultStyle()}
		}
	}
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell{str: string(mainc) + string(comb), style: style}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY, b.cursorVisible = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() input.Event {
	ev, ok := <-b.events
	if !ok {
		return nil
	}
	return ev
}

func (b *NullBackend) PostEvent(ev input.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
		// full queue: drop
	}
}

// Row returns the text of screen row y.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.cells) {
		return ""
	}
	var s string
	for _, c := range b.cells[y] {
		s += c.str
	}
	return s
}

// StyleAt returns the style of cell (x, y).
func (b *NullBackend) StyleAt(x, y int) Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.cells) || x < 0 || x >= b.width {
		return DefaultStyle()
	}
	return b.cells[y][x].style
}

// CursorPosition returns where the caret was last placed.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Shows returns how many frames were flushed.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Resize changes the size, blanks the cells and queues a ResizeEvent.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.reset()
	b.mu.Unlock()
	b.PostEvent(input.ResizeEvent{Width: width, Height: height})
}
