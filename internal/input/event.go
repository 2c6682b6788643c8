package input

import (
	"fmt"
	"time"
)

// Event is one input occurrence.
type Event interface {
	event()
}

// KeyEvent is a key press. Rune is set when Key is KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  ModMask
}

// MouseEvent reports the pointer in terminal cells.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Mod    ModMask
}

// ResizeEvent reports new terminal dimensions in cells.
type ResizeEvent struct {
	Width, Height int
}

// PasteEvent carries bracketed-paste text.
type PasteEvent struct {
	Text string
}

// TickEvent advances time-driven state such as the caret blink.
type TickEvent struct {
	Now time.Time
}

// InterruptEvent asks the editor to stop, e.g. on SIGINT.
type InterruptEvent struct{}

func (KeyEvent) event()       {}
func (MouseEvent) event()     {}
func (ResizeEvent) event()    {}
func (PasteEvent) event()     {}
func (TickEvent) event()      {}
func (InterruptEvent) event() {}

// Char returns a key event for a printable rune.
func Char(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

func (e KeyEvent) String() string {
	if e.Key == KeyRune {
		return fmt.Sprintf("%s%q", e.Mod, e.Rune)
	}
	return e.Mod.String() + e.Key.String()
}
