// Package input defines the events the editor reacts to.
//
// Event is a closed set: KeyEvent, MouseEvent, ResizeEvent, PasteEvent,
// TickEvent and InterruptEvent. Backends translate their native events
// into these, and the application consumes exactly one per frame with a
// type switch.
package input
