package app

import (
	"time"

	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/input"
)

// Mode selects what the editor shows.
type Mode int

const (
	// ModeEdit shows the spatial document.
	ModeEdit Mode = iota
	// ModeSource shows the raw source document, indented.
	ModeSource
)

func (m Mode) String() string {
	if m == ModeSource {
		return "SOURCE"
	}
	return "EDIT"
}

// Direction is a caret motion.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirLineStart
	DirLineEnd
)

// Zoom steps and limits.
const (
	ZoomStep = 1.25
	MinScale = 0.25
	MaxScale = 8.0
)

// View is the read-only slice of State that Dispatch needs.
type View struct {
	Mode Mode

	// CellWidth and CellHeight give the size of one terminal cell in
	// screen points.
	CellWidth, CellHeight float64

	// Rows is the number of terminal rows available to the document.
	Rows int
}

// Action is an effect for State.Apply. Dispatch produces them.
type Action interface {
	action()
}

type (
	// NoAction ignores the event.
	NoAction struct{}

	// InsertText types Text at the cursor.
	InsertText struct{ Text string }

	// DeleteBackward removes the grapheme before the cursor.
	DeleteBackward struct{}

	// DeleteForward removes the grapheme after the cursor.
	DeleteForward struct{}

	// MoveCursor moves the caret.
	MoveCursor struct{ Dir Direction }

	// Click places the caret at a screen point.
	Click struct{ At geom.Point }

	// Zoom scales the view by Factor around Anchor (screen space).
	Zoom struct {
		Anchor geom.Point
		Factor float64
	}

	// ZoomFit scales the page to the viewport width.
	ZoomFit struct{}

	// Pan moves the view by Delta screen points.
	Pan struct{ Delta geom.Vec }

	// Resize sets the terminal size in cells.
	Resize struct{ Width, Height int }

	// ScrollSource scrolls the source view by Lines.
	ScrollSource struct{ Lines int }

	// ToggleSource switches between ModeEdit and ModeSource.
	ToggleSource struct{}

	// Tick advances the caret blink.
	Tick struct{ Now time.Time }

	// Save writes the text to the save path.
	Save struct{}

	// Quit ends the session.
	Quit struct{}
)

func (NoAction) action()       {}
func (InsertText) action()     {}
func (DeleteBackward) action() {}
func (DeleteForward) action()  {}
func (MoveCursor) action()     {}
func (Click) action()          {}
func (Zoom) action()           {}
func (ZoomFit) action()        {}
func (Pan) action()            {}
func (Resize) action()         {}
func (ScrollSource) action()   {}
func (ToggleSource) action()   {}
func (Tick) action()           {}
func (Save) action()           {}
func (Quit) action()           {}

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// Dispatch maps one input event to an action. It has no side effects.
func Dispatch(ev input.Event, v View) Action {
	switch ev := ev.(type) {
	case input.KeyEvent:
		return dispatchKey(ev, v)
	case input.MouseEvent:
		return dispatchMouse(ev, v)
	case input.ResizeEvent:
		return Resize{Width: ev.Width, Height: ev.Height}
	case input.PasteEvent:
		if v.Mode != ModeEdit || ev.Text == "" {
			return NoAction{}
		}
		return InsertText{Text: ev.Text}
	case input.TickEvent:
		return Tick{Now: ev.Now}
	case input.InterruptEvent:
		return Quit{}
	}
	return NoAction{}
}

func dispatchKey(ev input.KeyEvent, v View) Action {
	switch ev.Key {
	case input.KeyCtrlQ, input.KeyCtrlC:
		return Quit{}
	case input.KeyCtrlS:
		return Save{}
	case input.KeyCtrlX, input.KeyF1:
		return ToggleSource{}
	}

	if v.Mode == ModeSource {
		page := max(v.Rows-1, 1)
		switch ev.Key {
		case input.KeyEscape:
			return ToggleSource{}
		case input.KeyUp:
			return ScrollSource{Lines: -1}
		case input.KeyDown:
			return ScrollSource{Lines: 1}
		case input.KeyPageUp:
			return ScrollSource{Lines: -page}
		case input.KeyPageDown:
			return ScrollSource{Lines: page}
		}
		return NoAction{}
	}

	if ev.Mod.Has(input.ModAlt) {
		return dispatchView(ev, v)
	}

	switch ev.Key {
	case input.KeyRune:
		return InsertText{Text: string(ev.Rune)}
	case input.KeyEnter:
		return InsertText{Text: "\n"}
	case input.KeyBackspace:
		return DeleteBackward{}
	case input.KeyDelete:
		return DeleteForward{}
	case input.KeyLeft:
		return MoveCursor{Dir: DirLeft}
	case input.KeyRight:
		return MoveCursor{Dir: DirRight}
	case input.KeyUp:
		return MoveCursor{Dir: DirUp}
	case input.KeyDown:
		return MoveCursor{Dir: DirDown}
	case input.KeyHome:
		return MoveCursor{Dir: DirLineStart}
	case input.KeyEnd:
		return MoveCursor{Dir: DirLineEnd}
	case input.KeyPageUp:
		return Pan{Delta: geom.Vec{Y: float64(max(v.Rows-1, 1)) * v.CellHeight}}
	case input.KeyPageDown:
		return Pan{Delta: geom.Vec{Y: -float64(max(v.Rows-1, 1)) * v.CellHeight}}
	}
	return NoAction{}
}

// dispatchView handles Alt chords: arrows pan, + and - zoom around the
// top-left corner, 0 fits the page width.
func dispatchView(ev input.KeyEvent, v View) Action {
	switch ev.Key {
	case input.KeyLeft:
		return Pan{Delta: geom.Vec{X: 4 * v.CellWidth}}
	case input.KeyRight:
		return Pan{Delta: geom.Vec{X: -4 * v.CellWidth}}
	case input.KeyUp:
		return Pan{Delta: geom.Vec{Y: v.CellHeight}}
	case input.KeyDown:
		return Pan{Delta: geom.Vec{Y: -v.CellHeight}}
	case input.KeyRune:
		switch ev.Rune {
		case '+', '=':
			return Zoom{Factor: ZoomStep}
		case '-', '_':
			return Zoom{Factor: 1 / ZoomStep}
		case '0':
			return ZoomFit{}
		}
	}
	return NoAction{}
}

func dispatchMouse(ev input.MouseEvent, v View) Action {
	at := CellCenter(ev.X, ev.Y, v.CellWidth, v.CellHeight)
	switch ev.Button {
	case input.MouseLeft:
		if v.Mode != ModeEdit {
			return NoAction{}
		}
		return Click{At: at}
	case input.MouseWheelUp:
		if v.Mode == ModeSource {
			return ScrollSource{Lines: -wheelLines}
		}
		if ev.Mod.Has(input.ModCtrl) {
			return Zoom{Anchor: at, Factor: ZoomStep}
		}
		return Pan{Delta: geom.Vec{Y: wheelLines * v.CellHeight}}
	case input.MouseWheelDown:
		if v.Mode == ModeSource {
			return ScrollSource{Lines: wheelLines}
		}
		if ev.Mod.Has(input.ModCtrl) {
			return Zoom{Anchor: at, Factor: 1 / ZoomStep}
		}
		return Pan{Delta: geom.Vec{Y: -wheelLines * v.CellHeight}}
	case input.MouseWheelLeft:
		return Pan{Delta: geom.Vec{X: 4 * v.CellWidth}}
	case input.MouseWheelRight:
		return Pan{Delta: geom.Vec{X: -4 * v.CellWidth}}
	}
	return NoAction{}
}

// CellCenter returns the screen point at the middle of terminal cell
// (col, row).
func CellCenter(col, row int, cellW, cellH float64) geom.Point {
	return geom.Pt((float64(col)+0.5)*cellW, (float64(row)+0.5)*cellH)
}
