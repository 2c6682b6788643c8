package input

import "strings"

// Key identifies a keyboard key.
type Key int

// Keys the editor distinguishes.
const (
	KeyNone Key = iota
	KeyRune     // printable character, see KeyEvent.Rune
	KeyEscape
	KeyEnter
	KeyTab
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
	KeyCtrlC
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlX
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF1:        "F1",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlQ:     "Ctrl+Q",
	KeyCtrlS:     "Ctrl+S",
	KeyCtrlX:     "Ctrl+X",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Key(?)"
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// String renders the mask as a chord prefix, e.g. "Ctrl+Shift+".
func (m ModMask) String() string {
	var b strings.Builder
	for _, p := range []struct {
		mod  ModMask
		name string
	}{{ModCtrl, "Ctrl+"}, {ModAlt, "Alt+"}, {ModMeta, "Meta+"}, {ModShift, "Shift+"}} {
		if m.Has(p.mod) {
			b.WriteString(p.name)
		}
	}
	return b.String()
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)
