package frontend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/chonker/internal/input"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen  tcell.Screen
	mu      sync.Mutex
	paste   []rune
	inPaste bool
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// newTerminalWithScreen wraps an existing screen, e.g. a simulation
// screen in tests.
func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent returns the next event. Bracketed paste arrives from tcell as
// key events between two paste markers; they are collected into a single
// PasteEvent.
func (t *Terminal) PollEvent() input.Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out, ok := t.convertEvent(ev); ok {
			return out
		}
	}
}

func (t *Terminal) PostEvent(ev input.Event) {
	switch ev := ev.(type) {
	case input.KeyEvent:
		_ = t.screen.PostEvent(tcell.NewEventKey(convertToTcellKey(ev.Key), ev.Rune, convertToTcellMod(ev.Mod)))
	case input.InterruptEvent:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// convertEvent translates a tcell event. ok is false for events that
// produce nothing on their own.
func (t *Terminal) convertEvent(ev tcell.Event) (input.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if t.inPaste {
			switch e.Key() {
			case tcell.KeyRune:
				t.paste = append(t.paste, e.Rune())
			case tcell.KeyEnter:
				t.paste = append(t.paste, '\n')
			case tcell.KeyTab:
				t.paste = append(t.paste, '\t')
			}
			return nil, false
		}
		return input.KeyEvent{
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}, true

	case *tcell.EventMouse:
		x, y := e.Position()
		return input.MouseEvent{
			X:      x,
			Y:      y,
			Button: convertMouseButton(e.Buttons()),
			Mod:    convertMod(e.Modifiers()),
		}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return input.ResizeEvent{Width: w, Height: h}, true

	case *tcell.EventPaste:
		if e.Start() {
			t.inPaste, t.paste = true, t.paste[:0]
			return nil, false
		}
		t.inPaste = false
		return input.PasteEvent{Text: string(t.paste)}, true

	case *tcell.EventInterrupt:
		return input.InterruptEvent{}, true
	}
	return nil, false
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.Default {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.Default {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}
	if s.Attributes.Has(AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

// keyPairs binds each editor key to its tcell key. The first pair for a
// tcell key wins when converting back, so KeyBackspace2 is listed first.
var keyPairs = []struct {
	key input.Key
	tc  tcell.Key
}{
	{input.KeyRune, tcell.KeyRune},
	{input.KeyEscape, tcell.KeyEscape},
	{input.KeyEnter, tcell.KeyEnter},
	{input.KeyTab, tcell.KeyTab},
	{input.KeyBackspace, tcell.KeyBackspace2},
	{input.KeyBackspace, tcell.KeyBackspace},
	{input.KeyDelete, tcell.KeyDelete},
	{input.KeyHome, tcell.KeyHome},
	{input.KeyEnd, tcell.KeyEnd},
	{input.KeyPageUp, tcell.KeyPgUp},
	{input.KeyPageDown, tcell.KeyPgDn},
	{input.KeyUp, tcell.KeyUp},
	{input.KeyDown, tcell.KeyDown},
	{input.KeyLeft, tcell.KeyLeft},
	{input.KeyRight, tcell.KeyRight},
	{input.KeyF1, tcell.KeyF1},
	{input.KeyCtrlC, tcell.KeyCtrlC},
	{input.KeyCtrlQ, tcell.KeyCtrlQ},
	{input.KeyCtrlS, tcell.KeyCtrlS},
	{input.KeyCtrlX, tcell.KeyCtrlX},
}

var (
	fromTcellKey = make(map[tcell.Key]input.Key, len(keyPairs))
	toTcellKey   = make(map[input.Key]tcell.Key, len(keyPairs))
)

func init() {
	for _, p := range keyPairs {
		fromTcellKey[p.tc] = p.key
		if _, ok := toTcellKey[p.key]; !ok {
			toTcellKey[p.key] = p.tc
		}
	}
}

// convertKey maps a tcell key; keys the editor does not bind become KeyNone.
func convertKey(k tcell.Key) input.Key {
	return fromTcellKey[k]
}

func convertToTcellKey(k input.Key) tcell.Key {
	if tc, ok := toTcellKey[k]; ok {
		return tc
	}
	return tcell.KeyNUL
}

var modPairs = [...]struct {
	mod input.ModMask
	tc  tcell.ModMask
}{
	{input.ModShift, tcell.ModShift},
	{input.ModCtrl, tcell.ModCtrl},
	{input.ModAlt, tcell.ModAlt},
	{input.ModMeta, tcell.ModMeta},
}

func convertMod(m tcell.ModMask) input.ModMask {
	var mod input.ModMask
	for _, p := range modPairs {
		if m&p.tc != 0 {
			mod |= p.mod
		}
	}
	return mod
}

func convertToTcellMod(m input.ModMask) tcell.ModMask {
	var mod tcell.ModMask
	for _, p := range modPairs {
		if m.Has(p.mod) {
			mod |= p.tc
		}
	}
	return mod
}

// convertMouseButton picks the most significant button in the mask.
func convertMouseButton(b tcell.ButtonMask) input.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return input.MouseLeft
	case b&tcell.Button3 != 0:
		return input.MouseMiddle
	case b&tcell.Button2 != 0:
		return input.MouseRight
	case b&tcell.WheelUp != 0:
		return input.MouseWheelUp
	case b&tcell.WheelDown != 0:
		return input.MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return input.MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return input.MouseWheelRight
	default:
		return input.MouseNone
	}
}
