package app

import (
	"testing"
	"time"

	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/input"
)

func TestDispatch(t *testing.T) {
	edit := View{Mode: ModeEdit, CellWidth: 8, CellHeight: 15, Rows: 20}
	src := View{Mode: ModeSource, CellWidth: 8, CellHeight: 15, Rows: 20}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		ev   input.Event
		view View
		want Action
	}{
		{"rune inserts", input.Char('q'), edit, InsertText{Text: "q"}},
		{"enter inserts newline", input.KeyEvent{Key: input.KeyEnter}, edit, InsertText{Text: "\n"}},
		{"backspace", input.KeyEvent{Key: input.KeyBackspace}, edit, DeleteBackward{}},
		{"delete", input.KeyEvent{Key: input.KeyDelete}, edit, DeleteForward{}},
		{"left", input.KeyEvent{Key: input.KeyLeft}, edit, MoveCursor{Dir: DirLeft}},
		{"end", input.KeyEvent{Key: input.KeyEnd}, edit, MoveCursor{Dir: DirLineEnd}},
		{"page down pans", input.KeyEvent{Key: input.KeyPageDown}, edit, Pan{Delta: geom.Vec{Y: -19 * 15}}},
		{"alt plus zooms", input.KeyEvent{Key: input.KeyRune, Rune: '+', Mod: input.ModAlt}, edit, Zoom{Factor: ZoomStep}},
		{"alt zero fits", input.KeyEvent{Key: input.KeyRune, Rune: '0', Mod: input.ModAlt}, edit, ZoomFit{}},
		{"alt right pans", input.KeyEvent{Key: input.KeyRight, Mod: input.ModAlt}, edit, Pan{Delta: geom.Vec{X: -32}}},
		{"ctrl-s saves", input.KeyEvent{Key: input.KeyCtrlS}, edit, Save{}},
		{"ctrl-q quits", input.KeyEvent{Key: input.KeyCtrlQ}, src, Quit{}},
		{"ctrl-x toggles", input.KeyEvent{Key: input.KeyCtrlX}, edit, ToggleSource{}},
		{"source ignores typing", input.Char('q'), src, NoAction{}},
		{"source esc leaves", input.KeyEvent{Key: input.KeyEscape}, src, ToggleSource{}},
		{"source page down", input.KeyEvent{Key: input.KeyPageDown}, src, ScrollSource{Lines: 19}},
		{"click", input.MouseEvent{X: 2, Y: 1, Button: input.MouseLeft}, edit, Click{At: geom.Pt(20, 22.5)}},
		{"click in source", input.MouseEvent{Button: input.MouseLeft}, src, NoAction{}},
		{"wheel pans", input.MouseEvent{Button: input.MouseWheelDown}, edit, Pan{Delta: geom.Vec{Y: -45}}},
		{"ctrl wheel zooms", input.MouseEvent{X: 1, Button: input.MouseWheelUp, Mod: input.ModCtrl}, edit,
			Zoom{Anchor: geom.Pt(12, 7.5), Factor: ZoomStep}},
		{"wheel scrolls source", input.MouseEvent{Button: input.MouseWheelUp}, src, ScrollSource{Lines: -3}},
		{"resize", input.ResizeEvent{Width: 80, Height: 24}, edit, Resize{Width: 80, Height: 24}},
		{"paste", input.PasteEvent{Text: "abc"}, edit, InsertText{Text: "abc"}},
		{"paste in source", input.PasteEvent{Text: "abc"}, src, NoAction{}},
		{"tick", input.TickEvent{Now: now}, edit, Tick{Now: now}},
		{"interrupt", input.InterruptEvent{}, edit, Quit{}},
		{"unbound key", input.KeyEvent{Key: input.KeyTab}, edit, NoAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dispatch(tt.ev, tt.view); got != tt.want {
				t.Errorf("Dispatch(%v) = %#v, want %#v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestDispatchIsPure(t *testing.T) {
	v := View{Mode: ModeEdit, CellWidth: 8, CellHeight: 15, Rows: 10}
	ev := input.MouseEvent{X: 3, Y: 4, Button: input.MouseLeft}
	first := Dispatch(ev, v)
	for i := 0; i < 10; i++ {
		if got := Dispatch(ev, v); got != first {
			t.Fatalf("Dispatch not deterministic: %#v vs %#v", got, first)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeEdit.String() != "EDIT" || ModeSource.String() != "SOURCE" {
		t.Errorf("Mode strings = %q, %q", ModeEdit, ModeSource)
	}
}
