package app

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/chonker/internal/config"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/input"
	"github.com/dshills/chonker/internal/layout"
)

func newTestState(t *testing.T, opts ...Option) *State {
	t.Helper()
	doc := &Document{Tokens: []layout.Token{
		{Content: "Hello", HPos: 10, VPos: 100, Width: 40, Height: 12},
		{Content: "World", HPos: 60, VPos: 100, Width: 40, Height: 12},
		{Content: "Bye", HPos: 10, VPos: 130, Width: 24, Height: 12},
	}}
	s := NewState(doc, config.Default(), opts...)
	if err := s.Apply(Resize{Width: 80, Height: 25}); err != nil {
		t.Fatal(err)
	}
	return s
}

// feed runs events through Dispatch and Apply like one frame each.
func feed(t *testing.T, s *State, events ...input.Event) {
	t.Helper()
	for _, ev := range events {
		if err := s.Apply(Dispatch(ev, s.View())); err != nil {
			t.Fatalf("Apply(%v) error = %v", ev, err)
		}
	}
}

func TestStateTyping(t *testing.T) {
	s := newTestState(t)
	feed(t, s, input.Char('>'), input.Char(' '))

	if got, want := s.Buffer().Text(), "> Hello World\nBye"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if s.Cursor().Pos() != 2 {
		t.Errorf("cursor = %d, want 2", s.Cursor().Pos())
	}
	if !s.Modified() {
		t.Error("typing should mark the session modified")
	}

	feed(t, s, input.KeyEvent{Key: input.KeyBackspace}, input.KeyEvent{Key: input.KeyBackspace})
	if got := s.Buffer().Text(); got != "Hello World\nBye" {
		t.Errorf("after backspace Text() = %q", got)
	}
	if s.Cursor().Pos() != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor().Pos())
	}

	// backspace at the start is a no-op
	feed(t, s, input.KeyEvent{Key: input.KeyBackspace})
	if s.Buffer().Len() != len("Hello World\nBye") {
		t.Error("backspace at offset 0 changed the buffer")
	}
}

func TestStateDeleteForward(t *testing.T) {
	s := newTestState(t)
	feed(t, s, input.KeyEvent{Key: input.KeyEnd}, input.KeyEvent{Key: input.KeyDelete})
	if got := s.Buffer().Text(); got != "Hello WorldBye" {
		t.Errorf("Text() = %q", got)
	}
	if s.Cursor().Pos() != 11 {
		t.Errorf("cursor = %d, want 11", s.Cursor().Pos())
	}

	feed(t, s, input.KeyEvent{Key: input.KeyEnd})
	end := s.Cursor().Pos()
	feed(t, s, input.KeyEvent{Key: input.KeyDelete})
	if s.Cursor().Pos() != end || s.Buffer().Len() != 14 {
		t.Error("delete at the end should do nothing")
	}
}

func TestStateMovement(t *testing.T) {
	s := newTestState(t)
	feed(t, s,
		input.KeyEvent{Key: input.KeyRight},
		input.KeyEvent{Key: input.KeyRight},
		input.KeyEvent{Key: input.KeyDown},
	)
	if got := s.Cursor().Pos(); got != 14 {
		t.Errorf("cursor after right,right,down = %d, want 14", got)
	}
	feed(t, s, input.KeyEvent{Key: input.KeyHome})
	if got := s.Cursor().Pos(); got != 12 {
		t.Errorf("cursor after home = %d, want 12", got)
	}
}

func TestStateClick(t *testing.T) {
	s := newTestState(t)
	if err := s.Apply(Click{At: geom.Pt(30, 106)}); err != nil {
		t.Fatal(err)
	}
	if got := s.Cursor().Pos(); got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
	// a miss leaves the cursor alone
	if err := s.Apply(Click{At: geom.Pt(500, 500)}); err != nil {
		t.Fatal(err)
	}
	if got := s.Cursor().Pos(); got != 2 {
		t.Errorf("cursor after miss = %d, want 2", got)
	}
}

func TestStateZoom(t *testing.T) {
	s := newTestState(t)
	if err := s.Apply(Zoom{Factor: ZoomStep}); err != nil {
		t.Fatal(err)
	}
	if s.Transform().Scale != ZoomStep {
		t.Errorf("Scale = %v, want %v", s.Transform().Scale, ZoomStep)
	}

	err := s.Apply(Zoom{Factor: 100})
	if !errors.Is(err, ErrZoomLimit) {
		t.Errorf("error = %v, want ErrZoomLimit", err)
	}
	if !IsRecoverable(err) {
		t.Error("zoom limit should be recoverable")
	}

	if err := s.Apply(ZoomFit{}); err != nil {
		t.Fatal(err)
	}
	tf := s.Transform()
	if want := 640.0 / 90.0; math.Abs(tf.Scale-want) > 1e-9 {
		t.Errorf("fit Scale = %v, want %v", tf.Scale, want)
	}
	if p := tf.DocumentToScreen(tf.Document.Min); math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("page corner at %v, want origin", p)
	}
}

func TestStatePanAndResize(t *testing.T) {
	s := newTestState(t)
	vp := s.Transform().Viewport
	if vp.Width() != 640 || vp.Height() != 360 {
		t.Errorf("viewport = %v, want 640x360", vp)
	}
	if s.View().Rows != 24 {
		t.Errorf("View().Rows = %d", s.View().Rows)
	}
	if err := s.Apply(Pan{Delta: geom.Vec{X: 5, Y: -7}}); err != nil {
		t.Fatal(err)
	}
	if got := s.Transform().Viewport.Min; got != geom.Pt(5, -7) {
		t.Errorf("Viewport.Min = %v", got)
	}
}

func TestStateSourceMode(t *testing.T) {
	s := newTestState(t)
	err := s.Apply(ToggleSource{})
	if !errors.Is(err, ErrNoSource) || s.Mode() != ModeEdit {
		t.Fatalf("toggle without source: err = %v, mode = %v", err, s.Mode())
	}

	s = newTestState(t, WithSource("<a>\n  <b/>\n</a>\n"))
	feed(t, s, input.KeyEvent{Key: input.KeyCtrlX})
	if s.Mode() != ModeSource {
		t.Fatal("expected source mode")
	}
	feed(t, s, input.KeyEvent{Key: input.KeyDown}, input.KeyEvent{Key: input.KeyDown}, input.KeyEvent{Key: input.KeyDown})
	if got := s.SourceLines(5); len(got) != 1 || got[0] != "</a>" {
		t.Errorf("SourceLines = %q", got)
	}
	feed(t, s, input.KeyEvent{Key: input.KeyEscape})
	if s.Mode() != ModeEdit {
		t.Error("escape should return to edit mode")
	}
}

func TestStateSave(t *testing.T) {
	s := newTestState(t)
	if err := s.Save(); !errors.Is(err, ErrNoSavePath) {
		t.Errorf("Save() error = %v, want ErrNoSavePath", err)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	s = newTestState(t, WithSavePath(path))
	feed(t, s, input.Char('!'), input.KeyEvent{Key: input.KeyCtrlS})
	if s.Modified() {
		t.Error("save should clear the modified flag")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "!Hello World\nBye" {
		t.Errorf("saved %q", data)
	}
}

func TestStateQuitAndTick(t *testing.T) {
	s := newTestState(t)
	now := time.Now()
	feed(t, s, input.TickEvent{Now: now}, input.TickEvent{Now: now.Add(600 * time.Millisecond)})
	if s.Cursor().Visible() {
		t.Error("caret should blink off after the interval")
	}
	if _, ok := s.Cursor().ScreenPos(); !ok {
		t.Error("caret at offset 0 should have a screen position")
	}
	feed(t, s, input.InterruptEvent{})
	if !s.Done() {
		t.Error("interrupt should end the session")
	}
}

func TestStateElementsStayValid(t *testing.T) {
	s := newTestState(t)
	feed(t, s,
		input.KeyEvent{Key: input.KeyEnd},
		input.PasteEvent{Text: " again"},
		input.KeyEvent{Key: input.KeyHome},
		input.KeyEvent{Key: input.KeyDelete},
	)
	var prev spatial.ElementRange
	for i, e := range s.Buffer().Elements() {
		if e.RopeStart > e.RopeEnd || e.RopeEnd > s.Buffer().Len() || (i > 0 && e.RopeStart < prev.RopeEnd) {
			t.Errorf("element %d invalid: %+v", i, e)
		}
		prev = e
	}
}
