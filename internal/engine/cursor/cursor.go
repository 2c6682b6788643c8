package cursor

import (
	"fmt"
	"time"

	"github.com/dshills/chonker/internal/engine/rope"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/geom"
)

// DefaultBlinkInterval is the time between caret visibility toggles.
const DefaultBlinkInterval = 500 * time.Millisecond

// Text is the buffer surface the cursor navigates.
type Text interface {
	Len() int
	Slice(start, end int) string
	OffsetToPoint(pos int) rope.Point
	PointToOffset(p rope.Point) int
	LineStart(line int) int
	LineEnd(line int) int
	RopeToScreen(pos int, t spatial.Transformer) (geom.Point, bool)
	ScreenToRope(p geom.Point, t spatial.Transformer) (int, bool)
}

// Option configures a Cursor.
type Option func(*Cursor)

// WithBlinkInterval sets the blink period. Zero disables blinking.
func WithBlinkInterval(d time.Duration) Option {
	return func(c *Cursor) {
		if d >= 0 {
			c.interval = d
		}
	}
}

// Cursor is the caret of the spatial editor.
type Cursor struct {
	pos       int
	goalCol   int
	screen    geom.Point
	hasScreen bool
	visible   bool
	lastBlink time.Time
	interval  time.Duration
}

// New creates a visible cursor at offset 0.
func New(opts ...Option) *Cursor {
	c := &Cursor{visible: true, goalCol: -1, interval: DefaultBlinkInterval}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pos returns the cursor's character offset.
func (c *Cursor) Pos() int { return c.pos }

// ScreenPos returns the caret's screen position as of the last Refresh.
// ok is false when the offset has no on-screen location.
func (c *Cursor) ScreenPos() (p geom.Point, ok bool) { return c.screen, c.hasScreen }

// Visible reports the blink phase.
func (c *Cursor) Visible() bool { return c.visible }

// String returns a short description for debugging.
func (c *Cursor) String() string {
	return fmt.Sprintf("Cursor(%d)", c.pos)
}

// MoveTo places the cursor at pos, clamped to [0, Len()].
func (c *Cursor) MoveTo(pos int, text Text) {
	c.set(pos, text)
	c.goalCol = -1
}

func (c *Cursor) set(pos int, text Text) {
	c.pos = min(max(pos, 0), text.Len())
	c.visible = true
	c.lastBlink = time.Time{}
}

// MoveToScreen places the cursor at the character under a screen point.
// It reports false and leaves the cursor alone on a miss.
func (c *Cursor) MoveToScreen(p geom.Point, text Text, t spatial.Transformer) bool {
	pos, ok := text.ScreenToRope(p, t)
	if !ok {
		return false
	}
	c.MoveTo(pos, text)
	return true
}

// Refresh recomputes the caret's screen position and advances the blink
// phase. Call it once per frame.
func (c *Cursor) Refresh(text Text, t spatial.Transformer, now time.Time) {
	c.screen, c.hasScreen = text.RopeToScreen(c.pos, t)
	if c.interval == 0 {
		c.visible = true
		return
	}
	if c.lastBlink.IsZero() {
		c.lastBlink = now
		return
	}
	if now.Sub(c.lastBlink) >= c.interval {
		c.visible = !c.visible
		c.lastBlink = now
	}
}

// Left moves back by one grapheme cluster.
func (c *Cursor) Left(text Text) {
	if c.pos == 0 {
		return
	}
	c.MoveTo(c.pos-lastClusterLen(text, c.pos), text)
}

// Right moves forward by one grapheme cluster.
func (c *Cursor) Right(text Text) {
	if c.pos >= text.Len() {
		return
	}
	c.MoveTo(c.pos+firstClusterLen(text, c.pos), text)
}

// Up moves to the previous line, keeping the goal column.
func (c *Cursor) Up(text Text) { c.vertical(text, -1) }

// Down moves to the next line, keeping the goal column.
func (c *Cursor) Down(text Text) { c.vertical(text, 1) }

func (c *Cursor) vertical(text Text, delta int) {
	p := text.OffsetToPoint(c.pos)
	if c.goalCol < 0 {
		c.goalCol = p.Column
	}
	line := p.Line + delta
	if line < 0 {
		c.set(0, text)
		return
	}
	target := text.PointToOffset(rope.Point{Line: line, Column: c.goalCol})
	if text.OffsetToPoint(target).Line != line {
		// past the last line
		target = text.Len()
	}
	c.set(target, text)
}

// Home moves to the start of the current line.
func (c *Cursor) Home(text Text) {
	c.MoveTo(text.LineStart(text.OffsetToPoint(c.pos).Line), text)
}

// End moves to the end of the current line.
func (c *Cursor) End(text Text) {
	c.MoveTo(text.LineEnd(text.OffsetToPoint(c.pos).Line), text)
}

// AfterInsert keeps the cursor on the same text after n characters were
// inserted at pos. An insert at the cursor pushes it forward.
func (c *Cursor) AfterInsert(pos, n int) {
	c.pos = TransformInsert(c.pos, pos, n)
	c.goalCol = -1
}

// AfterDelete keeps the cursor on the same text after [start, end) was
// removed.
func (c *Cursor) AfterDelete(start, end int) {
	c.pos = TransformDelete(c.pos, start, end)
	c.goalCol = -1
}
