package spatial

import (
	"fmt"
	"math"
	"sync"

	"github.com/dshills/chonker/internal/engine/grid"
	"github.com/dshills/chonker/internal/engine/rope"
	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/logging"
)

// Buffer is the spatial text buffer: a rope plus the element ranges and
// grid index that map it onto the page. All methods are safe for
// concurrent use; each mutation is applied as a single transaction.
type Buffer struct {
	mu       sync.RWMutex
	rope     rope.Rope
	elements []ElementRange
	index    *grid.Index
	dirty    *grid.DirtyTracker
	params   Params
	revision uint64
	log      *logging.Logger
}

func newBuffer(opts []Option) *Buffer {
	b := &Buffer{
		rope:   rope.New(),
		params: DefaultParams(),
		dirty:  grid.NewDirtyTracker(),
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.index = grid.New(b.params.CellSize)
	return b
}

// Build lays tokens out into a buffer. Tokens are written in input order;
// a token whose vertical position differs from the current line by more
// than the same-line tolerance starts a new line, and tokens on one line
// are separated by exactly one space. Each token's range covers only its
// own text.
func Build(tokens []layout.Token, opts ...Option) *Buffer {
	b := newBuffer(opts)

	var (
		sb       rope.Builder
		elements = make([]ElementRange, 0, len(tokens))
		lineV    float64
	)
	for i, tok := range tokens {
		if i == 0 {
			lineV = tok.VPos
		} else if math.Abs(tok.VPos-lineV) > b.params.SameLineTolerance {
			sb.WriteRune('\n')
			lineV = tok.VPos
		}

		start := sb.Len()
		sb.WriteString(tok.Content)
		bounds := tok.Bounds()
		elements = append(elements, ElementRange{
			RopeStart:      start,
			RopeEnd:        sb.Len(),
			ElementID:      i,
			VisualBounds:   bounds,
			OriginalBounds: bounds,
		})

		if i+1 < len(tokens) && math.Abs(tokens[i+1].VPos-lineV) <= b.params.SameLineTolerance {
			sb.WriteRune(' ')
		}
	}

	b.rope = sb.Build()
	b.elements = elements
	b.rebuildIndex()
	b.log.Debug("built buffer from %d tokens (%d chars)", len(tokens), b.rope.Len())
	return b
}

// FromText creates a buffer over text with caller-supplied element ranges.
// Ranges must be sorted, disjoint and lie within text.
func FromText(text string, elements []ElementRange, opts ...Option) (*Buffer, error) {
	b := newBuffer(opts)
	b.rope = rope.FromString(text)
	if err := checkRanges(elements, b.rope.Len()); err != nil {
		return nil, err
	}
	b.elements = append([]ElementRange(nil), elements...)
	b.rebuildIndex()
	return b, nil
}

// rebuildIndex re-registers every element's visual bounds. Caller holds mu.
func (b *Buffer) rebuildIndex() {
	rects := make([]geom.Rect, len(b.elements))
	for i, e := range b.elements {
		rects[i] = e.VisualBounds
	}
	b.index.Rebuild(rects)
	b.dirty.MarkAll()
	cols, rows := b.index.Dims()
	b.log.Debug("spatial index rebuilt: %d elements, %dx%d cells of %g", len(rects), cols, rows, b.index.Step())
}

// Params returns the buffer's settings.
func (b *Buffer) Params() Params { return b.params }

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// Text returns the full linear text.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// Slice returns the text in [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Slice(start, end)
}

// Snapshot returns the current rope. Ropes are immutable, so the
// snapshot stays valid while the buffer is edited.
func (b *Buffer) Snapshot() rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope
}

// Revision returns a counter incremented by every successful mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineCount returns the number of lines in the linear text.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// LineStart returns the offset of the first character of line.
func (b *Buffer) LineStart(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineStart(line)
}

// LineEnd returns the offset of the end of line, excluding its newline.
func (b *Buffer) LineEnd(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineEnd(line)
}

// OffsetToPoint converts a character offset to a line/column position.
func (b *Buffer) OffsetToPoint(pos int) rope.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.CharToPoint(pos)
}

// PointToOffset converts a line/column position to a character offset.
func (b *Buffer) PointToOffset(p rope.Point) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.PointToChar(p)
}

// ElementCount returns the number of element ranges.
func (b *Buffer) ElementCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.elements)
}

// Elements returns a copy of all element ranges in rope order.
func (b *Buffer) Elements() []ElementRange {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]ElementRange(nil), b.elements...)
}

// Element returns the range at index idx.
func (b *Buffer) Element(idx int) (ElementRange, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if idx < 0 || idx >= len(b.elements) {
		return ElementRange{}, ErrElementNotFound
	}
	return b.elements[idx], nil
}

// ElementText returns the current text of the element at idx.
func (b *Buffer) ElementText(idx int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if idx < 0 || idx >= len(b.elements) {
		return "", ErrElementNotFound
	}
	e := b.elements[idx]
	return b.rope.Slice(e.RopeStart, e.RopeEnd), nil
}

// ElementView is an element range together with its current text.
type ElementView struct {
	ElementRange
	Text string
}

// Views returns every element with its text, for rendering a frame.
func (b *Buffer) Views() []ElementView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]ElementView, len(b.elements))
	for i, e := range b.elements {
		out[i] = ElementView{ElementRange: e, Text: b.rope.Slice(e.RopeStart, e.RopeEnd)}
	}
	return out
}

// DocumentBounds returns the union of all visual bounds.
func (b *Buffer) DocumentBounds() (geom.Rect, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.Bounds()
}

// DirtyRegions returns the document areas changed since the last
// ClearDirty, and whether the whole page should be repainted.
func (b *Buffer) DirtyRegions() ([]geom.Rect, bool) {
	return b.dirty.Regions()
}

// ClearDirty marks the buffer as fully painted.
func (b *Buffer) ClearDirty() {
	b.dirty.Clear()
}

// String returns a short description for debugging.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fmt.Sprintf("spatial.Buffer{chars=%d, elements=%d, rev=%d}", b.rope.Len(), len(b.elements), b.revision)
}
