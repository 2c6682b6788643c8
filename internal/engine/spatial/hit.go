package spatial

import (
	"sort"

	"github.com/dshills/chonker/internal/geom"
)

// Transformer converts between screen and document coordinates.
type Transformer interface {
	ScreenToDocument(p geom.Point) geom.Point
	DocumentToScreen(p geom.Point) geom.Point
}

// ElementAtPoint returns the index of the element under a document point.
// When boxes overlap the element earliest in rope order wins.
func (b *Buffer) ElementAtPoint(p geom.Point) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.Find(p)
}

// ElementsIn returns the indices of elements whose boxes intersect area.
func (b *Buffer) ElementsIn(area geom.Rect) []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.Query(area)
}

// ElementAtOffset returns the index of the element owning pos: the one
// with RopeStart <= pos < RopeEnd, or failing that the one ending at pos.
func (b *Buffer) ElementAtOffset(pos int) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.elementAtOffset(pos)
}

func (b *Buffer) elementAtOffset(pos int) (int, bool) {
	es := b.elements
	i := sort.Search(len(es), func(i int) bool { return es[i].RopeEnd > pos })
	if i < len(es) && es[i].RopeStart <= pos {
		return i, true
	}
	if i > 0 && es[i-1].RopeEnd == pos {
		return i - 1, true
	}
	return -1, false
}

// DocumentToOffset maps a document point to a character offset by
// locating the element under it and interpolating across its width.
func (b *Buffer) DocumentToOffset(p geom.Point) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	idx, ok := b.index.Find(p)
	if !ok {
		return -1, false
	}
	e := b.elements[idx]
	off := 0
	if w := e.VisualBounds.Width(); w > 0 {
		off = int((p.X - e.VisualBounds.Min.X) / w * float64(e.Len()))
	}
	return e.RopeStart + min(max(off, 0), e.Len()), true
}

// CaretRect returns the document-space caret for pos: a zero-width box at
// the interpolated x position spanning the owning element's height.
func (b *Buffer) CaretRect(pos int) (geom.Rect, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	idx, ok := b.elementAtOffset(pos)
	if !ok {
		return geom.Rect{}, false
	}
	e := b.elements[idx]
	x := e.VisualBounds.Min.X
	if n := e.Len(); n > 0 {
		x += float64(pos-e.RopeStart) / float64(n) * e.VisualBounds.Width()
	}
	return geom.Rect{
		Min: geom.Pt(x, e.VisualBounds.Min.Y),
		Max: geom.Pt(x, e.VisualBounds.Max.Y),
	}, true
}

// ScreenToRope maps a screen point to a character offset.
func (b *Buffer) ScreenToRope(p geom.Point, t Transformer) (int, bool) {
	return b.DocumentToOffset(t.ScreenToDocument(p))
}

// RopeToScreen maps a character offset to the top of its caret on screen.
// ok is false when no element owns pos, for example inside a separator.
func (b *Buffer) RopeToScreen(pos int, t Transformer) (geom.Point, bool) {
	caret, ok := b.CaretRect(pos)
	if !ok {
		return geom.Point{}, false
	}
	return t.DocumentToScreen(caret.Min), true
}
