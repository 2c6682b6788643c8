// Package viewport converts between screen and document coordinates.
package viewport

import (
	"errors"
	"math"

	"github.com/dshills/chonker/internal/geom"
)

// ErrInvalidScale indicates a zoom factor that is not a positive finite number.
var ErrInvalidScale = errors.New("scale must be positive and finite")

// Transform maps document points onto a viewport rectangle on screen:
//
//	screen = doc*Scale + Viewport.Min
//	doc    = (screen - Viewport.Min) / Scale
//
// Transform is a value type; the mutating helpers return a new value.
type Transform struct {
	Viewport geom.Rect
	Document geom.Rect
	Scale    float64
}

// New creates a transform at scale 1.
func New(viewport, document geom.Rect) Transform {
	return Transform{Viewport: viewport, Document: document, Scale: 1}
}

func validScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0)
}

// ScreenToDocument converts a screen point to document space.
func (t Transform) ScreenToDocument(p geom.Point) geom.Point {
	return geom.Pt((p.X-t.Viewport.Min.X)/t.Scale, (p.Y-t.Viewport.Min.Y)/t.Scale)
}

// DocumentToScreen converts a document point to screen space.
func (t Transform) DocumentToScreen(p geom.Point) geom.Point {
	return geom.Pt(p.X*t.Scale+t.Viewport.Min.X, p.Y*t.Scale+t.Viewport.Min.Y)
}

// DocumentRectToScreen converts a document rectangle to screen space.
func (t Transform) DocumentRectToScreen(r geom.Rect) geom.Rect {
	return geom.Rect{Min: t.DocumentToScreen(r.Min), Max: t.DocumentToScreen(r.Max)}
}

// VisibleDocument returns the part of document space the viewport shows.
func (t Transform) VisibleDocument() geom.Rect {
	return geom.Rect{
		Min: t.ScreenToDocument(t.Viewport.Min),
		Max: t.ScreenToDocument(t.Viewport.Max),
	}
}

// WithScale returns t zoomed to scale.
func (t Transform) WithScale(scale float64) (Transform, error) {
	if !validScale(scale) {
		return t, ErrInvalidScale
	}
	t.Scale = scale
	return t, nil
}

// ZoomAt multiplies the scale by factor while keeping the document point
// under the screen position anchor fixed.
func (t Transform) ZoomAt(anchor geom.Point, factor float64) (Transform, error) {
	if !validScale(factor) || !validScale(t.Scale*factor) {
		return t, ErrInvalidScale
	}
	doc := t.ScreenToDocument(anchor)
	t.Scale *= factor
	shift := anchor.Sub(t.DocumentToScreen(doc))
	t.Viewport = t.Viewport.Translate(shift)
	return t, nil
}

// Pan moves the view by a screen-space offset.
func (t Transform) Pan(delta geom.Vec) Transform {
	t.Viewport = t.Viewport.Translate(delta)
	return t
}

// FitWidth returns the scale at which the document's width fills the
// viewport. It returns 1 for degenerate rectangles.
func (t Transform) FitWidth() float64 {
	if t.Document.Width() <= 0 || t.Viewport.Width() <= 0 {
		return 1
	}
	return t.Viewport.Width() / t.Document.Width()
}
