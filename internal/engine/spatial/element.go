package spatial

import "github.com/dshills/chonker/internal/geom"

// ElementRange ties a span of the rope to the box its text came from.
// RopeStart and RopeEnd are character offsets; the span is half-open.
type ElementRange struct {
	RopeStart int
	RopeEnd   int

	// ElementID is the ordinal of the originating token. It never changes.
	ElementID int

	// VisualBounds is where the element is drawn.
	VisualBounds geom.Rect

	// OriginalBounds is the token's box at load time.
	OriginalBounds geom.Rect

	// Overflow is set when the edited text no longer fits OriginalBounds.
	Overflow bool

	// Modified is set once an edit has touched the element's text.
	Modified bool
}

// Len returns the number of characters in the range.
func (e ElementRange) Len() int { return e.RopeEnd - e.RopeStart }

// Contains reports whether pos lies inside [RopeStart, RopeEnd).
func (e ElementRange) Contains(pos int) bool {
	return pos >= e.RopeStart && pos < e.RopeEnd
}

// estimatedWidth is the rendered width of n characters at avgCharWidth.
func estimatedWidth(n int, avgCharWidth float64) float64 {
	return float64(n) * avgCharWidth
}

// checkRanges verifies ranges are sorted, disjoint and within [0, length].
func checkRanges(ranges []ElementRange, length int) error {
	prevEnd := 0
	for _, r := range ranges {
		if r.RopeStart < 0 || r.RopeEnd < r.RopeStart || r.RopeEnd > length {
			return ErrRangeInvalid
		}
		if r.RopeStart < prevEnd {
			return ErrRangesOverlap
		}
		prevEnd = r.RopeEnd
	}
	return nil
}
