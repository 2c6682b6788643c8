// Package spatial keeps a page's text addressable two ways at once: as a
// linear character sequence stored in a rope, and as the set of bounding
// boxes the text came from.
//
// Each source token owns an ElementRange: the half-open character span
// of its text in the rope plus its box on the page. Edits go through
// Buffer, which updates the rope and every range in one transaction so
// that ranges stay sorted, disjoint, and inside the text. A uniform grid
// answers "which element is under this point".
//
// Range bookkeeping on insert at position p with n characters:
//
//	start >= p         shift right by n
//	start < p <= end   grow by n, mark modified
//	end < p            unchanged
//
// On delete of [s, e) with n = e - s:
//
//	start > e          shift left by n
//	end > s            clamp into s, shrink, mark modified
//	end <= s           unchanged
//
// A range starting exactly at e lands in the second case: its bounds come
// out the same as a shift, but it is marked modified.
package spatial
