package spatial

import "errors"

// Errors returned by Buffer operations.
var (
	// ErrOffsetOutOfRange indicates a position outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates a range with start > end or outside the text.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrElementNotFound indicates an element index that does not exist.
	ErrElementNotFound = errors.New("element not found")

	// ErrRangesOverlap indicates element ranges that are unsorted or overlap.
	ErrRangesOverlap = errors.New("element ranges overlap or are unsorted")
)
