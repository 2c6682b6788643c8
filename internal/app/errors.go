package app

import (
	"errors"
	"strings"
)

// Session errors.
var (
	// ErrNoSavePath indicates Save was requested without a destination.
	ErrNoSavePath = errors.New("no save path")

	// ErrNoSource indicates the document has no raw source to show.
	ErrNoSource = errors.New("no source document")

	// ErrZoomLimit indicates a zoom beyond the allowed scale range.
	ErrZoomLimit = errors.New("zoom limit reached")
)

// OperationError wraps a failed load, edit or save with what was being
// done and to what. Apply returns these for failures that leave the
// session usable.
type OperationError struct {
	Op     string // "load", "insert", "save", ...
	Target string // file path, offset or span; may be empty
	Detail string // extra context such as the input format
	Err    error
}

// NewOperationError wraps err.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithDetail sets Detail and returns e.
func (e *OperationError) WithDetail(detail string) *OperationError {
	e.Detail = detail
	return e
}

func (e *OperationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Target != "" {
		sb.WriteByte(' ')
		sb.WriteString(e.Target)
	}
	if e.Detail != "" {
		sb.WriteString(" (" + e.Detail + ")")
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

func (e *OperationError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err from Apply leaves the session usable.
func IsRecoverable(err error) bool {
	var op *OperationError
	return err == nil || errors.As(err, &op)
}
