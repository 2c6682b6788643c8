package spatial

import (
	"github.com/dshills/chonker/internal/engine/grid"
	"github.com/dshills/chonker/internal/logging"
)

// Default configuration values.
const (
	DefaultSameLineTolerance = 5.0
	DefaultAvgCharWidth      = 8.0
)

// Params hold the numeric settings of a Buffer.
type Params struct {
	// SameLineTolerance is the vertical distance within which consecutive
	// tokens are written on the same line of the buffer.
	SameLineTolerance float64

	// AvgCharWidth estimates rendered character width for overflow checks.
	AvgCharWidth float64

	// CellSize is the spatial index cell edge.
	CellSize float64
}

// DefaultParams returns the standard buffer settings.
func DefaultParams() Params {
	return Params{
		SameLineTolerance: DefaultSameLineTolerance,
		AvgCharWidth:      DefaultAvgCharWidth,
		CellSize:          grid.DefaultCellSize,
	}
}

// Option configures a Buffer during creation.
type Option func(*Buffer)

// WithParams replaces all numeric settings.
func WithParams(p Params) Option {
	return func(b *Buffer) {
		b.params = p
	}
}

// WithSameLineTolerance sets the line break tolerance used by Build.
func WithSameLineTolerance(d float64) Option {
	return func(b *Buffer) {
		if d >= 0 {
			b.params.SameLineTolerance = d
		}
	}
}

// WithAvgCharWidth sets the width estimate for overflow detection.
func WithAvgCharWidth(w float64) Option {
	return func(b *Buffer) {
		if w > 0 {
			b.params.AvgCharWidth = w
		}
	}
}

// WithCellSize sets the spatial index cell size.
func WithCellSize(size float64) Option {
	return func(b *Buffer) {
		if size > 0 {
			b.params.CellSize = size
		}
	}
}

// WithLogger sets the logger used for index diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.log = l
		}
	}
}
