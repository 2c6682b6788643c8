package layout

// Params are the thresholds used by the Reconstructor, in document points.
type Params struct {
	// LineThreshold is the maximum vertical distance between a token and
	// the first member of a line for the token to join that line.
	LineThreshold float64

	// SpaceThreshold is the horizontal gap above which spacing is
	// proportional to the gap instead of a single space.
	SpaceThreshold float64

	// CharWidth converts a horizontal gap into a number of spaces.
	CharWidth float64

	// MaxSpaces caps the spaces emitted for one gap.
	MaxSpaces int

	// SectionThreshold is the vertical distance between consecutive
	// lines above which blank lines are inserted.
	SectionThreshold float64

	// SectionLineHeight converts a vertical gap into blank lines.
	SectionLineHeight float64

	// MaxBlankLines caps the blank lines emitted for one gap.
	MaxBlankLines int
}

// DefaultParams returns the standard reconstruction thresholds.
func DefaultParams() Params {
	return Params{
		LineThreshold:     8.0,
		SpaceThreshold:    3.0,
		CharWidth:         8.0,
		MaxSpaces:         10,
		SectionThreshold:  15.0,
		SectionLineHeight: 12.0,
		MaxBlankLines:     3,
	}
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithParams replaces all thresholds.
func WithParams(p Params) Option {
	return func(r *Reconstructor) {
		r.params = p
	}
}

// WithLineThreshold sets the line clustering distance.
func WithLineThreshold(d float64) Option {
	return func(r *Reconstructor) {
		r.params.LineThreshold = d
	}
}

// WithSectionBreaks configures blank-line synthesis.
func WithSectionBreaks(threshold, lineHeight float64, maxLines int) Option {
	return func(r *Reconstructor) {
		r.params.SectionThreshold = threshold
		r.params.SectionLineHeight = lineHeight
		r.params.MaxBlankLines = maxLines
	}
}
