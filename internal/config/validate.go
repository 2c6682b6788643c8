package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/chonker/internal/logging"
)

// ErrValidationFailed is wrapped by every ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError lists the settings that failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string
	positive := func(name string, v float64) {
		if !(v > 0) {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) {
			problems = append(problems, fmt.Sprintf("%s must not be negative, got %v", name, v))
		}
	}

	nonNegative("layout.line_threshold", c.Layout.LineThreshold)
	nonNegative("layout.space_threshold", c.Layout.SpaceThreshold)
	positive("layout.char_width", c.Layout.CharWidth)
	positive("layout.max_spaces", float64(c.Layout.MaxSpaces))
	nonNegative("layout.section_threshold", c.Layout.SectionThreshold)
	positive("layout.section_line_height", c.Layout.SectionLineHeight)
	positive("layout.max_blank_lines", float64(c.Layout.MaxBlankLines))
	nonNegative("mapper.same_line_tolerance", c.Mapper.SameLineTolerance)
	positive("buffer.avg_char_width", c.Buffer.AvgCharWidth)
	positive("index.cell_size", c.Index.CellSize)
	positive("view.scale", c.View.Scale)
	positive("view.cell_width", c.View.CellWidth)
	positive("view.cell_height", c.View.CellHeight)
	nonNegative("view.blink_ms", float64(c.View.BlinkMS))
	if c.Input.OCRLanguage == "" {
		problems = append(problems, "input.ocr_language must not be empty")
	}
	positive("input.ocr_dpi", c.Input.OCRDPI)
	if !(c.Input.OCRUpscale >= 1) {
		problems = append(problems, fmt.Sprintf("input.ocr_upscale must be at least 1, got %v", c.Input.OCRUpscale))
	}
	if !(c.Input.OCRMinConfidence >= 0 && c.Input.OCRMinConfidence <= 100) {
		problems = append(problems, fmt.Sprintf("input.ocr_min_confidence must be within [0, 100], got %v", c.Input.OCRMinConfidence))
	}

	for name, hex := range map[string]string{
		"view.modified_color": c.View.ModifiedColor,
		"view.overflow_color": c.View.OverflowColor,
		"view.table_color":    c.View.TableColor,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %q is not a #rrggbb color", name, hex))
		}
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		problems = append(problems, fmt.Sprintf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Input.Format {
	case "", "alto", "json", "image":
	default:
		problems = append(problems, fmt.Sprintf("input.format: unknown format %q", c.Input.Format))
	}

	if len(problems) > 0 {
		slices.Sort(problems)
		return &ValidationError{Problems: problems}
	}
	return nil
}
