// Package source reads positioned text tokens from the formats chonker
// understands. Each format lives in its own subpackage and returns
// layout.Tokens already passed through Normalize.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/chonker/internal/layout"
)

// Source produces the tokens of one document page.
type Source interface {
	Tokens(ctx context.Context) ([]layout.Token, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) ([]layout.Token, error)

// Tokens calls f.
func (f Func) Tokens(ctx context.Context) ([]layout.Token, error) { return f(ctx) }

// Format names an input format.
type Format string

// Known formats.
const (
	FormatUnknown Format = ""
	FormatALTO    Format = "alto"
	FormatJSON    Format = "json"
	FormatImage   Format = "image"
)

// ErrUnknownFormat is returned when the input format cannot be determined.
var ErrUnknownFormat = errors.New("unknown input format")

// ParseError reports malformed input.
type ParseError struct {
	Format Format
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s %s: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatUnknown, FormatALTO, FormatJSON, FormatImage:
		return f, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detect guesses the format from the file name, falling back to the
// first bytes of its content.
func Detect(name string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml", ".alto":
		return FormatALTO
	case ".json":
		return FormatJSON
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif", ".webp":
		return FormatImage
	}

	head = bytes.TrimLeft(head, " \t\r\n\ufeff")
	switch {
	case bytes.HasPrefix(head, []byte("<")):
		return FormatALTO
	case bytes.HasPrefix(head, []byte("[")), bytes.HasPrefix(head, []byte("{")):
		return FormatJSON
	case bytes.HasPrefix(head, []byte("\x89PNG")),
		bytes.HasPrefix(head, []byte("\xff\xd8\xff")),
		bytes.HasPrefix(head, []byte("II*\x00")),
		bytes.HasPrefix(head, []byte("MM\x00*")),
		bytes.HasPrefix(head, []byte("GIF8")),
		bytes.HasPrefix(head, []byte("BM")):
		return FormatImage
	}
	return FormatUnknown
}

// Normalize converts token content to NFC and drops tokens whose content
// is empty. NaN and infinite coordinates read as 0. The input slice is
// reused.
func Normalize(tokens []layout.Token) []layout.Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok.Content == "" {
			continue
		}
		if !norm.NFC.IsNormalString(tok.Content) {
			tok.Content = norm.NFC.String(tok.Content)
		}
		tok.HPos = finite(tok.HPos)
		tok.VPos = finite(tok.VPos)
		tok.Width = finite(tok.Width)
		tok.Height = finite(tok.Height)
		out = append(out, tok)
	}
	return out
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
