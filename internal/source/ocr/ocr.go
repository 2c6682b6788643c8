// Package ocr produces tokens from a page image with Tesseract. Each
// recognized word becomes one token whose box is the word's bounding box,
// converted from pixels to points.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/source"
)

// Default settings.
const (
	DefaultLanguage = "eng"
	DefaultDPI      = 72
)

// client is the subset of *gosseract.Client the source drives.
type client interface {
	SetImageFromBytes(data []byte) error
	SetLanguage(langs ...string) error
	GetBoundingBoxes(level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error)
	Close() error
}

// Source runs OCR over one image.
type Source struct {
	path          string
	data          []byte
	languages     []string
	dpi           float64
	upscale       float64
	minConfidence float64
	newClient     func() client
}

// Option configures a Source.
type Option func(*Source)

// WithLanguages sets the Tesseract languages, e.g. "eng", "deu".
func WithLanguages(langs ...string) Option {
	return func(s *Source) {
		if len(langs) > 0 {
			s.languages = langs
		}
	}
}

// WithDPI sets the scan resolution used to convert pixels to points.
func WithDPI(dpi float64) Option {
	return func(s *Source) {
		if dpi > 0 {
			s.dpi = dpi
		}
	}
}

// WithUpscale enlarges the image by factor before recognition, which
// helps Tesseract with small print. Coordinates are reported in the
// original image's space.
func WithUpscale(factor float64) Option {
	return func(s *Source) {
		if factor >= 1 {
			s.upscale = factor
		}
	}
}

// WithMinConfidence drops words Tesseract is less sure of than conf
// (0 to 100).
func WithMinConfidence(conf float64) Option {
	return func(s *Source) { s.minConfidence = conf }
}

// Open returns a Source for the image file at path.
func Open(path string, opts ...Option) *Source {
	return newSource(path, nil, opts)
}

// FromBytes returns a Source over an encoded image.
func FromBytes(data []byte, opts ...Option) *Source {
	return newSource("", data, opts)
}

func newSource(path string, data []byte, opts []Option) *Source {
	s := &Source{
		path:      path,
		data:      data,
		languages: []string{DefaultLanguage},
		dpi:       DefaultDPI,
		upscale:   1,
		newClient: func() client { return gosseract.NewClient() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tokens recognizes the image.
func (s *Source) Tokens(ctx context.Context) ([]layout.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := s.data
	if data == nil {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	}

	img, err := s.prepare(data)
	if err != nil {
		return nil, &source.ParseError{Format: source.FormatImage, Path: s.path, Err: err}
	}

	c := s.newClient()
	defer c.Close()

	if err := c.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(s.languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return source.Normalize(s.tokens(boxes)), nil
}

// prepare validates the image and applies upscaling.
func (s *Source) prepare(data []byte) ([]byte, error) {
	if s.upscale == 1 {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(b.Dx())*s.upscale), int(float64(b.Dy())*s.upscale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode scaled image: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Source) tokens(boxes []gosseract.BoundingBox) []layout.Token {
	// pixels in the recognized image -> points
	k := 72 / (s.dpi * s.upscale)
	out := make([]layout.Token, 0, len(boxes))
	for _, b := range boxes {
		if b.Confidence < s.minConfidence {
			continue
		}
		out = append(out, layout.Token{
			Content: b.Word,
			HPos:    float64(b.Box.Min.X) * k,
			VPos:    float64(b.Box.Min.Y) * k,
			Width:   float64(b.Box.Dx()) * k,
			Height:  float64(b.Box.Dy()) * k,
		})
	}
	return out
}
