package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/otiai10/gosseract/v2"

	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/source"
)

type fakeClient struct {
	boxes   []gosseract.BoundingBox
	image   []byte
	langs   []string
	closed  bool
	failSet error
}

func (f *fakeClient) SetImageFromBytes(data []byte) error {
	f.image = data
	return f.failSet
}

func (f *fakeClient) SetLanguage(langs ...string) error {
	f.langs = langs
	return nil
}

func (f *fakeClient) GetBoundingBoxes(gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error) {
	return f.boxes, nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func withClient(fc *fakeClient) Option {
	return func(s *Source) { s.newClient = func() client { return fc } }
}

func TestTokens(t *testing.T) {
	fc := &fakeClient{boxes: []gosseract.BoundingBox{
		{Word: "Total", Box: image.Rect(144, 288, 204, 310), Confidence: 91},
		{Word: "faint", Box: image.Rect(0, 0, 10, 10), Confidence: 20},
		{Word: "", Box: image.Rect(1, 1, 2, 2), Confidence: 99},
	}}
	src := FromBytes(pngBytes(t, 8, 8),
		withClient(fc), WithDPI(144), WithLanguages("deu"), WithMinConfidence(50))

	got, err := src.Tokens(context.Background())
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}
	want := []layout.Token{{Content: "Total", HPos: 72, VPos: 144, Width: 30, Height: 11}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Tokens() = %+v, want %+v", got, want)
	}
	if !fc.closed {
		t.Error("client not closed")
	}
	if len(fc.langs) != 1 || fc.langs[0] != "deu" {
		t.Errorf("languages = %v", fc.langs)
	}
}

func TestTokensUpscale(t *testing.T) {
	fc := &fakeClient{boxes: []gosseract.BoundingBox{
		{Word: "x", Box: image.Rect(20, 40, 30, 60), Confidence: 90},
	}}
	got, err := FromBytes(pngBytes(t, 10, 10), withClient(fc), WithUpscale(2)).Tokens(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(fc.image))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 20 || cfg.Height != 20 {
		t.Errorf("scaled image = %dx%d, want 20x20", cfg.Width, cfg.Height)
	}
	if got[0].HPos != 10 || got[0].VPos != 20 || got[0].Height != 10 {
		t.Errorf("token = %+v, want coordinates in original space", got[0])
	}
}

func TestTokensNonFiniteScale(t *testing.T) {
	fc := &fakeClient{boxes: []gosseract.BoundingBox{
		{Word: "x", Box: image.Rect(0, 0, 10, 10), Confidence: 90},
	}}
	got, err := FromBytes(pngBytes(t, 10, 10), withClient(fc),
		WithDPI(math.SmallestNonzeroFloat64)).Tokens(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := (layout.Token{Content: "x"}); len(got) != 1 || got[0] != want {
		t.Errorf("Tokens() = %+v, want %+v", got, want)
	}
}

func TestTokensBadImage(t *testing.T) {
	_, err := FromBytes([]byte("not an image"), withClient(&fakeClient{})).Tokens(context.Background())
	var perr *source.ParseError
	if !errors.As(err, &perr) || perr.Format != source.FormatImage {
		t.Errorf("error = %v, want image ParseError", err)
	}
}

func TestTokensClientError(t *testing.T) {
	boom := errors.New("boom")
	fc := &fakeClient{failSet: boom}
	_, err := FromBytes(pngBytes(t, 4, 4), withClient(fc)).Tokens(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
	if !fc.closed {
		t.Error("client not closed after error")
	}
}

func TestTokensCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromBytes(nil, withClient(&fakeClient{})).Tokens(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v", err)
	}
}
