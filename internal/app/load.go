package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/dshills/chonker/internal/config"
	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/logging"
	"github.com/dshills/chonker/internal/source"
	"github.com/dshills/chonker/internal/source/alto"
	"github.com/dshills/chonker/internal/source/jsontokens"
	"github.com/dshills/chonker/internal/source/ocr"
)

// sniffLen is how much of a file Detect looks at.
const sniffLen = 512

// Document is a loaded input file.
type Document struct {
	Path   string
	Format source.Format
	Tokens []layout.Token

	// Raw is the source text for formats that have one (ALTO, JSON).
	Raw []byte
}

// Load reads path and extracts its tokens. The format comes from
// cfg.Input.Format, or is detected from the file when that is empty.
func Load(ctx context.Context, path string, cfg *config.Config, log *logging.Logger) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}

	format, err := source.ParseFormat(cfg.Input.Format)
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}
	if format == source.FormatUnknown {
		format = source.Detect(path, data[:min(len(data), sniffLen)])
	}

	src, err := newSource(format, data, cfg)
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}
	tokens, err := src.Tokens(ctx)
	if err != nil {
		return nil, NewOperationError("load", path, err).WithDetail(fmt.Sprintf("format %s", format))
	}

	doc := &Document{Path: path, Format: format, Tokens: tokens}
	if format != source.FormatImage {
		doc.Raw = data
	}
	log.WithField("format", string(format)).Info("loaded %d tokens from %s", len(tokens), path)
	return doc, nil
}

func newSource(format source.Format, data []byte, cfg *config.Config) (source.Source, error) {
	switch format {
	case source.FormatALTO:
		return alto.FromBytes(data), nil
	case source.FormatJSON:
		return jsontokens.FromBytes(data), nil
	case source.FormatImage:
		return ocr.FromBytes(data,
			ocr.WithLanguages(strings.Split(cfg.Input.OCRLanguage, "+")...),
			ocr.WithDPI(cfg.Input.OCRDPI),
			ocr.WithUpscale(cfg.Input.OCRUpscale),
			ocr.WithMinConfidence(cfg.Input.OCRMinConfidence)), nil
	}
	return nil, source.ErrUnknownFormat
}

// Reconstruct returns the readable text of the document.
func (d *Document) Reconstruct(cfg *config.Config) string {
	return layout.NewReconstructor(layout.WithParams(cfg.LayoutParams())).Reconstruct(d.Tokens)
}

// SourceText returns the indented source document, or "" when the
// format has none.
func (d *Document) SourceText() string {
	switch d.Format {
	case source.FormatALTO:
		return alto.Format(string(d.Raw))
	case source.FormatJSON:
		return string(pretty.Pretty(d.Raw))
	}
	return ""
}
