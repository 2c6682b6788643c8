// Package alto reads word tokens from ALTO XML, the layout format written
// by pdfalto and most OCR pipelines.
//
// Every String element inside a Page becomes one token. CONTENT gives the
// text, HPOS/VPOS/WIDTH/HEIGHT the box in points; a coordinate that does
// not parse as a finite number reads as 0.
package alto

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/source"
)

// Source reads ALTO from a file or an in-memory document.
type Source struct {
	path string
	data []byte
}

// Open returns a Source reading the file at path on each Tokens call.
func Open(path string) *Source {
	return &Source{path: path}
}

// FromBytes returns a Source over an in-memory document.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// Tokens parses the document.
func (s *Source) Tokens(ctx context.Context) ([]layout.Token, error) {
	data := s.data
	if data == nil {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read alto: %w", err)
		}
	}
	tokens, err := Parse(ctx, bytes.NewReader(data))
	if err != nil {
		var perr *source.ParseError
		if errors.As(err, &perr) {
			perr.Path = s.path
		}
		return nil, err
	}
	return tokens, nil
}

// Parse extracts tokens from r. Malformed XML yields a *source.ParseError;
// cancellation of ctx is checked between elements.
func Parse(ctx context.Context, r io.Reader) ([]layout.Token, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var tokens []layout.Token
	inPage := false
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &source.ParseError{Format: source.FormatALTO, Err: err}
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Page":
				inPage = true
			case "String":
				if inPage {
					tokens = append(tokens, stringToken(el.Attr))
				}
			}
		case xml.EndElement:
			if el.Name.Local == "Page" {
				inPage = false
			}
		}
	}
	return source.Normalize(tokens), nil
}

func stringToken(attrs []xml.Attr) layout.Token {
	var tok layout.Token
	for _, a := range attrs {
		switch a.Name.Local {
		case "CONTENT":
			tok.Content = a.Value
		case "HPOS":
			tok.HPos = number(a.Value)
		case "VPOS":
			tok.VPos = number(a.Value)
		case "WIDTH":
			tok.Width = number(a.Value)
		case "HEIGHT":
			tok.Height = number(a.Value)
		}
	}
	return tok
}

func number(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
