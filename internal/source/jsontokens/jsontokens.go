// Package jsontokens reads tokens from JSON, either a bare array or an
// object with a "tokens" array:
//
//	{"tokens": [{"content": "Total", "hpos": 72, "vpos": 700, "width": 30, "height": 11}]}
//
// Field names are matched case-insensitively and the aliases text, x, y,
// w and h are accepted. Numbers may be given as strings; anything that
// does not read as a number is 0.
package jsontokens

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/source"
)

var (
	errInvalidJSON = errors.New("invalid JSON")
	errNoTokens    = errors.New("expected an array or an object with a tokens array")
)

// Source reads a JSON token list.
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
			return nil, fmt.Errorf("read tokens: %w", err)
		}
	}
	tokens, err := Parse(ctx, data)
	if err != nil {
		var perr *source.ParseError
		if errors.As(err, &perr) {
			perr.Path = s.path
		}
		return nil, err
	}
	return tokens, nil
}

// Parse extracts tokens from data.
func Parse(ctx context.Context, data []byte) ([]layout.Token, error) {
	if !gjson.ValidBytes(data) {
		return nil, &source.ParseError{Format: source.FormatJSON, Err: errInvalidJSON}
	}
	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("tokens")
	}
	if !list.IsArray() {
		return nil, &source.ParseError{Format: source.FormatJSON, Err: errNoTokens}
	}

	var tokens []layout.Token
	var err error
	list.ForEach(func(_, v gjson.Result) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		if !v.IsObject() {
			return true
		}
		tokens = append(tokens, layout.Token{
			Content: field(v, "content", "text").String(),
			HPos:    field(v, "hpos", "x").Float(),
			VPos:    field(v, "vpos", "y").Float(),
			Width:   field(v, "width", "w").Float(),
			Height:  field(v, "height", "h").Float(),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return source.Normalize(tokens), nil
}

// field returns the first of names present on v, ignoring case.
func field(v gjson.Result, names ...string) gjson.Result {
	var found gjson.Result
	for _, name := range names {
		v.ForEach(func(k, val gjson.Result) bool {
			if strings.EqualFold(k.String(), name) {
				found = val
				return false
			}
			return true
		})
		if found.Exists() {
			break
		}
	}
	return found
}
