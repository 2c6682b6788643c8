package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/chonker/internal/geom"
)

// Token is a piece of text with its bounding box in document points.
type Token struct {
	Content string
	HPos    float64
	VPos    float64
	Width   float64
	Height  float64
}

// Bounds returns the token's bounding box.
func (t Token) Bounds() geom.Rect {
	return geom.RectXYWH(t.HPos, t.VPos, t.Width, t.Height)
}

// Right returns the horizontal end of the token's box.
func (t Token) Right() float64 { return t.HPos + t.Width }

// Kind separates tokens that read as table cells from running text.
type Kind uint8

const (
	KindParagraph Kind = iota
	KindTable
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindTable {
		return "table"
	}
	return "paragraph"
}

const maxTableCellChars = 8

// Classify reports whether a token looks like a table cell: a short
// number, percentage, currency amount, or "N/A".
func Classify(t Token) Kind {
	s := strings.TrimSpace(t.Content)
	if s == "" || utf8.RuneCountInString(s) > maxTableCellChars {
		return KindParagraph
	}
	if s == "N/A" || strings.ContainsRune(s, '$') {
		return KindTable
	}
	for _, r := range s {
		if !unicode.IsNumber(r) && r != '.' && r != '%' {
			return KindParagraph
		}
	}
	return KindTable
}

// Partition splits tokens by Classify, preserving order within each part.
func Partition(tokens []Token) (table, paragraph []Token) {
	for _, t := range tokens {
		if Classify(t) == KindTable {
			table = append(table, t)
		} else {
			paragraph = append(paragraph, t)
		}
	}
	return table, paragraph
}
