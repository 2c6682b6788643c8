package frontend

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/chonker/internal/config"
)

// Attribute represents text attributes (bold, reverse, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a true color or the terminal's default.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes c toward other in CIE L*a*b* space; t=0 is c, t=1 other.
func (c Color) Blend(other Color, t float64) Color {
	if c.Default || other.Default {
		if t < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), t))
}

func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return c.colorful().Hex()
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// Palette holds the styles the renderer paints with.
type Palette struct {
	Text     Style
	Table    Style
	Modified Style
	Overflow Style
	Status   Style
	Source   Style
}

var black = Color{}

// NewPalette derives the palette from the view settings. Highlights color
// the text; the status bar uses the modified color darkened toward black.
func NewPalette(v config.ViewConfig) (Palette, error) {
	modified, err := ColorFromHex(v.ModifiedColor)
	if err != nil {
		return Palette{}, err
	}
	overflow, err := ColorFromHex(v.OverflowColor)
	if err != nil {
		return Palette{}, err
	}
	table, err := ColorFromHex(v.TableColor)
	if err != nil {
		return Palette{}, err
	}

	p := Palette{
		Text:     DefaultStyle(),
		Table:    Style{Foreground: table, Background: ColorDefault},
		Modified: Style{Foreground: modified, Background: ColorDefault, Attributes: AttrBold},
		Overflow: Style{Foreground: overflow, Background: ColorDefault, Attributes: AttrBold | AttrUnderline},
		Status:   Style{Foreground: modified, Background: modified.Blend(black, 0.8)},
		Source:   Style{Foreground: ColorDefault, Background: ColorDefault, Attributes: AttrDim},
	}
	return p, nil
}
