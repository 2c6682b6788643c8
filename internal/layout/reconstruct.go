package layout

import (
	"math"
	"sort"
	"strings"
)

// Line is a group of tokens sharing a vertical band, ordered left to right.
type Line struct {
	// VPos is the vertical position of the first token assigned to the line.
	VPos   float64
	Tokens []Token
}

// Text joins the line's tokens with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.Content
	}
	return strings.Join(parts, " ")
}

// Reconstructor rebuilds readable text from positioned tokens.
type Reconstructor struct {
	params Params
}

// NewReconstructor creates a Reconstructor with DefaultParams adjusted by opts.
func NewReconstructor(opts ...Option) *Reconstructor {
	r := &Reconstructor{params: DefaultParams()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Params returns the thresholds in use.
func (r *Reconstructor) Params() Params { return r.params }

// Lines clusters tokens into lines in vertical scan order.
func (r *Reconstructor) Lines(tokens []Token) []Line {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VPos < sorted[j].VPos
	})

	var lines []Line
	for _, tok := range sorted {
		joined := false
		for i := range lines {
			if math.Abs(tok.VPos-lines[i].VPos) < r.params.LineThreshold {
				lines[i].Tokens = append(lines[i].Tokens, tok)
				joined = true
				break
			}
		}
		if !joined {
			lines = append(lines, Line{VPos: tok.VPos, Tokens: []Token{tok}})
		}
	}

	for i := range lines {
		toks := lines[i].Tokens
		sort.SliceStable(toks, func(a, b int) bool {
			return toks[a].HPos < toks[b].HPos
		})
	}
	return lines
}

// Reconstruct returns the page text. Every line ends with a newline, and
// lines separated by more than the section threshold get blank lines
// between them.
func (r *Reconstructor) Reconstruct(tokens []Token) string {
	var sb strings.Builder
	lines := r.Lines(tokens)
	for i, line := range lines {
		if i > 0 {
			sb.WriteString(strings.Repeat("\n", r.blankLines(line.VPos-lines[i-1].VPos)))
		}
		r.writeLine(&sb, line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Reconstructor) writeLine(sb *strings.Builder, line Line) {
	var end float64
	for i, tok := range line.Tokens {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", r.spaces(tok.HPos-end)))
		}
		sb.WriteString(tok.Content)
		end = tok.Right()
	}
}

// spaces returns the number of spaces that stand in for a horizontal gap.
func (r *Reconstructor) spaces(gap float64) int {
	if gap <= r.params.SpaceThreshold || r.params.CharWidth <= 0 {
		return 1
	}
	return clamp(int(gap/r.params.CharWidth), 1, r.params.MaxSpaces)
}

// blankLines returns the extra newlines that stand in for a vertical gap.
func (r *Reconstructor) blankLines(gap float64) int {
	if gap <= r.params.SectionThreshold || r.params.SectionLineHeight <= 0 {
		return 0
	}
	return clamp(int(gap/r.params.SectionLineHeight), 1, r.params.MaxBlankLines)
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(n, lo), hi)
}

// Reconstruct rebuilds text with the default thresholds.
func Reconstruct(tokens []Token) string {
	return NewReconstructor().Reconstruct(tokens)
}
