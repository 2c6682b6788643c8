package rope

import (
	"strings"
	"unicode/utf8"
)

// Rope is an immutable character-indexed text sequence.
// The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}
	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeafNodeWithChunks(append([]Chunk(nil), chunks[i:end]...)))
	}
	return Rope{root: buildNodeFromChildren(leaves)}
}

// Len returns the number of characters.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// Bytes returns the UTF-8 length of the text.
func (r Rope) Bytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool { return r.Len() == 0 }

// Summary returns the metrics of the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{ASCII: true}
	}
	return r.root.summary
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Bytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the character range [start, end).
// The range is clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// RuneAt returns the character at pos.
func (r Rope) RuneAt(pos int) (rune, bool) {
	if r.root == nil || pos < 0 || pos >= r.Len() {
		return utf8.RuneError, false
	}
	return r.root.runeAt(pos), true
}

// Insert returns a rope with text inserted at character offset pos.
// pos is clamped to [0, Len()].
func (r Rope) Insert(pos int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}
	switch {
	case pos <= 0:
		return FromString(text).Concat(r)
	case pos >= r.Len():
		return r.Concat(FromString(text))
	}
	left, right := r.Split(pos)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope without the characters in [start, end).
// The range is clamped to the rope.
func (r Rope) Delete(start, end int) Rope {
	start = max(start, 0)
	end = min(end, r.Len())
	if start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// Split divides the rope at pos into [0, pos) and [pos, Len()).
func (r Rope) Split(pos int) (Rope, Rope) {
	if r.root == nil || pos <= 0 {
		return New(), r
	}
	if pos >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(pos)
	return Rope{root: left}, Rope{root: right}
}

// Concat returns the concatenation of r and other.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// LineStart returns the character offset of the first character of line.
// Lines past the end map to Len().
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.lineStart(line)
}

// LineEnd returns the character offset of the end of line, excluding
// its newline.
func (r Rope) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStart(line+1) - 1
}

// LineText returns the text of line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// CharToPoint converts a character offset to a line/column position.
func (r Rope) CharToPoint(pos int) Point {
	pos = min(max(pos, 0), r.Len())
	if r.root == nil || pos == 0 {
		return Point{}
	}
	line := r.root.linesBefore(pos)
	return Point{Line: line, Column: pos - r.LineStart(line)}
}

// PointToChar converts a line/column position to a character offset,
// clamping the column to the line's length.
func (r Rope) PointToChar(p Point) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= r.LineCount() {
		return r.Len()
	}
	start, end := r.LineStart(p.Line), r.LineEnd(p.Line)
	return start + min(max(p.Column, 0), end-start)
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals reports whether two ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() || r.Bytes() != other.Bytes() {
		return false
	}
	return r.String() == other.String()
}
