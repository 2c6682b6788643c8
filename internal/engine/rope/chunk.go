package rope

import "unicode/utf8"

// Chunk size bounds, in bytes.
const (
	MinChunkSize    = 128
	MaxChunkSize    = 256
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is an immutable piece of text stored in a leaf.
type Chunk struct {
	data    string
	summary Summary
}

// NewChunk creates a chunk from s.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: Summarize(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string { return c.data }

// Summary returns the chunk's metrics.
func (c Chunk) Summary() Summary { return c.summary }

// Chars returns the number of runes in the chunk.
func (c Chunk) Chars() int { return c.summary.Chars }

// IsEmpty reports whether the chunk holds no text.
func (c Chunk) IsEmpty() bool { return len(c.data) == 0 }

// byteOffset converts a character offset within the chunk to a byte offset.
func (c Chunk) byteOffset(chars int) int {
	if chars <= 0 {
		return 0
	}
	if chars >= c.summary.Chars {
		return len(c.data)
	}
	if c.summary.ASCII {
		return chars
	}
	n := 0
	for i := range c.data {
		if n == chars {
			return i
		}
		n++
	}
	return len(c.data)
}

// Split splits the chunk at a character offset.
func (c Chunk) Split(chars int) (Chunk, Chunk) {
	if chars <= 0 {
		return Chunk{}, c
	}
	if chars >= c.summary.Chars {
		return c, Chunk{}
	}
	b := c.byteOffset(chars)
	return NewChunk(c.data[:b]), NewChunk(c.data[b:])
}

// slice returns the text between two character offsets of the chunk.
func (c Chunk) slice(start, end int) string {
	return c.data[c.byteOffset(start):c.byteOffset(end)]
}

// lineStart returns the character offset just past the nth newline
// (1-indexed) in the chunk, or -1 when the chunk has fewer newlines.
func (c Chunk) lineStart(n int) int {
	seen, pos := 0, 0
	for _, r := range c.data {
		pos++
		if r == '\n' {
			seen++
			if seen == n {
				return pos
			}
		}
	}
	return -1
}

// newlinesBefore counts newlines in the first chars runes of the chunk.
func (c Chunk) newlinesBefore(chars int) int {
	if chars >= c.summary.Chars {
		return c.summary.Lines
	}
	count, pos := 0, 0
	for _, r := range c.data {
		if pos == chars {
			break
		}
		if r == '\n' {
			count++
		}
		pos++
	}
	return count
}

// splitIntoChunks cuts s into chunks of roughly TargetChunkSize bytes.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	var chunks []Chunk
	for len(s) > MaxChunkSize {
		at := chunkBoundary(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:at]))
		s = s[at:]
	}
	return append(chunks, NewChunk(s))
}

// chunkBoundary picks a split point near target, preferring the byte after a
// newline and never splitting a UTF-8 sequence.
func chunkBoundary(s string, target int) int {
	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))
	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}
	pos := target
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
