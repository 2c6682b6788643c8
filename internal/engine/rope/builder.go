package rope

import "strings"

// Builder accumulates text and builds a rope in one pass.
// The zero value is ready to use.
type Builder struct {
	chunks []Chunk
	buffer strings.Builder
	chars  int
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.chars += Summarize(s).Chars
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush()
	}
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) {
	b.buffer.WriteRune(r)
	b.chars++
}

// Len returns the number of characters written so far.
func (b *Builder) Len() int { return b.chars }

func (b *Builder) flush() {
	if b.buffer.Len() == 0 {
		return
	}
	b.chunks = append(b.chunks, splitIntoChunks(b.buffer.String())...)
	b.buffer.Reset()
}

// Build returns the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	r := buildFromChunks(b.chunks)
	*b = Builder{}
	return r
}
