package rope

// Point is a 0-indexed line/column position. Column counts characters.
type Point struct {
	Line   int
	Column int
}

// Summary holds aggregated metrics for a span of text.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the rune count.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// ASCII is set when every rune is below 128, which makes
	// character and byte offsets interchangeable.
	ASCII bool
}

// Add combines two summaries. The zero-length summary is the identity.
func (s Summary) Add(other Summary) Summary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		ASCII: s.ASCII && other.ASCII,
	}
}

// Summarize computes the metrics for s.
func Summarize(s string) Summary {
	sum := Summary{Bytes: len(s), ASCII: true}
	for _, r := range s {
		sum.Chars++
		if r >= 0x80 {
			sum.ASCII = false
		}
		if r == '\n' {
			sum.Lines++
		}
	}
	return sum
}
