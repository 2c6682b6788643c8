package alto

import "strings"

// Format re-indents XML for display: two spaces per level, one element
// per input line. Blank lines are dropped. Lines starting with a closing
// tag dedent; lines opening an element that is neither self-closing, a
// closing tag nor a processing instruction indent what follows.
func Format(doc string) string {
	var b strings.Builder
	b.Grow(len(doc))
	depth := 0
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "</") && depth > 0 {
			depth--
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(line)
		b.WriteByte('\n')

		if strings.HasPrefix(line, "<") &&
			!strings.HasPrefix(line, "</") &&
			!strings.HasPrefix(line, "<?") &&
			!strings.HasSuffix(line, "/>") {
			depth++
		}
	}
	return b.String()
}
