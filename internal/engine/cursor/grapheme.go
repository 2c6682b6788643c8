package cursor

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// clusterWindow is how many characters are inspected around the cursor
// to find a grapheme boundary. Longer clusters are split.
const clusterWindow = 32

// firstClusterLen returns the length in characters of the grapheme
// cluster starting at pos.
func firstClusterLen(text Text, pos int) int {
	s := text.Slice(pos, pos+clusterWindow)
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return max(utf8.RuneCountInString(cluster), 1)
}

// lastClusterLen returns the length in characters of the grapheme
// cluster ending at pos.
func lastClusterLen(text Text, pos int) int {
	s := text.Slice(pos-clusterWindow, pos)
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last = utf8.RuneCountInString(g.Str())
	}
	return max(last, 1)
}
