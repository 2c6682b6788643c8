package rope

import "strings"

// Tree shape limits.
const (
	MaxChildren      = 8
	MaxChunksPerLeaf = 4
)

// Node is a node of the rope's B+ tree. Leaves (height 0) hold chunks;
// internal nodes hold children plus a cached summary per child.
type Node struct {
	height  uint8
	summary Summary

	children       []*Node
	childSummaries []Summary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	n := &Node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]Summary, len(children)),
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf reports whether the node stores chunks.
func (n *Node) IsLeaf() bool { return n.height == 0 }

// Len returns the number of characters in the subtree.
func (n *Node) Len() int { return n.summary.Chars }

func (n *Node) clone() *Node {
	if n.IsLeaf() {
		return newLeafNodeWithChunks(append([]Chunk(nil), n.chunks...))
	}
	return newInternalNode(append([]*Node(nil), n.children...))
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the characters in [start, end) of the subtree.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	offset := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cEnd := offset + c.Chars()
			if cEnd > start && offset < end {
				sb.WriteString(c.slice(max(start-offset, 0), min(end, cEnd)-offset))
			}
			if cEnd >= end {
				return
			}
			offset = cEnd
		}
		return
	}
	for i, child := range n.children {
		cEnd := offset + n.childSummaries[i].Chars
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end, cEnd)-offset)
		}
		if cEnd >= end {
			return
		}
		offset = cEnd
	}
}

// split divides the subtree at a character offset.
func (n *Node) split(pos int) (*Node, *Node) {
	if pos <= 0 {
		return newLeafNode(), n.clone()
	}
	if pos >= n.Len() {
		return n.clone(), newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(pos)
	}
	return n.splitInternal(pos)
}

func (n *Node) splitLeaf(pos int) (*Node, *Node) {
	var left, right []Chunk
	offset := 0
	for _, c := range n.chunks {
		switch {
		case offset+c.Chars() <= pos:
			left = append(left, c)
		case offset >= pos:
			right = append(right, c)
		default:
			l, r := c.Split(pos - offset)
			left = append(left, l)
			right = append(right, r)
		}
		offset += c.Chars()
	}
	return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
}

func (n *Node) splitInternal(pos int) (*Node, *Node) {
	var left, right []*Node
	offset := 0
	for i, child := range n.children {
		size := n.childSummaries[i].Chars
		switch {
		case offset+size <= pos:
			left = append(left, child)
		case offset >= pos:
			right = append(right, child)
		default:
			l, r := child.split(pos - offset)
			if l.Len() > 0 {
				left = append(left, l)
			}
			if r.Len() > 0 {
				right = append(right, r)
			}
		}
		offset += size
	}
	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren builds a balanced subtree over nodes of equal height.
func buildNodeFromChildren(children []*Node) *Node {
	switch {
	case len(children) == 0:
		return newLeafNode()
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternalNode(children)
	}
	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		parents = append(parents, newInternalNode(children[i:min(i+MaxChildren, len(children))]))
	}
	return buildNodeFromChildren(parents)
}

func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}
	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	return mergeNodes(left, right)
}

func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		if len(left.chunks)+len(right.chunks) <= MaxChunksPerLeaf {
			chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
			chunks = append(chunks, left.chunks...)
			return newLeafNodeWithChunks(append(chunks, right.chunks...))
		}
		return newInternalNode([]*Node{left, right})
	}
	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}

// lineStart returns the character offset where the given line begins.
// The caller guarantees 0 < line <= n.summary.Lines.
func (n *Node) lineStart(line int) int {
	offset := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if c.summary.Lines >= line {
				return offset + c.lineStart(line)
			}
			line -= c.summary.Lines
			offset += c.Chars()
		}
		return offset
	}
	for i, child := range n.children {
		s := n.childSummaries[i]
		if s.Lines >= line {
			return offset + child.lineStart(line)
		}
		line -= s.Lines
		offset += s.Chars
	}
	return offset
}

// linesBefore counts newlines in the first pos characters of the subtree.
func (n *Node) linesBefore(pos int) int {
	lines := 0
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if pos < c.Chars() {
				return lines + c.newlinesBefore(pos)
			}
			lines += c.summary.Lines
			pos -= c.Chars()
		}
		return lines
	}
	for i, child := range n.children {
		s := n.childSummaries[i]
		if pos < s.Chars {
			return lines + child.linesBefore(pos)
		}
		lines += s.Lines
		pos -= s.Chars
	}
	return lines
}

// runeAt returns the rune at a character offset inside the subtree.
func (n *Node) runeAt(pos int) rune {
	for !n.IsLeaf() {
		for i, s := range n.childSummaries {
			if pos < s.Chars || i == len(n.children)-1 {
				n = n.children[i]
				break
			}
			pos -= s.Chars
		}
	}
	for _, c := range n.chunks {
		if pos < c.Chars() {
			for _, r := range c.data[c.byteOffset(pos):] {
				return r
			}
		}
		pos -= c.Chars()
	}
	return 0
}
