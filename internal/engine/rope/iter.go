package rope

type chunkFrame struct {
	node *Node
	next int
}

// ChunkIterator walks the chunks of a rope in order.
type ChunkIterator struct {
	stack []chunkFrame
	chunk Chunk
	start int
	end   int
}

// Chunks returns an iterator over the rope's chunks.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{}
	if r.root != nil {
		it.stack = append(it.stack, chunkFrame{node: r.root})
	}
	return it
}

// Next advances to the next non-empty chunk.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			if top.next < len(top.node.chunks) {
				c := top.node.chunks[top.next]
				top.next++
				if c.IsEmpty() {
					continue
				}
				it.chunk = c
				it.start = it.end
				it.end += c.Chars()
				return true
			}
		} else if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			it.stack = append(it.stack, chunkFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk { return it.chunk }

// Offset returns the character offset of the current chunk.
func (it *ChunkIterator) Offset() int { return it.start }
