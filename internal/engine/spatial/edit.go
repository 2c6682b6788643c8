package spatial

import "unicode/utf8"

// Insert inserts text at character offset pos and updates every element
// range. Ranges starting at or after pos shift right; a range that pos
// falls inside or at the end of grows and is marked modified. The grid is
// not rebuilt since no visual bounds move; grown elements are reported
// through DirtyRegions.
func (b *Buffer) Insert(pos int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertLocked(pos, text, -1)
}

// insertLocked inserts text at pos. If absorb is a valid index, that
// element grows to take the text even though it starts at pos.
func (b *Buffer) insertLocked(pos int, text string, absorb int) error {
	if pos < 0 || pos > b.rope.Len() {
		return ErrOffsetOutOfRange
	}
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return nil
	}

	b.rope = b.rope.Insert(pos, text)
	for i := range b.elements {
		e := &b.elements[i]
		switch {
		case i == absorb:
			e.RopeEnd += n
			e.Modified = true
			b.updateOverflow(e)
			b.dirty.Mark(e.VisualBounds)
		case e.RopeStart >= pos && i < absorb:
			// empty ranges ordered before the absorbing one stay at pos
		case e.RopeStart >= pos:
			e.RopeStart += n
			e.RopeEnd += n
		case e.RopeEnd >= pos:
			e.RopeEnd += n
			e.Modified = true
			b.updateOverflow(e)
			b.dirty.Mark(e.VisualBounds)
		}
	}
	b.revision++
	return nil
}

// Delete removes the characters in [start, end) and updates every element
// range. Ranges at or after end shift left; ranges overlapping the deleted
// span are clamped into it and marked modified. The grid is rebuilt.
func (b *Buffer) Delete(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.deleteLocked(start, end)
	return err
}

// deleteLocked removes [start, end) and returns the indices of the
// elements whose text was cut.
func (b *Buffer) deleteLocked(start, end int) ([]int, error) {
	if start < 0 || end < start || end > b.rope.Len() {
		return nil, ErrRangeInvalid
	}
	n := end - start
	if n == 0 {
		return nil, nil
	}

	var touched []int
	b.rope = b.rope.Delete(start, end)
	for i := range b.elements {
		e := &b.elements[i]
		switch {
		case e.RopeStart > end:
			e.RopeStart -= n
			e.RopeEnd -= n
		case e.RopeEnd > start:
			e.RopeStart = min(e.RopeStart, start)
			if e.RopeEnd >= end {
				e.RopeEnd -= n
			} else {
				e.RopeEnd = start
			}
			e.Modified = true
			b.updateOverflow(e)
			touched = append(touched, i)
		}
	}
	b.rebuildIndex()
	b.revision++
	return touched, nil
}

// Replace substitutes text for [start, end) as one transaction. When the
// deleted span emptied an element and no neighbour would grow to take the
// new text, the emptied element keeps it.
func (b *Buffer) Replace(start, end int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	touched, err := b.deleteLocked(start, end)
	if err != nil {
		return err
	}
	absorb := -1
	if _, grows := b.growingElement(start); !grows {
		for _, i := range touched {
			if e := b.elements[i]; e.RopeStart == start && e.Len() == 0 {
				absorb = i
				break
			}
		}
	}
	return b.insertLocked(start, text, absorb)
}

// growingElement returns the element an insert at pos would extend.
func (b *Buffer) growingElement(pos int) (int, bool) {
	for i, e := range b.elements {
		if e.RopeStart < pos && e.RopeEnd >= pos {
			return i, true
		}
		if e.RopeStart >= pos {
			break
		}
	}
	return -1, false
}

// updateOverflow re-estimates whether e's text still fits its original box.
func (b *Buffer) updateOverflow(e *ElementRange) {
	e.Overflow = estimatedWidth(e.Len(), b.params.AvgCharWidth) > e.OriginalBounds.Width()
}
