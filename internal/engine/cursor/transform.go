package cursor

// TransformInsert returns where offset lands after n characters are
// inserted at pos. Offsets at or after pos move right.
func TransformInsert(offset, pos, n int) int {
	if offset >= pos {
		return offset + n
	}
	return offset
}

// TransformDelete returns where offset lands after [start, end) is removed.
// Offsets inside the span collapse to start.
func TransformDelete(offset, start, end int) int {
	switch {
	case offset >= end:
		return offset - (end - start)
	case offset > start:
		return start
	default:
		return offset
	}
}
