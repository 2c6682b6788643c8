// Package rope provides an immutable rope for the linear text of a document.
//
// The rope is a B+ tree whose leaves hold bounded text chunks and whose
// internal nodes cache a Summary (bytes, characters, newlines) for each child.
// All positions are character (rune) offsets, which is the unit the spatial
// layer uses to address element ranges.
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")  // "hello, world"
//	r = r.Delete(0, 7)    // "world"
//
// Operations return new ropes and never modify the receiver, so a Rope value
// can be handed to readers while a writer builds the next version.
package rope
