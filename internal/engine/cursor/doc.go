// Package cursor implements the insertion point of the spatial editor.
//
// A Cursor tracks a character offset into the linear text and, once per
// frame, the matching caret position on screen. Horizontal motion steps
// over grapheme clusters so combining marks and emoji sequences move as
// one unit; vertical motion keeps a goal column across short lines.
package cursor
