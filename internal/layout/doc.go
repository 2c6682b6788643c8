// Package layout turns a page of positioned tokens into readable text.
//
// A Token is one word-level box from a layout or OCR stage. The
// Reconstructor clusters tokens into lines by vertical proximity, orders
// each line left to right, and synthesizes spaces and blank lines from
// the geometric gaps between boxes.
//
// Clustering is a single greedy pass: a token joins the first line whose
// first member lies within the line threshold, not the nearest one. On
// pages with ambiguous spacing the grouping therefore depends on the
// order tokens arrive in, and callers that need reproducible output must
// keep that order stable.
package layout
