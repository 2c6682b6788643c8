// Package grid provides a uniform-grid spatial index over element bounds
// and a tracker for regions of the document that need repainting.
package grid

import (
	"math"
	"slices"

	"github.com/dshills/chonker/internal/geom"
)

// DefaultCellSize is the edge length of a grid cell in document points.
const DefaultCellSize = 50.0

// MaxCells bounds the number of cells in one grid. When the indexed area
// would need more, cells are enlarged until it fits.
const MaxCells = 1 << 16

// Index maps points to the elements whose bounds contain them.
// Elements are identified by their position in the slice passed to
// Rebuild. An Index is not safe for concurrent mutation; owners guard it.
type Index struct {
	cellSize float64
	step     float64 // effective cell edge for the current grid
	bounds   geom.Rect
	rects    []geom.Rect
	cols     int
	rows     int
	cells    [][]int
}

// New creates an empty index. Non-positive cell sizes fall back to
// DefaultCellSize.
func New(cellSize float64) *Index {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = DefaultCellSize
	}
	return &Index{cellSize: cellSize}
}

// CellSize returns the configured edge length of a cell.
func (ix *Index) CellSize() float64 { return ix.cellSize }

// Step returns the edge length of the cells in the current grid. It is
// larger than CellSize when the indexed area would exceed MaxCells.
func (ix *Index) Step() float64 {
	if ix.step == 0 {
		return ix.cellSize
	}
	return ix.step
}

// Bounds returns the indexed area and whether anything is indexed.
func (ix *Index) Bounds() (geom.Rect, bool) {
	return ix.bounds, len(ix.cells) > 0
}

// Dims returns the number of columns and rows.
func (ix *Index) Dims() (cols, rows int) { return ix.cols, ix.rows }

// Len returns the number of indexed elements.
func (ix *Index) Len() int { return len(ix.rects) }

// Rebuild discards the grid and indexes rects from scratch. The indexed
// area is the union of rects; each rect is registered in every cell it
// overlaps.
func (ix *Index) Rebuild(rects []geom.Rect) {
	ix.rects = append(ix.rects[:0], rects...)
	ix.cells = nil
	ix.cols, ix.rows = 0, 0
	ix.step = ix.cellSize

	bounds, ok := geom.Bounds(rects)
	if !ok {
		ix.bounds = geom.Rect{}
		return
	}
	ix.bounds = bounds
	w, h := bounds.Width(), bounds.Height()
	for span(w, ix.step)*span(h, ix.step) > MaxCells {
		ix.step *= 2
	}
	ix.cols = int(span(w, ix.step))
	ix.rows = int(span(h, ix.step))
	ix.cells = make([][]int, ix.cols*ix.rows)

	for i, r := range rects {
		c0, r0 := ix.cellOf(r.Min)
		c1, r1 := ix.cellOf(r.Max)
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				idx := row*ix.cols + col
				ix.cells[idx] = append(ix.cells[idx], i)
			}
		}
	}
}

// span returns how many cells of edge step cover length, at least one.
// An infinite length over an infinite step counts as one cell.
func span(length, step float64) float64 {
	n := math.Ceil(length / step)
	if !(n >= 1) {
		return 1
	}
	return n
}

// cellOf returns the cell coordinates of p, clamped to the grid.
func (ix *Index) cellOf(p geom.Point) (col, row int) {
	return clampCell((p.X-ix.bounds.Min.X)/ix.step, ix.cols),
		clampCell((p.Y-ix.bounds.Min.Y)/ix.step, ix.rows)
}

func clampCell(f float64, n int) int {
	switch {
	case !(f > 0):
		return 0
	case f >= float64(n):
		return n - 1
	}
	return int(f)
}

// Candidates returns the raw contents of the cell holding p, in insertion
// order. The result is nil when p lies outside the indexed area. The
// returned slice must not be modified.
func (ix *Index) Candidates(p geom.Point) []int {
	if len(ix.cells) == 0 || !ix.bounds.Contains(p) {
		return nil
	}
	col, row := ix.cellOf(p)
	return ix.cells[row*ix.cols+col]
}

// Find returns the lowest-indexed element whose bounds contain p.
func (ix *Index) Find(p geom.Point) (int, bool) {
	for _, i := range ix.Candidates(p) {
		if ix.rects[i].Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Query returns the indices of elements whose bounds intersect area,
// in ascending order without duplicates.
func (ix *Index) Query(area geom.Rect) []int {
	if len(ix.cells) == 0 || !ix.bounds.Intersects(area) {
		return nil
	}
	c0, r0 := ix.cellOf(area.Min)
	c1, r1 := ix.cellOf(area.Max)
	seen := make(map[int]bool)
	var out []int
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, i := range ix.cells[row*ix.cols+col] {
				if !seen[i] && ix.rects[i].Intersects(area) {
					seen[i] = true
					out = append(out, i)
				}
			}
		}
	}
	slices.Sort(out)
	return out
}
