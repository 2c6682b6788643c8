package frontend

import (
	"math"

	"github.com/dshills/chonker/internal/geom"
)

// Metrics is the size of one terminal cell in screen points. With the
// default 8x15 a 612pt wide page spans about 77 columns at scale 1.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultMetrics matches a typical monospace terminal font.
var DefaultMetrics = Metrics{CellWidth: 8, CellHeight: 15}

// ToCell returns the cell containing screen point p.
func (m Metrics) ToCell(p geom.Point) (col, row int) {
	return int(math.Floor(p.X / m.CellWidth)), int(math.Floor(p.Y / m.CellHeight))
}

// CellOrigin returns the top-left screen point of a cell.
func (m Metrics) CellOrigin(col, row int) geom.Point {
	return geom.Pt(float64(col)*m.CellWidth, float64(row)*m.CellHeight)
}

// Screen returns the screen rectangle covered by cols x rows cells.
func (m Metrics) Screen(cols, rows int) geom.Rect {
	return geom.Rect{Max: m.CellOrigin(cols, rows)}
}
