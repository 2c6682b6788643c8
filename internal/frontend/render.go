package frontend

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/chonker/internal/app"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/engine/viewport"
	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/layout"
	"github.com/dshills/chonker/internal/logging"
)

// Renderer paints a session onto a Backend. Elements are drawn at their
// visual bounds, mapped through the session's transform to terminal
// cells; the bottom row holds the status line.
type Renderer struct {
	backend Backend
	metrics Metrics
	palette Palette
	name    string
	log     *logging.Logger

	// last full frame
	painted   bool
	lastTF    viewport.Transform
	lastMode  app.Mode
	lastCols  int
	lastRows  int
	lastLines []string
}

// NewRenderer creates a renderer. name is shown in the status line.
func NewRenderer(b Backend, m Metrics, p Palette, name string, log *logging.Logger) *Renderer {
	return &Renderer{
		backend: b,
		metrics: m,
		palette: p,
		name:    filepath.Base(name),
		log:     log.WithComponent("render"),
	}
}

// Render draws one frame. Document content is repainted in full when the
// view changed and only around dirty regions otherwise.
func (r *Renderer) Render(s *app.State) {
	cols, rows := r.backend.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	docRows := rows - 1
	buf := s.Buffer()

	switch s.Mode() {
	case app.ModeSource:
		lines := s.SourceLines(docRows)
		if !r.painted || r.lastMode != app.ModeSource || !slices.Equal(lines, r.lastLines) || cols != r.lastCols || rows != r.lastRows {
			r.backend.Clear()
			for y, line := range lines {
				r.drawString(0, y, runewidth.Truncate(line, cols, "…"), r.palette.Source, cols)
			}
			r.lastLines = append(r.lastLines[:0], lines...)
		}
		r.backend.HideCursor()

	default:
		tf := s.Transform()
		regions, full := buf.DirtyRegions()
		views := buf.Views()
		switch {
		case full || !r.painted || r.lastMode != app.ModeEdit || tf != r.lastTF || cols != r.lastCols || rows != r.lastRows:
			r.backend.Clear()
			for _, v := range views {
				r.drawElement(v, tf, cols, docRows)
			}
			r.log.Debug("full repaint: %d elements", len(views))
		case len(regions) > 0:
			for _, region := range regions {
				r.repaintBand(buf, views, region, tf, cols, docRows)
			}
		}
		buf.ClearDirty()
		r.lastTF = tf
		r.drawCursor(s, cols, docRows)
	}

	r.painted = true
	r.lastMode = s.Mode()
	r.lastCols, r.lastRows = cols, rows
	r.drawStatus(s, cols, rows-1)
	r.backend.Show()
}

// repaintBand clears the terminal rows a dirty document region covers and
// redraws every element crossing them. Whole rows are cleared because
// edited text may run past its element's box.
func (r *Renderer) repaintBand(buf *spatial.Buffer, views []spatial.ElementView, region geom.Rect, tf viewport.Transform, cols, rows int) {
	screen := tf.DocumentRectToScreen(region)
	_, top := r.metrics.ToCell(screen.Min)
	_, bottom := r.metrics.ToCell(screen.Max)
	top, bottom = max(top, 0), min(bottom, rows-1)
	if top > bottom {
		return
	}
	for y := top; y <= bottom; y++ {
		for x := 0; x < cols; x++ {
			r.backend.SetContent(x, y, ' ', nil, DefaultStyle())
		}
	}

	page, ok := buf.DocumentBounds()
	if !ok {
		return
	}
	band := geom.Rect{
		Min: geom.Pt(page.Min.X, tf.ScreenToDocument(r.metrics.CellOrigin(0, top)).Y),
		Max: geom.Pt(page.Max.X, tf.ScreenToDocument(r.metrics.CellOrigin(0, bottom+1)).Y),
	}
	for _, idx := range buf.ElementsIn(band) {
		if idx < len(views) {
			r.drawElement(views[idx], tf, cols, rows)
		}
	}
}

func (r *Renderer) drawElement(v spatial.ElementView, tf viewport.Transform, cols, rows int) {
	origin := tf.DocumentToScreen(v.VisualBounds.Min)
	col0, row := r.metrics.ToCell(origin)
	style := r.styleFor(v)

	col := col0
	g := uniseg.NewGraphemes(v.Text)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\n" || cluster == "\r\n" {
			row++
			col = col0
			continue
		}
		w := cellWidth(cluster)
		if row >= 0 && row < rows && col >= 0 && col+w <= cols {
			runes := g.Runes()
			r.backend.SetContent(col, row, runes[0], runes[1:], style)
		}
		col += w
	}
}

func (r *Renderer) styleFor(v spatial.ElementView) Style {
	switch {
	case v.Overflow:
		return r.palette.Overflow
	case v.Modified:
		return r.palette.Modified
	case layout.Classify(layout.Token{Content: v.Text}) == layout.KindTable:
		return r.palette.Table
	}
	return r.palette.Text
}

func (r *Renderer) drawCursor(s *app.State, cols, rows int) {
	p, ok := s.Cursor().ScreenPos()
	if !ok || !s.Cursor().Visible() {
		r.backend.HideCursor()
		return
	}
	x, y := r.metrics.ToCell(p)
	if x < 0 || x >= cols || y < 0 || y >= rows {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(x, y)
}

func (r *Renderer) drawStatus(s *app.State, cols, row int) {
	buf := s.Buffer()
	pt := buf.OffsetToPoint(s.Cursor().Pos())
	mark := ""
	if s.Modified() {
		mark = " [+]"
	}
	text := fmt.Sprintf(" %s  %s%s  %s chars  Ln %d, Col %d  %.0f%%",
		s.Mode(), r.name, mark, humanize.Comma(int64(buf.Len())), pt.Line+1, pt.Column+1, s.Transform().Scale*100)
	if msg := s.Status(); msg != "" {
		text += "  " + msg
	}
	text = runewidth.Truncate(text, cols, "…")
	r.drawString(0, row, runewidth.FillRight(text, cols), r.palette.Status, cols)
}

// drawString writes s from (x, y), one grapheme per cell run.
func (r *Renderer) drawString(x, y int, s string, style Style, cols int) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := cellWidth(g.Str())
		if x+w > cols {
			return
		}
		runes := g.Runes()
		r.backend.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}

// cellWidth is the terminal width of a grapheme cluster. Zero-width
// clusters still take one cell so the caret can land on them.
func cellWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 1)
}
