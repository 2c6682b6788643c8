package app

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/chonker/internal/config"
	"github.com/dshills/chonker/internal/engine/cursor"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/engine/viewport"
	"github.com/dshills/chonker/internal/export"
	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/logging"
)

// State is everything one editing session owns.
type State struct {
	id       uuid.UUID
	cfg      *config.Config
	log      *logging.Logger
	buf      *spatial.Buffer
	cur      *cursor.Cursor
	tf       viewport.Transform
	mode     Mode
	source   []string
	scroll   int
	savePath string
	modified bool
	status   string
	done     bool
	cols     int
	rows     int
}

// Option configures a State.
type Option func(*State)

// WithSavePath sets where Save writes the text.
func WithSavePath(path string) Option {
	return func(s *State) { s.savePath = path }
}

// WithSource provides the raw source text shown in ModeSource.
func WithSource(text string) Option {
	return func(s *State) {
		if text != "" {
			s.source = strings.Split(strings.TrimRight(text, "\n"), "\n")
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) { s.log = l }
}

// NewState lays tokens out into a buffer and opens a session on it.
func NewState(doc *Document, cfg *config.Config, opts ...Option) *State {
	s := &State{
		id:  uuid.New(),
		cfg: cfg,
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("app").WithField("session", s.id.String())

	s.buf = spatial.Build(doc.Tokens,
		spatial.WithParams(cfg.SpatialParams()),
		spatial.WithLogger(s.log.WithComponent("spatial")))
	s.cur = cursor.New(cursor.WithBlinkInterval(cfg.BlinkInterval()))

	page, _ := s.buf.DocumentBounds()
	s.tf = viewport.New(geom.Rect{}, page)
	if tf, err := s.tf.WithScale(cfg.View.Scale); err == nil {
		s.tf = tf
	}
	s.log.Info("session opened: %s", s.buf)
	return s
}

// ID identifies the session in logs.
func (s *State) ID() uuid.UUID { return s.id }

// Buffer returns the document being edited.
func (s *State) Buffer() *spatial.Buffer { return s.buf }

// Cursor returns the caret.
func (s *State) Cursor() *cursor.Cursor { return s.cur }

// Transform returns the current view transform.
func (s *State) Transform() viewport.Transform { return s.tf }

// Mode returns what the editor is showing.
func (s *State) Mode() Mode { return s.mode }

// Modified reports unsaved edits.
func (s *State) Modified() bool { return s.modified }

// Status returns the last status message.
func (s *State) Status() string { return s.status }

// Done reports whether the session has been asked to end.
func (s *State) Done() bool { return s.done }

// SourceLines returns the visible source lines starting at the scroll
// position, at most n of them.
func (s *State) SourceLines(n int) []string {
	if s.scroll >= len(s.source) || n <= 0 {
		return nil
	}
	return s.source[s.scroll:min(s.scroll+n, len(s.source))]
}

// View returns what Dispatch needs to know about the state.
func (s *State) View() View {
	return View{
		Mode:       s.mode,
		CellWidth:  s.cfg.View.CellWidth,
		CellHeight: s.cfg.View.CellHeight,
		Rows:       s.rows - 1,
	}
}

// Apply performs a. Edit failures leave the buffer unchanged and come back
// as *OperationError; the session stays usable.
func (s *State) Apply(a Action) error {
	switch a := a.(type) {
	case NoAction:
	case InsertText:
		return s.insert(a.Text)
	case DeleteBackward:
		return s.deleteBackward()
	case DeleteForward:
		return s.deleteForward()
	case MoveCursor:
		s.move(a.Dir)
	case Click:
		if !s.cur.MoveToScreen(a.At, s.buf, s.tf) {
			s.log.Debug("click at %v hit no element", a.At)
		}
	case Zoom:
		return s.zoom(a.Anchor, a.Factor)
	case ZoomFit:
		tf, err := s.tf.WithScale(s.tf.FitWidth())
		if err != nil {
			return NewOperationError("zoom", "fit", err)
		}
		// page's left edge to the screen's left edge, top to the top
		s.tf = tf.Pan(geom.Point{}.Sub(tf.DocumentToScreen(tf.Document.Min)))
	case Pan:
		s.tf = s.tf.Pan(a.Delta)
	case Resize:
		s.resize(a.Width, a.Height)
	case ScrollSource:
		s.scroll = min(max(s.scroll+a.Lines, 0), max(len(s.source)-1, 0))
	case ToggleSource:
		return s.toggleSource()
	case Tick:
		s.cur.Refresh(s.buf, s.tf, a.Now)
	case Save:
		return s.Save()
	case Quit:
		s.done = true
		if s.modified {
			s.log.Warn("quit with unsaved changes")
		}
	default:
		return fmt.Errorf("unknown action %T", a)
	}
	return nil
}

func (s *State) insert(text string) error {
	pos := s.cur.Pos()
	if err := s.buf.Insert(pos, text); err != nil {
		return NewOperationError("insert", fmt.Sprintf("offset %d", pos), err)
	}
	s.cur.AfterInsert(pos, len([]rune(text)))
	s.touch()
	return nil
}

func (s *State) deleteBackward() error {
	end := s.cur.Pos()
	s.cur.Left(s.buf)
	return s.delete(s.cur.Pos(), end)
}

func (s *State) deleteForward() error {
	start := s.cur.Pos()
	s.cur.Right(s.buf)
	end := s.cur.Pos()
	s.cur.MoveTo(start, s.buf)
	return s.delete(start, end)
}

func (s *State) delete(start, end int) error {
	if start == end {
		return nil
	}
	if err := s.buf.Delete(start, end); err != nil {
		return NewOperationError("delete", fmt.Sprintf("[%d,%d)", start, end), err)
	}
	s.cur.AfterDelete(start, end)
	s.touch()
	return nil
}

func (s *State) touch() {
	s.modified = true
	s.status = ""
}

func (s *State) move(dir Direction) {
	switch dir {
	case DirLeft:
		s.cur.Left(s.buf)
	case DirRight:
		s.cur.Right(s.buf)
	case DirUp:
		s.cur.Up(s.buf)
	case DirDown:
		s.cur.Down(s.buf)
	case DirLineStart:
		s.cur.Home(s.buf)
	case DirLineEnd:
		s.cur.End(s.buf)
	}
}

func (s *State) zoom(anchor geom.Point, factor float64) error {
	scale := s.tf.Scale * factor
	if scale < MinScale || scale > MaxScale {
		s.status = fmt.Sprintf("zoom %.0f%%", s.tf.Scale*100)
		return NewOperationError("zoom", fmt.Sprintf("%.2fx", scale), ErrZoomLimit)
	}
	tf, err := s.tf.ZoomAt(anchor, factor)
	if err != nil {
		return NewOperationError("zoom", fmt.Sprintf("%.2fx", scale), err)
	}
	s.tf = tf
	s.status = fmt.Sprintf("zoom %.0f%%", tf.Scale*100)
	return nil
}

// resize keeps the viewport origin and reserves the bottom row for the
// status line.
func (s *State) resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	size := geom.Vec{
		X: float64(cols) * s.cfg.View.CellWidth,
		Y: float64(max(rows-1, 0)) * s.cfg.View.CellHeight,
	}
	s.tf.Viewport = geom.Rect{Min: s.tf.Viewport.Min, Max: s.tf.Viewport.Min.Add(size)}
}

func (s *State) toggleSource() error {
	if s.mode == ModeSource {
		s.mode = ModeEdit
		return nil
	}
	if len(s.source) == 0 {
		s.status = "no source to show"
		return NewOperationError("show source", "", ErrNoSource)
	}
	s.mode = ModeSource
	return nil
}

// Save writes the buffer's text to the save path and clears the modified
// flag.
func (s *State) Save() error {
	if s.savePath == "" {
		s.status = "no save path (use -o)"
		return NewOperationError("save", "", ErrNoSavePath)
	}
	if err := export.SaveText(s.savePath, s.buf); err != nil {
		s.status = "save failed"
		return NewOperationError("save", s.savePath, err)
	}
	s.modified = false
	s.status = "saved " + s.savePath
	s.log.Info("saved %d chars to %s", s.buf.Len(), s.savePath)
	return nil
}
