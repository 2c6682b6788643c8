// Package export writes an edited document out of chonker.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/chonker/internal/engine/rope"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/geom"
)

// Document is the read side of a spatial buffer.
type Document interface {
	Snapshot() rope.Rope
	Views() []spatial.ElementView
	Revision() uint64
}

// WriteText streams the linear text of doc to w one rope chunk at a time.
func WriteText(w io.Writer, doc Document) error {
	it := doc.Snapshot().Chunks()
	for it.Next() {
		if _, err := io.WriteString(w, it.Chunk().String()); err != nil {
			return fmt.Errorf("write text at %d: %w", it.Offset(), err)
		}
	}
	return nil
}

// SaveMode is the permission of a newly saved file.
const SaveMode os.FileMode = 0o644

// SaveText writes the linear text to path, replacing it atomically. An
// existing file keeps its permissions; a new one gets SaveMode.
func SaveText(path string, doc Document) error {
	mode := SaveMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmp := f.Name()
	if err := f.Chmod(mode); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := WriteText(f, doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ElementsJSON renders every element with its text, offsets, boxes and
// flags:
//
//	{"revision":3,"elements":[{"id":0,"start":0,"end":5,"text":"Hello",
//	  "visual":{"x":..,"y":..,"width":..,"height":..},"original":{..},
//	  "overflow":false,"modified":false}]}
func ElementsJSON(doc Document) ([]byte, error) {
	views := doc.Views()
	out := []byte(`{"elements":[]}`)
	var err error
	if out, err = sjson.SetBytes(out, "revision", doc.Revision()); err != nil {
		return nil, fmt.Errorf("export elements: %w", err)
	}
	for i, v := range views {
		prefix := "elements." + strconv.Itoa(i) + "."
		fields := []struct {
			path  string
			value any
		}{
			{"id", v.ElementID},
			{"start", v.RopeStart},
			{"end", v.RopeEnd},
			{"text", v.Text},
			{"visual", box(v.VisualBounds)},
			{"original", box(v.OriginalBounds)},
			{"overflow", v.Overflow},
			{"modified", v.Modified},
		}
		for _, f := range fields {
			if out, err = sjson.SetBytes(out, prefix+f.path, f.value); err != nil {
				return nil, fmt.Errorf("export element %d: %w", i, err)
			}
		}
	}
	return out, nil
}

// WriteElements writes ElementsJSON to w, indented.
func WriteElements(w io.Writer, doc Document) error {
	data, err := ElementsJSON(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(pretty.Pretty(data)); err != nil {
		return fmt.Errorf("write elements: %w", err)
	}
	return nil
}

func box(r geom.Rect) map[string]float64 {
	return map[string]float64{
		"x":      r.Min.X,
		"y":      r.Min.Y,
		"width":  r.Width(),
		"height": r.Height(),
	}
}
