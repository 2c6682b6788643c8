package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestTOMLLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"good.toml": {Data: []byte("[index]\ncell_size = 25\n\n[logging]\nlevel = \"debug\"\n")},
		"bad.toml":  {Data: []byte("[index\ncell_size = ")},
	}

	got, err := NewTOMLLoaderWithFS(fsys, "good.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	index, _ := got["index"].(map[string]any)
	if index["cell_size"] != int64(25) {
		t.Errorf("index.cell_size = %#v", index["cell_size"])
	}

	missing, err := NewTOMLLoaderWithFS(fsys, "missing.toml").Load()
	if err != nil || missing != nil {
		t.Errorf("missing file = %v, %v, want nil, nil", missing, err)
	}

	_, err = NewTOMLLoaderWithFS(fsys, "bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("bad file error = %v, want *ParseError", err)
	}
	if perr.Path != "bad.toml" || perr.Line == 0 {
		t.Errorf("ParseError = %+v", perr)
	}
}

func TestLoadFromReader(t *testing.T) {
	got, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("a = 1.5"))
	if err != nil || got["a"] != 1.5 {
		t.Errorf("LoadFromReader() = %v, %v", got, err)
	}
}

func TestEnvLoader(t *testing.T) {
	env := map[string]string{
		"CHONKER_LOG_LEVEL":       "warn",
		"CHONKER_INDEX_CELL_SIZE": "40",
		"CHONKER_VIEW_SCALE":      "1.5",
		"CHONKER_LOG_FILE":        "",
	}
	l := NewEnvLoader(map[string]string{
		"CHONKER_LOG_LEVEL":       "logging.level",
		"CHONKER_LOG_FILE":        "logging.file",
		"CHONKER_INDEX_CELL_SIZE": "index.cell_size",
		"CHONKER_VIEW_SCALE":      "view.scale",
		"CHONKER_UNSET":           "view.unset",
	}).WithLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	logging := got["logging"].(map[string]any)
	if logging["level"] != "warn" || logging["file"] != "" {
		t.Errorf("logging = %v", logging)
	}
	if got["index"].(map[string]any)["cell_size"] != int64(40) {
		t.Errorf("index = %v", got["index"])
	}
	view := got["view"].(map[string]any)
	if view["scale"] != 1.5 {
		t.Errorf("view.scale = %#v", view["scale"])
	}
	if _, ok := view["unset"]; ok {
		t.Error("unset variables must not appear")
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("CHONKER_", "index.cell_size"); got != "CHONKER_INDEX_CELL_SIZE" {
		t.Errorf("EnvName() = %q", got)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 1}
	src := map[string]any{"a": map[string]any{"y": 3}, "c": 4}
	got := DeepMerge(dst, src)
	a := got["a"].(map[string]any)
	if a["x"] != 1 || a["y"] != 3 || got["b"] != 1 || got["c"] != 4 {
		t.Errorf("DeepMerge() = %v", got)
	}
}
