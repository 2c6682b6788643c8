package rope

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", r.LineCount())
	}

	var zero Rope
	if zero.Len() != 0 || zero.String() != "" || zero.LineCount() != 1 {
		t.Error("zero Rope should behave as empty")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"with newline", "hello\nworld"},
		{"unicode", "héllo 世界 🌍"},
		{"long", strings.Repeat("abcdefghij", 100)},
		{"long unicode", strings.Repeat("日本語テキスト\n", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if want := utf8.RuneCountInString(tt.input); r.Len() != want {
				t.Errorf("Len() = %d, want %d", r.Len(), want)
			}
			if r.Bytes() != len(tt.input) {
				t.Errorf("Bytes() = %d, want %d", r.Bytes(), len(tt.input))
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		pos     int
		text    string
		want    string
	}{
		{"into empty", "", 0, "ab", "ab"},
		{"at start", "ab", 0, "X", "Xab"},
		{"in middle", "hello", 2, "--", "he--llo"},
		{"at end", "ab", 2, "c", "abc"},
		{"past end clamps", "ab", 9, "c", "abc"},
		{"after multibyte", "日本", 1, "x", "日x本"},
		{"empty text", "ab", 1, "", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromString(tt.initial).Insert(tt.pos, tt.text).String()
			if got != tt.want {
				t.Errorf("Insert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		want       string
	}{
		{"middle", "Xab", 1, 3, "X"},
		{"start", "hello", 0, 2, "llo"},
		{"all", "hello", 0, 5, ""},
		{"empty range", "hello", 2, 2, "hello"},
		{"multibyte", "añb", 1, 2, "ab"},
		{"clamped", "abc", 1, 10, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromString(tt.initial).Delete(tt.start, tt.end).String()
			if got != tt.want {
				t.Errorf("Delete() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	r := FromString("hello world").Replace(6, 11, "there")
	if r.String() != "hello there" {
		t.Errorf("Replace() = %q, want %q", r.String(), "hello there")
	}
}

func TestSliceAndRuneAt(t *testing.T) {
	s := strings.Repeat("αβγ\n", 300)
	r := FromString(s)
	runes := []rune(s)

	for _, rng := range [][2]int{{0, 3}, {2, 9}, {250, 700}, {1190, 1200}} {
		got := r.Slice(rng[0], rng[1])
		if want := string(runes[rng[0]:rng[1]]); got != want {
			t.Errorf("Slice(%d, %d) = %q, want %q", rng[0], rng[1], got, want)
		}
	}
	for _, pos := range []int{0, 1, 3, 517, len(runes) - 1} {
		got, ok := r.RuneAt(pos)
		if !ok || got != runes[pos] {
			t.Errorf("RuneAt(%d) = %q, %v, want %q", pos, got, ok, runes[pos])
		}
	}
	if _, ok := r.RuneAt(len(runes)); ok {
		t.Error("RuneAt(Len()) should fail")
	}
}

func TestLines(t *testing.T) {
	r := FromString("ab\ncdé\n\nf")

	if r.LineCount() != 4 {
		t.Fatalf("LineCount() = %d, want 4", r.LineCount())
	}
	starts := []int{0, 3, 7, 8}
	texts := []string{"ab", "cdé", "", "f"}
	for i := range starts {
		if got := r.LineStart(i); got != starts[i] {
			t.Errorf("LineStart(%d) = %d, want %d", i, got, starts[i])
		}
		if got := r.LineText(i); got != texts[i] {
			t.Errorf("LineText(%d) = %q, want %q", i, got, texts[i])
		}
	}
}

func TestPointConversion(t *testing.T) {
	r := FromString("ab\ncdé\n\nf")
	tests := []struct {
		pos   int
		point Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{6, Point{1, 3}},
		{7, Point{2, 0}},
		{9, Point{3, 1}},
	}
	for _, tt := range tests {
		if got := r.CharToPoint(tt.pos); got != tt.point {
			t.Errorf("CharToPoint(%d) = %+v, want %+v", tt.pos, got, tt.point)
		}
		if got := r.PointToChar(tt.point); got != tt.pos {
			t.Errorf("PointToChar(%+v) = %d, want %d", tt.point, got, tt.pos)
		}
	}
	if got := r.PointToChar(Point{Line: 0, Column: 99}); got != 2 {
		t.Errorf("PointToChar clamps column: got %d, want 2", got)
	}
}

func TestLargeRopeLines(t *testing.T) {
	var b Builder
	for i := 0; i < 1000; i++ {
		b.WriteString("línea\n")
	}
	r := b.Build()
	if r.LineCount() != 1001 {
		t.Fatalf("LineCount() = %d, want 1001", r.LineCount())
	}
	if got := r.LineStart(500); got != 3000 {
		t.Errorf("LineStart(500) = %d, want 3000", got)
	}
	if got := r.CharToPoint(3004); got != (Point{Line: 500, Column: 4}) {
		t.Errorf("CharToPoint(3004) = %+v", got)
	}
	if r.Height() < 2 {
		t.Errorf("Height() = %d, expected a multi-level tree", r.Height())
	}
}

func TestImmutability(t *testing.T) {
	r := FromString("hello")
	_ = r.Insert(2, "XX")
	_ = r.Delete(0, 3)
	if r.String() != "hello" {
		t.Errorf("original modified: %q", r.String())
	}
}

func TestChunkIterator(t *testing.T) {
	s := strings.Repeat("0123456789", 200)
	r := FromString(s)
	var sb strings.Builder
	it := r.Chunks()
	next := 0
	for it.Next() {
		if it.Offset() != next {
			t.Fatalf("Offset() = %d, want %d", it.Offset(), next)
		}
		sb.WriteString(it.Chunk().String())
		next += it.Chunk().Chars()
	}
	if sb.String() != s {
		t.Error("chunks do not reassemble the text")
	}
}

func TestEquals(t *testing.T) {
	a := FromString("ab").Insert(2, "cd")
	b := FromString("abcd")
	if !a.Equals(b) {
		t.Error("equal texts should compare equal")
	}
	if a.Equals(FromString("abce")) {
		t.Error("different texts should not compare equal")
	}
}

func TestSummaryAdd(t *testing.T) {
	a := Summarize("ab\n")
	b := Summarize("cé")
	got := a.Add(b)
	want := Summarize("ab\ncé")
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
	if a.Add(Summary{}) != a {
		t.Error("zero summary should be the identity")
	}
}

func TestInsertDeleteProperty(t *testing.T) {
	f := func(s string, pos uint16, insert string) bool {
		r := FromString(s)
		p := int(pos) % (r.Len() + 1)
		r = r.Insert(p, insert)
		r = r.Delete(p, p+utf8.RuneCountInString(insert))
		return r.String() == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSplitConcatProperty(t *testing.T) {
	f := func(s string, pos uint16) bool {
		r := FromString(s)
		left, right := r.Split(int(pos) % (r.Len() + 1))
		return left.Concat(right).String() == s && left.Len()+right.Len() == r.Len()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestLineCountProperty(t *testing.T) {
	f := func(s string) bool {
		return FromString(s).LineCount() == strings.Count(s, "\n")+1
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
