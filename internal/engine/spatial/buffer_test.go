package spatial

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dshills/chonker/internal/geom"
	"github.com/dshills/chonker/internal/layout"
)

func sampleTokens() []layout.Token {
	return []layout.Token{
		{Content: "Hello", HPos: 0, VPos: 0, Width: 40, Height: 10},
		{Content: "World", HPos: 50, VPos: 0, Width: 40, Height: 10},
		{Content: "Next", HPos: 0, VPos: 20, Width: 32, Height: 10},
	}
}

func span(e ElementRange) [2]int { return [2]int{e.RopeStart, e.RopeEnd} }

func TestBuild(t *testing.T) {
	b := Build(sampleTokens())

	if got, want := b.Text(), "Hello World\nNext"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	want := [][2]int{{0, 5}, {6, 11}, {12, 16}}
	for i, e := range b.Elements() {
		if span(e) != want[i] {
			t.Errorf("element %d = %v, want %v", i, span(e), want[i])
		}
		if e.ElementID != i {
			t.Errorf("element %d ID = %d", i, e.ElementID)
		}
		if e.VisualBounds != e.OriginalBounds || e.Modified || e.Overflow {
			t.Errorf("element %d not pristine: %+v", i, e)
		}
		text, err := b.ElementText(i)
		if err != nil || text != sampleTokens()[i].Content {
			t.Errorf("ElementText(%d) = %q, %v", i, text, err)
		}
	}
}

func TestBuildSameLineTolerance(t *testing.T) {
	tokens := []layout.Token{
		{Content: "a", VPos: 10},
		{Content: "b", VPos: 14},
		{Content: "c", VPos: 16},
	}
	if got := Build(tokens).Text(); got != "a b\nc" {
		t.Errorf("default tolerance: Text() = %q", got)
	}
	if got := Build(tokens, WithSameLineTolerance(3)).Text(); got != "a\nb c" {
		t.Errorf("tight tolerance: Text() = %q", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	b := Build(nil)
	if b.Len() != 0 || b.ElementCount() != 0 {
		t.Errorf("empty build = %v", b)
	}
	if _, ok := b.ElementAtPoint(geom.Pt(0, 0)); ok {
		t.Error("empty buffer should not hit anything")
	}
}

func TestInsertShiftsRangeAtStart(t *testing.T) {
	b, err := FromText("ab", []ElementRange{{RopeStart: 0, RopeEnd: 2, OriginalBounds: geom.RectXYWH(0, 0, 16, 10)}})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Insert(0, "X"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if b.Text() != "Xab" {
		t.Errorf("Text() = %q, want %q", b.Text(), "Xab")
	}
	e, _ := b.Element(0)
	if span(e) != [2]int{1, 3} {
		t.Errorf("range = %v, want [1 3]", span(e))
	}
	if e.Modified {
		t.Error("shifted range should not be modified")
	}
}

func TestDeleteCollapsesRange(t *testing.T) {
	b, err := FromText("Xab", []ElementRange{{RopeStart: 1, RopeEnd: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Delete(1, 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if b.Text() != "X" {
		t.Errorf("Text() = %q, want %q", b.Text(), "X")
	}
	e, _ := b.Element(0)
	if span(e) != [2]int{1, 1} || !e.Modified {
		t.Errorf("range = %+v, want collapsed at 1 and modified", e)
	}
}

func TestInsertRules(t *testing.T) {
	tests := []struct {
		name         string
		pos          int
		want         [][2]int
		wantModified []bool
	}{
		{"inside first", 2, [][2]int{{0, 6}, {7, 12}, {13, 17}}, []bool{true, false, false}},
		{"end of first", 5, [][2]int{{0, 6}, {7, 12}, {13, 17}}, []bool{true, false, false}},
		{"start of second", 6, [][2]int{{0, 5}, {7, 12}, {13, 17}}, []bool{false, false, false}},
		{"end of text", 16, [][2]int{{0, 5}, {6, 11}, {12, 17}}, []bool{false, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Build(sampleTokens())
			if err := b.Insert(tt.pos, "!"); err != nil {
				t.Fatal(err)
			}
			for i, e := range b.Elements() {
				if span(e) != tt.want[i] || e.Modified != tt.wantModified[i] {
					t.Errorf("element %d = %v modified=%v, want %v modified=%v",
						i, span(e), e.Modified, tt.want[i], tt.wantModified[i])
				}
			}
		})
	}
}

func TestDeleteRules(t *testing.T) {
	tests := []struct {
		name         string
		start, end   int
		text         string
		want         [][2]int
		wantModified []bool
	}{
		{"separator only", 5, 6, "HelloWorld\nNext", [][2]int{{0, 5}, {5, 10}, {11, 15}}, []bool{false, true, false}},
		{"tail of first", 3, 5, "Hel World\nNext", [][2]int{{0, 3}, {4, 9}, {10, 14}}, []bool{true, false, false}},
		{"across two", 3, 8, "Helrld\nNext", [][2]int{{0, 3}, {3, 6}, {7, 11}}, []bool{true, true, false}},
		{"whole second", 6, 11, "Hello \nNext", [][2]int{{0, 5}, {6, 6}, {7, 11}}, []bool{false, true, false}},
		{"everything", 0, 16, "", [][2]int{{0, 0}, {0, 0}, {0, 0}}, []bool{true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Build(sampleTokens())
			if err := b.Delete(tt.start, tt.end); err != nil {
				t.Fatal(err)
			}
			if b.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.text)
			}
			for i, e := range b.Elements() {
				if span(e) != tt.want[i] || e.Modified != tt.wantModified[i] {
					t.Errorf("element %d = %v modified=%v, want %v modified=%v",
						i, span(e), e.Modified, tt.want[i], tt.wantModified[i])
				}
			}
		})
	}
}

func TestEditErrors(t *testing.T) {
	b := Build(sampleTokens())
	rev := b.Revision()

	if err := b.Insert(-1, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Insert(-1) error = %v", err)
	}
	if err := b.Insert(17, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Insert(past end) error = %v", err)
	}
	if err := b.Delete(3, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Delete(reversed) error = %v", err)
	}
	if err := b.Delete(0, 99); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Delete(past end) error = %v", err)
	}
	if err := b.Delete(4, 4); err != nil {
		t.Errorf("Delete(empty) error = %v", err)
	}
	if b.Revision() != rev || b.Text() != "Hello World\nNext" {
		t.Error("rejected edits must leave the buffer untouched")
	}
	if _, err := b.Element(5); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Element(5) error = %v", err)
	}
}

func TestFromTextValidation(t *testing.T) {
	if _, err := FromText("abc", []ElementRange{{RopeStart: 0, RopeEnd: 4}}); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("out of bounds range error = %v", err)
	}
	if _, err := FromText("abcd", []ElementRange{{RopeStart: 0, RopeEnd: 2}, {RopeStart: 1, RopeEnd: 3}}); !errors.Is(err, ErrRangesOverlap) {
		t.Errorf("overlapping ranges error = %v", err)
	}
}

func TestOverflow(t *testing.T) {
	b := Build(sampleTokens())
	// "Hello" is 40 points wide: 5 chars at 8 points fit exactly.
	if err := b.Insert(5, "!"); err != nil {
		t.Fatal(err)
	}
	if e, _ := b.Element(0); !e.Overflow {
		t.Error("6 chars in a 40 point box should overflow")
	}
	if err := b.Delete(0, 2); err != nil {
		t.Fatal(err)
	}
	if e, _ := b.Element(0); e.Overflow {
		t.Error("4 chars should fit again")
	}
}

func TestReplace(t *testing.T) {
	b := Build(sampleTokens())
	if err := b.Replace(6, 11, "There"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "Hello There\nNext" {
		t.Errorf("Text() = %q", b.Text())
	}
	e, _ := b.Element(1)
	if span(e) != [2]int{6, 11} || !e.Modified {
		t.Errorf("element 1 = %+v", e)
	}
}

func TestElementAtPoint(t *testing.T) {
	b := Build(sampleTokens())
	if _, ok := b.ElementAtPoint(geom.Pt(45, 5)); ok {
		t.Error("point between boxes should miss")
	}
	if _, ok := b.ElementAtPoint(geom.Pt(500, 500)); ok {
		t.Error("point outside the page should miss")
	}
	if idx, ok := b.ElementAtPoint(geom.Pt(60, 5)); !ok || idx != 1 {
		t.Errorf("ElementAtPoint() = %d, %v, want 1, true", idx, ok)
	}
}

func TestLengthConservation(t *testing.T) {
	b := Build(sampleTokens())
	before := b.Len()
	if err := b.Insert(3, "αβγ"); err != nil {
		t.Fatal(err)
	}
	if b.Len() != before+3 {
		t.Errorf("Len() after insert = %d, want %d", b.Len(), before+3)
	}
	if err := b.Delete(2, 7); err != nil {
		t.Fatal(err)
	}
	if b.Len() != before-2 {
		t.Errorf("Len() after delete = %d, want %d", b.Len(), before-2)
	}
}

func TestRandomEditsKeepRangesValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := Build(sampleTokens())

	for step := 0; step < 500; step++ {
		n := b.Len()
		if rng.Intn(2) == 0 || n == 0 {
			pos := rng.Intn(n + 1)
			if err := b.Insert(pos, "xyz"[:1+rng.Intn(3)]); err != nil {
				t.Fatalf("step %d: Insert(%d) error = %v", step, pos, err)
			}
		} else {
			start := rng.Intn(n + 1)
			end := start + rng.Intn(n-start+1)
			if err := b.Delete(start, end); err != nil {
				t.Fatalf("step %d: Delete(%d, %d) error = %v", step, start, end, err)
			}
		}
		if err := checkRanges(b.Elements(), b.Len()); err != nil {
			t.Fatalf("step %d: ranges invalid: %v (%v)", step, err, b.Elements())
		}
	}
}
