package grid

import (
	"sync"

	"github.com/dshills/chonker/internal/geom"
)

// DefaultMaxRegions is the number of separate dirty regions kept before
// the tracker gives up and reports the whole document as dirty.
const DefaultMaxRegions = 32

// DirtyTracker collects document areas whose rendering is stale.
// Overlapping regions are merged as they are added.
type DirtyTracker struct {
	mu         sync.Mutex
	regions    []geom.Rect
	full       bool
	maxRegions int
}

// NewDirtyTracker creates a tracker with DefaultMaxRegions.
func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{maxRegions: DefaultMaxRegions}
}

// Mark records r as dirty.
func (t *DirtyTracker) Mark(r geom.Rect) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.full {
		return
	}
	for {
		merged := false
		for i, existing := range t.regions {
			if existing.Intersects(r) {
				r = r.Union(existing)
				t.regions = append(t.regions[:i], t.regions[i+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	t.regions = append(t.regions, r)
	if len(t.regions) > t.maxRegions {
		t.full = true
		t.regions = nil
	}
}

// MarkAll flags the whole document as dirty.
func (t *DirtyTracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.full = true
	t.regions = nil
}

// Regions returns the dirty regions and whether everything is dirty.
func (t *DirtyTracker) Regions() (regions []geom.Rect, all bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]geom.Rect(nil), t.regions...), t.full
}

// IsDirty reports whether anything needs repainting.
func (t *DirtyTracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.full || len(t.regions) > 0
}

// Clear resets the tracker after a repaint.
func (t *DirtyTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.full = false
	t.regions = nil
}
