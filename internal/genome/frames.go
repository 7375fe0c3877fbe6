// internal/genome/frames.go
package genome

import "sync"

// Frames is the ordered viewport sequence, one per split panel.
// Order is display order.
type Frames struct {
	mu   sync.RWMutex
	list []Viewport
}

// Snapshot returns a copy of the current sequence.
func (f *Frames) Snapshot() []Viewport {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Viewport(nil), f.list...)
}

// Set replaces the whole sequence.
func (f *Frames) Set(vs ...Viewport) {
	f.mu.Lock()
	f.list = append(f.list[:0:0], vs...)
	f.mu.Unlock()
}

// Update replaces every viewport with fn(viewport).
func (f *Frames) Update(fn func(Viewport) Viewport) {
	f.mu.Lock()
	next := make([]Viewport, len(f.list))
	for i, v := range f.list {
		next[i] = fn(v)
	}
	f.list = next
	f.mu.Unlock()
}

// Len returns the number of panels.
func (f *Frames) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.list)
}
