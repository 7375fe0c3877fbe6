// internal/track/gc.go
package track

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirkon/errors"

	"trackview/internal/fasta"
	"trackview/internal/genome"
)

// GCConfig describes a GC-content track.
type GCConfig struct {
	Name      string
	Fasta     string
	Group     string
	Bins      int  // bins per viewport, default 60
	Autoscale bool // rescale on its own when ungrouped
	CacheSize int  // resident windows, default 32
}

// GCTrack plots the GC fraction of a FASTA sequence in fixed bins per viewport.
type GCTrack struct {
	name      string
	path      string
	bins      int
	autoscale bool
	cache     *windowCache[[]float64]
	fetches   atomic.Int64

	mu    sync.Mutex
	group string
	rng   Range
}

// NewGCTrack returns an empty track; nothing is read until Load.
func NewGCTrack(cfg GCConfig) *GCTrack {
	if cfg.Bins <= 0 {
		cfg.Bins = 60
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Fasta
	}
	return &GCTrack{
		name:      cfg.Name,
		path:      cfg.Fasta,
		bins:      cfg.Bins,
		autoscale: cfg.Autoscale,
		cache:     newWindowCache[[]float64](cfg.CacheSize),
		group:     cfg.Group,
		rng:       Range{Min: 0, Max: 1},
	}
}

func (t *GCTrack) ID() string { return t.name }

func (t *GCTrack) IsReadyToPaint(v genome.Viewport) bool { return t.cache.Has(v.Key()) }

// Load reads the viewport region and bins it. A resident window is not read again.
func (t *GCTrack) Load(ctx context.Context, v genome.Viewport) error {
	if t.cache.Has(v.Key()) {
		return nil
	}
	seq, err := fasta.ReadRegion(ctx, t.path, v.Chromosome, v.Start, v.End)
	if err != nil {
		return errors.Wrap(err, "read gc window").Str("track", t.name).Str("viewport", v.String())
	}
	t.fetches.Add(1)
	t.cache.Put(v.Key(), BinGC(seq, t.bins))
	return nil
}

// Fetches is the number of region reads actually performed.
func (t *GCTrack) Fetches() int64 { return t.fetches.Load() }

// Values returns the resident bins for v.
func (t *GCTrack) Values(v genome.Viewport) ([]float64, bool) { return t.cache.Get(v.Key()) }

func (t *GCTrack) AutoscaleGroup() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.group
}

// SetGroup moves the track to another autoscale group ("" removes it).
func (t *GCTrack) SetGroup(g string) {
	t.mu.Lock()
	t.group = g
	t.mu.Unlock()
}

func (t *GCTrack) Autoscale() bool { return t.autoscale }

func (t *GCTrack) InViewRange(v genome.Viewport) (Range, bool) {
	vals, ok := t.cache.Get(v.Key())
	if !ok || len(vals) == 0 {
		return Range{}, false
	}
	r := Range{Min: vals[0], Max: vals[0]}
	for _, x := range vals[1:] {
		r.Min = min(r.Min, x)
		r.Max = max(r.Max, x)
	}
	return r, true
}

func (t *GCTrack) SetDataRange(r Range) {
	t.mu.Lock()
	t.rng = r
	t.mu.Unlock()
}

func (t *GCTrack) DataRange() Range {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rng
}

// BinGC splits seq into n equal bins and returns the GC fraction of each,
// counting only unambiguous bases. Bins without A/C/G/T are 0.
func BinGC(seq []byte, n int) []float64 {
	if n > len(seq) {
		n = len(seq)
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		lo, hi := i*len(seq)/n, (i+1)*len(seq)/n
		var gc, acgt int
		for _, b := range seq[lo:hi] {
			switch b {
			case 'G', 'C':
				gc++
				acgt++
			case 'A', 'T':
				acgt++
			}
		}
		if acgt > 0 {
			out[i] = float64(gc) / float64(acgt)
		}
	}
	return out
}

var _ Scalable = (*GCTrack)(nil)
