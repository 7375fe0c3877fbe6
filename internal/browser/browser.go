// Package browser owns what a repaint needs: the viewport frames, the
// panels of tracks, the shared load scheduler and the coordinator.
// Navigation mutates the frames and requests a repaint of the attached
// surface; it never waits for data.
package browser

import (
	"sync"

	"github.com/sirkon/errors"

	"trackview/internal/autoscale"
	"trackview/internal/fasta"
	"trackview/internal/genome"
	"trackview/internal/loadsched"
	"trackview/internal/repaint"
	"trackview/internal/track"
)

// DataPanel is the panel new tracks are added to unless told otherwise.
const DataPanel = "data"

// Config wires a Browser.
type Config struct {
	Contigs genome.Contigs
	Workers int
	Queue   int
	Poster  repaint.Poster
	Logger  repaint.Logger
	// IsBatch overrides the process-wide run mode; tests only.
	IsBatch   func() bool
	OnFailure func(loadsched.FetchFailure)
}

// Browser is safe for concurrent use.
type Browser struct {
	contigs genome.Contigs
	frames  genome.Frames
	sched   *loadsched.Scheduler
	coord   *repaint.Coordinator

	mu      sync.RWMutex
	panels  []*track.Panel
	surface repaint.Surface
}

// ContigsFromFasta reads the contig table of a FASTA file.
func ContigsFromFasta(path string) (genome.Contigs, error) {
	cs, err := fasta.Index(path)
	if err != nil {
		return nil, errors.Wrap(err, "index genome").Str("fasta-path", path)
	}
	out := make(genome.Contigs, len(cs))
	for i, c := range cs {
		out[i] = genome.Contig{Name: c.Name, Length: c.Length}
	}
	return out, nil
}

// New returns a browser showing the whole first contig.
func New(cfg Config) (*Browser, error) {
	if len(cfg.Contigs) == 0 {
		return nil, errors.New("genome has no contigs")
	}
	b := &Browser{
		contigs: cfg.Contigs,
		sched:   loadsched.New(loadsched.Config{Workers: cfg.Workers, Queue: cfg.Queue}),
		panels:  []*track.Panel{{Name: DataPanel}},
	}
	first := cfg.Contigs[0]
	b.frames.Set(genome.NewViewport(first.Name, first, 0, first.Length))

	coord, err := repaint.New(repaint.Config{
		Frames:     b.frames.Snapshot,
		AllTracks:  b.AllTracks,
		Scheduler:  b.sched,
		Autoscaler: autoscale.Engine{},
		Poster:     cfg.Poster,
		Logger:     cfg.Logger,
		IsBatch:    cfg.IsBatch,
		OnFailure:  cfg.OnFailure,
	})
	if err != nil {
		b.sched.Close()
		return nil, errors.Wrap(err, "set up repaint coordinator")
	}
	b.coord = coord
	return b, nil
}

// Attach sets the main surface repainted by navigation.
func (b *Browser) Attach(s repaint.Surface) {
	b.mu.Lock()
	b.surface = s
	b.mu.Unlock()
}

func (b *Browser) Contigs() genome.Contigs { return b.contigs }

// Frames returns the current viewports in display order.
func (b *Browser) Frames() []genome.Viewport { return b.frames.Snapshot() }

// Loading reports whether a load cycle is in flight.
func (b *Browser) Loading() bool { return b.coord.Loading() }

func (b *Browser) Stats() loadsched.Stats { return b.sched.Stats() }

// AddTrack appends t to the named panel, creating the panel if needed, and
// requests a repaint of t alone.
func (b *Browser) AddTrack(panel string, t track.Track) error {
	if t == nil {
		return errors.New("nil track")
	}
	if panel == "" {
		panel = DataPanel
	}
	b.mu.Lock()
	for _, p := range b.panels {
		for _, have := range p.Tracks {
			if have.ID() == t.ID() {
				b.mu.Unlock()
				return errors.New("duplicate track").Str("track", t.ID())
			}
		}
	}
	p := b.panelLocked(panel)
	p.Tracks = append(p.Tracks, t)
	b.mu.Unlock()

	b.RepaintTracks(t)
	return nil
}

func (b *Browser) panelLocked(name string) *track.Panel {
	for _, p := range b.panels {
		if p.Name == name {
			return p
		}
	}
	p := &track.Panel{Name: name}
	b.panels = append(b.panels, p)
	return p
}

// Track finds a track by ID.
func (b *Browser) Track(id string) (track.Track, bool) {
	for _, t := range b.AllTracks() {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

type grouper interface {
	SetGroup(string)
}

// SetGroup moves a track to another autoscale group and repaints.
func (b *Browser) SetGroup(id, group string) error {
	t, ok := b.Track(id)
	if !ok {
		return errors.New("unknown track").Str("track", id)
	}
	g, ok := t.(grouper)
	if !ok {
		return errors.New("track does not support autoscale groups").Str("track", id)
	}
	g.SetGroup(group)
	b.Repaint()
	return nil
}

// SetHidden toggles the visibility of a track in every panel holding it.
func (b *Browser) SetHidden(id string, hidden bool) error {
	if _, ok := b.Track(id); !ok {
		return errors.New("unknown track").Str("track", id)
	}
	b.mu.Lock()
	for _, p := range b.panels {
		if p.Hidden == nil {
			p.Hidden = map[string]bool{}
		}
		p.Hidden[id] = hidden
	}
	b.mu.Unlock()
	b.Repaint()
	return nil
}

// Panels returns a copy of the panel list.
func (b *Browser) Panels() []track.Panel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]track.Panel, len(b.panels))
	for i, p := range b.panels {
		out[i] = track.Panel{Name: p.Name, Tracks: append([]track.Track(nil), p.Tracks...), Hidden: map[string]bool{}}
		for k, v := range p.Hidden {
			out[i].Hidden[k] = v
		}
	}
	return out
}

// AllTracks returns every loaded track, visible or not, in panel order.
func (b *Browser) AllTracks() []track.Track {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []track.Track
	for _, p := range b.panels {
		out = append(out, p.Tracks...)
	}
	return out
}

// VisibleTracks returns the visible tracks of every panel in panel order.
func (b *Browser) VisibleTracks() []track.Track {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []track.Track
	for _, p := range b.panels {
		out = append(out, p.Visible()...)
	}
	return out
}

// Repaint requests a repaint of every visible track on the main surface.
func (b *Browser) Repaint() {
	b.RepaintTracks(b.VisibleTracks()...)
}

// RepaintTracks requests a repaint of the given tracks on the main surface.
// Without an attached surface it does nothing.
func (b *Browser) RepaintTracks(tracks ...track.Track) {
	b.mu.RLock()
	s := b.surface
	b.mu.RUnlock()
	if s == nil {
		return
	}
	b.coord.Request(s, tracks)
}

// Close stops the load pool. In-flight loads see a cancelled context.
func (b *Browser) Close() {
	b.sched.Close()
}
