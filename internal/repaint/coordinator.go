// internal/repaint/coordinator.go
package repaint

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirkon/errors"

	"trackview/internal/genome"
	"trackview/internal/loadsched"
	"trackview/internal/runmode"
	"trackview/internal/track"
)

// ErrMisuse marks a rejected repaint request.
var ErrMisuse error = errors.New("repaint coordinator misuse")

// Config wires a Coordinator to its collaborators.
type Config struct {
	// Frames returns the current viewport sequence.
	Frames func() []genome.Viewport
	// AllTracks returns every loaded track; autoscale runs over this set,
	// not only the requested tracks.
	AllTracks func() []track.Track

	Scheduler  Dispatcher
	Autoscaler Autoscaler

	// Poster is the interactive thread; defaults to Inline.
	Poster Poster
	// Logger defaults to NopLogger.
	Logger Logger
	// IsBatch selects the synchronous path; defaults to runmode.IsBatch.
	IsBatch func() bool
	// OnFailure is called once per failed load unit, after logging, on the
	// Poster before the cycle's redraw.
	OnFailure func(loadsched.FetchFailure)
}

// Coordinator serializes repaint requests. Build it with New; it is safe for
// concurrent use.
type Coordinator struct {
	frames    func() []genome.Viewport
	allTracks func() []track.Track
	sched     Dispatcher
	scaler    Autoscaler
	post      Poster
	log       Logger
	isBatch   func() bool
	onFailure func(loadsched.FetchFailure)
	batch     *BatchExecutor

	mu sync.Mutex
	st state
}

// New validates cfg and returns an idle coordinator.
func New(cfg Config) (*Coordinator, error) {
	switch {
	case cfg.Frames == nil:
		return nil, errors.New("frames source is required")
	case cfg.AllTracks == nil:
		return nil, errors.New("track set source is required")
	case cfg.Scheduler == nil:
		return nil, errors.New("scheduler is required")
	case cfg.Autoscaler == nil:
		return nil, errors.New("autoscaler is required")
	}
	if cfg.Poster == nil {
		cfg.Poster = Inline
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}
	if cfg.IsBatch == nil {
		cfg.IsBatch = runmode.IsBatch
	}

	return &Coordinator{
		frames:    cfg.Frames,
		allTracks: cfg.AllTracks,
		sched:     cfg.Scheduler,
		scaler:    cfg.Autoscaler,
		post:      cfg.Poster,
		log:       cfg.Logger,
		isBatch:   cfg.IsBatch,
		onFailure: cfg.OnFailure,
		batch: &BatchExecutor{
			Frames:     cfg.Frames,
			AllTracks:  cfg.AllTracks,
			Autoscaler: cfg.Autoscaler,
			Logger:     cfg.Logger,
			OnFailure:  cfg.OnFailure,
		},
		st: idleState{},
	}, nil
}

// Loading reports whether a load cycle is in flight.
func (c *Coordinator) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.st.(*loadingState)
	return ok
}

// Request asks for surface to be redrawn with tracks' data for the current
// frames. It never blocks on loading: missing data is fetched on the pool and
// the redraw happens on the Poster once the whole cycle is done. In batch
// mode it runs the BatchExecutor synchronously instead.
func (c *Coordinator) Request(surface Surface, tracks []track.Track) {
	if surface == nil {
		c.log.Misuse(errors.Wrap(ErrMisuse, "nil surface").Int("tracks", len(tracks)))
		return
	}
	for i, t := range tracks {
		if t == nil {
			c.log.Misuse(errors.Wrap(ErrMisuse, "nil track in set").Int("track-index", i))
			return
		}
	}

	if c.isBatch() {
		c.batch.Repaint(surface, tracks)
		return
	}

	frames := c.frames()

	c.mu.Lock()
	if ld, ok := c.st.(*loadingState); ok {
		replaced := ld.pending != nil
		ld.pending = &Request{Surface: surface, Tracks: tracks}
		id := ld.cycle
		c.mu.Unlock()

		c.log.RequestCoalesced(id, len(tracks), replaced)
		c.post.Post(surface.Redraw)
		return
	}

	units := loadsched.Units(frames, tracks)
	if len(units) == 0 {
		c.mu.Unlock()
		c.post.Post(func() { c.finish(surface, frames) })
		return
	}

	ld := &loadingState{cycle: uuid.New()}
	c.st = ld
	c.mu.Unlock()

	removeBusy := showBusy(surface)
	c.log.CycleStarted(ld.cycle, len(units))
	req := Request{Surface: surface, Tracks: tracks}
	c.sched.Dispatch(ld.cycle, units, func(res loadsched.Result) {
		c.complete(req, frames, res, removeBusy)
	})
}

// complete runs on a scheduler goroutine once every unit of the cycle is
// done. Everything it reports happens on the Poster.
func (c *Coordinator) complete(req Request, frames []genome.Viewport, res loadsched.Result, removeBusy func()) {
	c.post.Post(func() {
		for _, f := range res.Failures {
			c.log.FetchFailed(f)
			if c.onFailure != nil {
				c.onFailure(f)
			}
		}
		c.log.CycleFinished(res)

		removeBusy()
		c.finish(req.Surface, frames)

		c.mu.Lock()
		var next *Request
		if ld, ok := c.st.(*loadingState); ok {
			next = ld.pending
		}
		c.st = idleState{}
		c.mu.Unlock()

		if next != nil {
			c.Request(next.Surface, next.Tracks)
		}
	})
}

// finish autoscales over the whole track set and redraws surface.
func (c *Coordinator) finish(surface Surface, frames []genome.Viewport) {
	c.scaler.Apply(c.allTracks(), frames)
	if lc, ok := surface.(LayoutChecker); ok {
		lc.CheckLayout()
	}
	surface.Redraw()
}

func showBusy(s Surface) func() {
	if b, ok := s.(BusyIndicator); ok {
		if done := b.ShowBusy(); done != nil {
			return done
		}
	}
	return func() {}
}
