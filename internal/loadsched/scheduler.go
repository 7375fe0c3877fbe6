// internal/loadsched/scheduler.go
package loadsched

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"trackview/internal/track"
)

// Config controls the worker pool.
type Config struct {
	Workers int // number of worker goroutines (>=1), default 5
	Queue   int // buffered job slots; excess submissions wait, default Workers*2
}

// Result is the aggregated outcome of one cycle.
type Result struct {
	Cycle    uuid.UUID
	Units    int
	Failures []FetchFailure
	Elapsed  time.Duration
}

// Stats are cumulative pool counters.
type Stats struct {
	Cycles     uint64
	Dispatched uint64
	Failed     uint64
}

// Scheduler is a process-wide bounded pool. The zero value is not usable;
// build it with New and release it with Close.
type Scheduler struct {
	jobs    chan job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	feeders sync.WaitGroup
	once    sync.Once

	mu     sync.Mutex
	closed bool

	cycles     atomic.Uint64
	dispatched atomic.Uint64
	failed     atomic.Uint64
}

type job struct {
	unit  track.LoadUnit
	cycle *cycle
}

// cycle is the all-of join for one Dispatch call.
type cycle struct {
	id      uuid.UUID
	started time.Time
	units   int
	wg      sync.WaitGroup

	mu       sync.Mutex
	failures []FetchFailure
}

func (c *cycle) fail(f FetchFailure) {
	c.mu.Lock()
	c.failures = append(c.failures, f)
	c.mu.Unlock()
}

// New starts the worker goroutines.
func New(cfg Config) *Scheduler {
	if cfg.Workers < 1 {
		cfg.Workers = 5
	}
	if cfg.Queue < 1 {
		cfg.Queue = cfg.Workers * 2
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		jobs:   make(chan job, cfg.Queue),
		ctx:    ctx,
		cancel: cancel,
	}

	s.wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j := <-s.jobs:
					s.run(j)
				}
			}
		}()
	}
	return s
}

func (s *Scheduler) run(j job) {
	defer j.cycle.wg.Done()
	if err := SafeLoad(s.ctx, j.unit); err != nil {
		s.failed.Add(1)
		j.cycle.fail(FetchFailure{Unit: j.unit, Err: err})
	}
}

// SafeLoad runs one fetch; a panicking track is reported as an error.
func SafeLoad(ctx context.Context, u track.LoadUnit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return u.Track.Load(ctx, u.Viewport)
}

// Dispatch submits units as cycle id and returns immediately. done is called
// exactly once, from a scheduler goroutine, after every unit has finished or
// failed. An empty unit set completes synchronously without touching the pool.
func (s *Scheduler) Dispatch(id uuid.UUID, units []track.LoadUnit, done func(Result)) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	c := &cycle{id: id, started: time.Now(), units: len(units)}
	if len(units) == 0 {
		done(Result{Cycle: c.id})
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		res := Result{Cycle: c.id, Units: c.units}
		for _, u := range units {
			s.failed.Add(1)
			res.Failures = append(res.Failures, FetchFailure{Unit: u, Err: ErrClosed})
		}
		go done(res)
		return
	}
	s.feeders.Add(1)
	s.mu.Unlock()

	s.cycles.Add(1)
	c.wg.Add(len(units))

	go func() {
		defer s.feeders.Done()
		// Feeding may wait for free queue slots; that is backpressure, not failure.
	feed:
		for i, u := range units {
			select {
			case <-s.ctx.Done():
				for _, rest := range units[i:] {
					s.failed.Add(1)
					c.fail(FetchFailure{Unit: rest, Err: ErrClosed})
					c.wg.Done()
				}
				break feed
			case s.jobs <- job{unit: u, cycle: c}:
				s.dispatched.Add(1)
			}
		}
	}()

	go func() {
		c.wg.Wait()
		c.mu.Lock()
		res := Result{Cycle: c.id, Units: c.units, Failures: c.failures, Elapsed: time.Since(c.started)}
		c.mu.Unlock()
		done(res)
	}()
}

// Stats returns cumulative counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Cycles:     s.cycles.Load(),
		Dispatched: s.dispatched.Load(),
		Failed:     s.failed.Load(),
	}
}

// Close stops the workers and waits for fetches already running. Queued
// units of open cycles are failed with ErrClosed so every cycle still
// completes. Dispatch after Close fails all units.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
		s.feeders.Wait()
		s.wg.Wait()
		for {
			select {
			case j := <-s.jobs:
				s.failed.Add(1)
				j.cycle.fail(FetchFailure{Unit: j.unit, Err: ErrClosed})
				j.cycle.wg.Done()
			default:
				return
			}
		}
	})
}
