package repaint_test

import (
	"context"
	stderrs "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"trackview/internal/autoscale"
	"trackview/internal/genome"
	"trackview/internal/loadsched"
	"trackview/internal/mocks"
	"trackview/internal/repaint"
	"trackview/internal/track"
)

var mainView = genome.Viewport{Chromosome: "chr1", Start: 0, End: 1000, Name: "main"}

// fakeTrack becomes ready for a viewport once Load succeeded for it.
type fakeTrack struct {
	id   string
	gate chan struct{}
	err  error

	mu     sync.Mutex
	loaded map[string]bool
	loads  atomic.Int32
	log    *loadLog
}

type loadLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *loadLog) add(s string) {
	l.mu.Lock()
	l.calls = append(l.calls, s)
	l.mu.Unlock()
}

func newFake(id string) *fakeTrack { return &fakeTrack{id: id, loaded: map[string]bool{}} }

func (f *fakeTrack) ID() string             { return f.id }
func (f *fakeTrack) AutoscaleGroup() string { return "" }

func (f *fakeTrack) IsReadyToPaint(v genome.Viewport) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded[v.Key()]
}

func (f *fakeTrack) Load(_ context.Context, v genome.Viewport) error {
	f.loads.Add(1)
	if f.log != nil {
		f.log.add(f.id + "@" + v.Name)
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.loaded[v.Key()] = true
	f.mu.Unlock()
	return nil
}

// recSurface signals every redraw and runs onRedraw first.
type recSurface struct {
	redraws  chan struct{}
	onRedraw func()
	busy     atomic.Int32
}

func newSurface() *recSurface { return &recSurface{redraws: make(chan struct{}, 64)} }

func (s *recSurface) Redraw() {
	if s.onRedraw != nil {
		s.onRedraw()
	}
	s.redraws <- struct{}{}
}

func (s *recSurface) ShowBusy() func() {
	s.busy.Add(1)
	return func() { s.busy.Add(-1) }
}

func (s *recSurface) waitRedraws(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.redraws:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for redraw %d of %d", i+1, n)
		}
	}
}

type recLogger struct {
	repaint.NopLogger
	mu        sync.Mutex
	started   int
	coalesced int
	replaced  int
	failed    int
	misuse    []error
}

func (l *recLogger) CycleStarted(uuid.UUID, int) {
	l.mu.Lock()
	l.started++
	l.mu.Unlock()
}

func (l *recLogger) RequestCoalesced(_ uuid.UUID, _ int, replaced bool) {
	l.mu.Lock()
	l.coalesced++
	if replaced {
		l.replaced++
	}
	l.mu.Unlock()
}

func (l *recLogger) FetchFailed(loadsched.FetchFailure) {
	l.mu.Lock()
	l.failed++
	l.mu.Unlock()
}

func (l *recLogger) Misuse(err error) {
	l.mu.Lock()
	l.misuse = append(l.misuse, err)
	l.mu.Unlock()
}

type fixture struct {
	coord  *repaint.Coordinator
	sched  *loadsched.Scheduler
	log    *recLogger
	tracks []track.Track
}

func newFixture(t *testing.T, scaler repaint.Autoscaler, frames []genome.Viewport, all ...track.Track) *fixture {
	t.Helper()
	f := &fixture{
		sched:  loadsched.New(loadsched.Config{Workers: 4}),
		log:    &recLogger{},
		tracks: all,
	}
	t.Cleanup(f.sched.Close)
	coord, err := repaint.New(repaint.Config{
		Frames:     func() []genome.Viewport { return frames },
		AllTracks:  func() []track.Track { return f.tracks },
		Scheduler:  f.sched,
		Autoscaler: scaler,
		Logger:     f.log,
		IsBatch:    func() bool { return false },
	})
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	f.coord = coord
	return f
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func eventuallyIdle(t *testing.T, c *repaint.Coordinator) {
	t.Helper()
	eventually(t, "coordinator to go idle", func() bool { return !c.Loading() })
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := repaint.New(repaint.Config{}); err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestRequest_EmptyCycleShortcut(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTrack(ctrl)
	tr.EXPECT().IsReadyToPaint(mainView).Return(true).Times(1)
	tr.EXPECT().Load(gomock.Any(), gomock.Any()).Times(0)
	scaler := mocks.NewMockAutoscaler(ctrl)
	scaler.EXPECT().Apply([]track.Track{tr}, []genome.Viewport{mainView}).Times(1)
	surface := mocks.NewMockSurface(ctrl)
	surface.EXPECT().Redraw().Times(1)

	f := newFixture(t, scaler, []genome.Viewport{mainView}, tr)
	f.coord.Request(surface, []track.Track{tr})

	if f.coord.Loading() {
		t.Fatal("no cycle expected when every track is ready")
	}
	if st := f.sched.Stats(); st.Dispatched != 0 || st.Cycles != 0 {
		t.Fatalf("worker pool must not be touched: %+v", st)
	}
}

func TestRequest_AutoscaleOnlyAfterCycleCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	fast, slow := newFake("fast"), newFake("slow")
	slow.gate = make(chan struct{})
	frames := []genome.Viewport{mainView, {Chromosome: "chr2", Start: 0, End: 10, Name: "split"}}

	var applied atomic.Int32
	scaler := mocks.NewMockAutoscaler(ctrl)
	scaler.EXPECT().Apply(gomock.Any(), gomock.Any()).Do(func(ts []track.Track, fs []genome.Viewport) {
		applied.Add(1)
		for _, t2 := range []*fakeTrack{fast, slow} {
			for _, v := range fs {
				if !t2.IsReadyToPaint(v) {
					t.Errorf("autoscale ran with %s not loaded for %s", t2.id, v.Name)
				}
			}
		}
	}).Times(1)

	f := newFixture(t, scaler, frames, fast, slow)
	s := newSurface()
	f.coord.Request(s, []track.Track{fast, slow})

	if !f.coord.Loading() {
		t.Fatal("coordinator must be loading while a unit is gated")
	}
	if s.busy.Load() != 1 {
		t.Fatal("busy indicator must be shown while loading")
	}
	time.Sleep(20 * time.Millisecond)
	if applied.Load() != 0 {
		t.Fatal("autoscale must wait for every unit")
	}

	close(slow.gate)
	s.waitRedraws(t, 1)
	eventuallyIdle(t, f.coord)
	if s.busy.Load() != 0 {
		t.Fatal("busy indicator must be removed after the cycle")
	}
}

func TestRequest_CoalescesWhileLoading(t *testing.T) {
	a, b, c := newFake("a"), newFake("b"), newFake("c")
	a.gate = make(chan struct{})
	f := newFixture(t, autoscale.Engine{}, []genome.Viewport{mainView}, a, b, c)

	s := newSurface()
	var lastSawC atomic.Bool
	s.onRedraw = func() { lastSawC.Store(c.IsReadyToPaint(mainView)) }

	f.coord.Request(s, []track.Track{a})
	f.coord.Request(s, []track.Track{a}) // same tracks: must not start a second fetch
	f.coord.Request(s, []track.Track{b})
	f.coord.Request(s, []track.Track{c})

	// three best-effort frames, no new fetches
	s.waitRedraws(t, 3)
	eventually(t, "a to start loading", func() bool { return a.loads.Load() == 1 })
	if a.loads.Load() != 1 || b.loads.Load() != 0 || c.loads.Load() != 0 {
		t.Fatalf("no concurrent cycle allowed: a=%d b=%d c=%d", a.loads.Load(), b.loads.Load(), c.loads.Load())
	}

	close(a.gate)
	// cycle 1 redraw, then the pending request (c) runs its own cycle
	s.waitRedraws(t, 2)
	eventuallyIdle(t, f.coord)

	if b.loads.Load() != 0 {
		t.Fatal("superseded pending request must be discarded")
	}
	if c.loads.Load() != 1 || !lastSawC.Load() {
		t.Fatal("last request must be honored with its data loaded")
	}
	f.log.mu.Lock()
	defer f.log.mu.Unlock()
	if f.log.started != 2 || f.log.coalesced != 3 || f.log.replaced != 2 {
		t.Fatalf("log: started=%d coalesced=%d replaced=%d", f.log.started, f.log.coalesced, f.log.replaced)
	}
}

func TestRequest_IdempotentFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	var loaded atomic.Bool
	tr := mocks.NewMockTrack(ctrl)
	tr.EXPECT().IsReadyToPaint(mainView).DoAndReturn(func(genome.Viewport) bool { return loaded.Load() }).AnyTimes()
	tr.EXPECT().Load(gomock.Any(), mainView).DoAndReturn(func(context.Context, genome.Viewport) error {
		loaded.Store(true)
		return nil
	}).Times(1)

	f := newFixture(t, autoscale.Engine{}, []genome.Viewport{mainView}, tr)
	s := newSurface()
	f.coord.Request(s, []track.Track{tr})
	s.waitRedraws(t, 1)
	eventuallyIdle(t, f.coord)

	f.coord.Request(s, []track.Track{tr})
	s.waitRedraws(t, 1)
	if st := f.sched.Stats(); st.Cycles != 1 || st.Dispatched != 1 {
		t.Fatalf("second request must not dispatch: %+v", st)
	}
}

func TestRequest_PartialFailure(t *testing.T) {
	ok1, ok2, bad := newFake("ok1"), newFake("ok2"), newFake("bad")
	cause := stderrs.New("truncated file")
	bad.err = cause

	var reported []loadsched.FetchFailure
	var mu sync.Mutex
	sched := loadsched.New(loadsched.Config{Workers: 3})
	defer sched.Close()
	log := &recLogger{}
	coord, err := repaint.New(repaint.Config{
		Frames:     func() []genome.Viewport { return []genome.Viewport{mainView} },
		AllTracks:  func() []track.Track { return []track.Track{ok1, ok2, bad} },
		Scheduler:  sched,
		Autoscaler: autoscale.Engine{},
		Logger:     log,
		IsBatch:    func() bool { return false },
		OnFailure: func(f loadsched.FetchFailure) {
			mu.Lock()
			reported = append(reported, f)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	s := newSurface()
	coord.Request(s, []track.Track{ok1, ok2, bad})
	s.waitRedraws(t, 1)
	eventuallyIdle(t, coord)

	if !ok1.IsReadyToPaint(mainView) || !ok2.IsReadyToPaint(mainView) {
		t.Fatal("healthy tracks must have fresh data")
	}
	mu.Lock()
	defer mu.Unlock()
	log.mu.Lock()
	defer log.mu.Unlock()
	if len(reported) != 1 || !stderrs.Is(reported[0], cause) || reported[0].Unit.Track.ID() != "bad" {
		t.Fatalf("failure must be reported exactly once: %+v", reported)
	}
	if log.failed != 1 {
		t.Fatalf("failure must be logged exactly once, got %d", log.failed)
	}
}

// queuePoster holds posted funcs until the test runs them.
type queuePoster struct {
	fns     chan func()
	running atomic.Bool
}

func (q *queuePoster) Post(fn func()) { q.fns <- fn }

func (q *queuePoster) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q.fns:
		q.running.Store(true)
		fn()
		q.running.Store(false)
	case <-time.After(5 * time.Second):
		t.Fatal("nothing posted")
	}
}

func TestRequest_FailuresReportedOnPoster(t *testing.T) {
	bad := newFake("bad")
	bad.err = stderrs.New("no such contig")

	post := &queuePoster{fns: make(chan func(), 8)}
	var onPoster, offPoster atomic.Int32
	sched := loadsched.New(loadsched.Config{Workers: 1})
	defer sched.Close()
	coord, err := repaint.New(repaint.Config{
		Frames:     func() []genome.Viewport { return []genome.Viewport{mainView} },
		AllTracks:  func() []track.Track { return []track.Track{bad} },
		Scheduler:  sched,
		Autoscaler: autoscale.Engine{},
		Poster:     post,
		IsBatch:    func() bool { return false },
		OnFailure: func(loadsched.FetchFailure) {
			if post.running.Load() {
				onPoster.Add(1)
			} else {
				offPoster.Add(1)
			}
		},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	s := newSurface()
	coord.Request(s, []track.Track{bad})
	post.runNext(t)
	s.waitRedraws(t, 1)

	if onPoster.Load() != 1 || offPoster.Load() != 0 {
		t.Fatalf("failure must be reported once on the poster, got on=%d off=%d", onPoster.Load(), offPoster.Load())
	}
	if coord.Loading() {
		t.Fatal("coordinator must be idle after the posted completion")
	}
}

type panicTrack struct{ *fakeTrack }

func (panicTrack) Load(context.Context, genome.Viewport) error { panic("decoder bug") }

func TestRequest_PanicDoesNotStickLoading(t *testing.T) {
	p := panicTrack{newFake("p")}
	f := newFixture(t, autoscale.Engine{}, []genome.Viewport{mainView}, p)
	s := newSurface()
	f.coord.Request(s, []track.Track{p})
	s.waitRedraws(t, 1)
	eventuallyIdle(t, f.coord)
	f.log.mu.Lock()
	defer f.log.mu.Unlock()
	if f.log.failed != 1 {
		t.Fatalf("panic must surface as one fetch failure, got %d", f.log.failed)
	}
}

func TestRequest_Misuse(t *testing.T) {
	ctrl := gomock.NewController(t)
	scaler := mocks.NewMockAutoscaler(ctrl)
	scaler.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)
	surface := mocks.NewMockSurface(ctrl)
	surface.EXPECT().Redraw().Times(0)

	f := newFixture(t, scaler, []genome.Viewport{mainView})
	f.coord.Request(nil, []track.Track{newFake("a")})
	f.coord.Request(surface, []track.Track{newFake("a"), nil})

	f.log.mu.Lock()
	defer f.log.mu.Unlock()
	if len(f.log.misuse) != 2 {
		t.Fatalf("want 2 misuse warnings, got %d", len(f.log.misuse))
	}
	for _, err := range f.log.misuse {
		if !stderrs.Is(err, repaint.ErrMisuse) {
			t.Fatalf("misuse must wrap ErrMisuse: %v", err)
		}
	}
	if f.coord.Loading() {
		t.Fatal("misuse must be a no-op")
	}
}

func TestRequest_BatchModeIsSynchronous(t *testing.T) {
	a := newFake("a")
	sched := loadsched.New(loadsched.Config{Workers: 1})
	defer sched.Close()
	coord, err := repaint.New(repaint.Config{
		Frames:     func() []genome.Viewport { return []genome.Viewport{mainView} },
		AllTracks:  func() []track.Track { return []track.Track{a} },
		Scheduler:  sched,
		Autoscaler: autoscale.Engine{},
		IsBatch:    func() bool { return true },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s := newSurface()
	coord.Request(s, []track.Track{a})

	if !a.IsReadyToPaint(mainView) || len(s.redraws) != 1 {
		t.Fatal("batch request must load and redraw before returning")
	}
	if st := sched.Stats(); st.Dispatched != 0 {
		t.Fatalf("batch mode must not use the pool: %+v", st)
	}
}
