// internal/repaint/batch.go
package repaint

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trackview/internal/genome"
	"trackview/internal/loadsched"
	"trackview/internal/track"
)

// BatchExecutor is the synchronous pipeline used by headless scripts: loads
// run one after another in the calling goroutine, viewport-outer and
// track-inner, then autoscale and redraw. There is no coalescing.
type BatchExecutor struct {
	Frames     func() []genome.Viewport
	AllTracks  func() []track.Track
	Autoscaler Autoscaler
	Logger     Logger
	OnFailure  func(loadsched.FetchFailure)
}

// Repaint loads whatever tracks miss for the current frames, autoscales and
// redraws surface before returning.
func (b *BatchExecutor) Repaint(surface Surface, tracks []track.Track) loadsched.Result {
	log := b.Logger
	if log == nil {
		log = NopLogger{}
	}
	res := loadsched.Result{Cycle: uuid.New()}
	start := time.Now()
	frames := b.Frames()

	for _, v := range frames {
		for _, t := range tracks {
			// Checked per step: two panels on the same window share data.
			if t.IsReadyToPaint(v) {
				continue
			}
			u := track.LoadUnit{Track: t, Viewport: v}
			res.Units++
			if err := loadsched.SafeLoad(context.Background(), u); err != nil {
				f := loadsched.FetchFailure{Unit: u, Err: err}
				res.Failures = append(res.Failures, f)
				log.FetchFailed(f)
				if b.OnFailure != nil {
					b.OnFailure(f)
				}
			}
		}
	}
	res.Elapsed = time.Since(start)
	if res.Units > 0 {
		log.CycleFinished(res)
	}

	b.Autoscaler.Apply(b.AllTracks(), frames)
	if lc, ok := surface.(LayoutChecker); ok {
		lc.CheckLayout()
	}
	surface.Redraw()
	return res
}
