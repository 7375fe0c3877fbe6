// internal/repaint/iface.go
package repaint

import (
	"github.com/google/uuid"

	"trackview/internal/genome"
	"trackview/internal/loadsched"
	"trackview/internal/track"
)

// Surface is a redraw target. Redraw paints whatever data is resident.
type Surface interface {
	Redraw()
}

// BusyIndicator is an optional Surface extension shown while a cycle loads.
// The returned func removes the indicator.
type BusyIndicator interface {
	ShowBusy() (done func())
}

// LayoutChecker is an optional Surface extension run after autoscale, before
// the redraw, e.g. to account for track heights changed by new data.
type LayoutChecker interface {
	CheckLayout()
}

// Autoscaler recomputes value ranges over the full track set.
type Autoscaler interface {
	Apply(tracks []track.Track, frames []genome.Viewport)
}

// Dispatcher runs load units concurrently and reports once per cycle.
type Dispatcher interface {
	Dispatch(id uuid.UUID, units []track.LoadUnit, done func(loadsched.Result))
}

// Poster runs fn on the interactive thread.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a func to Poster.
type PosterFunc func(fn func())

func (p PosterFunc) Post(fn func()) { p(fn) }

// Inline runs posted funcs in the calling goroutine. Used in tests and by
// hosts without a dedicated UI goroutine.
var Inline Poster = PosterFunc(func(fn func()) { fn() })

var (
	_ Dispatcher = (*loadsched.Scheduler)(nil)
)
