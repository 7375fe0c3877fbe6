// internal/track/track.go
package track

import (
	"context"
	"fmt"

	"trackview/internal/genome"
)

// Track is a visual data series.
type Track interface {
	// ID is a stable identity used in logs and snapshots.
	ID() string
	// IsReadyToPaint reports whether data for v is resident. Must be fast and
	// free of side effects.
	IsReadyToPaint(v genome.Viewport) bool
	// Load fetches data for v. It may block on I/O. Calling it again for a
	// viewport that is already loaded must be cheap.
	Load(ctx context.Context, v genome.Viewport) error
	// AutoscaleGroup names the autoscale group of the track, "" for none.
	AutoscaleGroup() string
}

// Range is a display value range.
type Range struct {
	Min, Max float64
}

// Scalable is implemented by tracks that take part in autoscaling.
type Scalable interface {
	Track
	// Autoscale reports whether the track rescales on its own when ungrouped.
	Autoscale() bool
	// InViewRange is the value range of the resident data for v.
	InViewRange(v genome.Viewport) (Range, bool)
	SetDataRange(Range)
	DataRange() Range
}

// LoadUnit is a (track, viewport) pair that needs a fetch.
type LoadUnit struct {
	Track    Track
	Viewport genome.Viewport
}

func (u LoadUnit) String() string {
	return fmt.Sprintf("%s@%s", u.Track.ID(), u.Viewport)
}
