// internal/loadsched/units.go
package loadsched

import (
	"trackview/internal/genome"
	"trackview/internal/track"
)

// Units returns the load units for frames × tracks that are not ready to
// paint, ordered viewport-outer, track-inner.
func Units(frames []genome.Viewport, tracks []track.Track) []track.LoadUnit {
	var out []track.LoadUnit
	for _, v := range frames {
		for _, t := range tracks {
			if !t.IsReadyToPaint(v) {
				out = append(out, track.LoadUnit{Track: t, Viewport: v})
			}
		}
	}
	return out
}
