// Package autoscale recomputes display ranges over the whole track set.
//
// Grouped tracks share one range: the union of the in-view ranges of every
// member over every frame. That is why Apply must only run once all data of
// a cycle is resident.
package autoscale

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"trackview/internal/genome"
	"trackview/internal/track"
)

// Engine is stateless; the zero value is ready to use.
type Engine struct{}

// Apply sets the data range of every scalable track in tracks.
// Tracks with no resident data in any frame keep their previous range.
func (Engine) Apply(tracks []track.Track, frames []genome.Viewport) {
	groups := map[string][]track.Scalable{}
	for _, t := range tracks {
		s, ok := t.(track.Scalable)
		if !ok {
			continue
		}
		if g := s.AutoscaleGroup(); g != "" {
			groups[g] = append(groups[g], s)
			continue
		}
		if s.Autoscale() {
			if r, ok := inView(frames, s); ok {
				s.SetDataRange(r)
			}
		}
	}

	names := maps.Keys(groups)
	slices.Sort(names)
	for _, g := range names {
		members := groups[g]
		r, ok := inView(frames, members...)
		if !ok {
			continue
		}
		for _, s := range members {
			s.SetDataRange(r)
		}
	}
}

// inView unions the in-view ranges of ts over frames, widened to include 0
// and to a non-empty span.
func inView(frames []genome.Viewport, ts ...track.Scalable) (track.Range, bool) {
	var (
		out  track.Range
		seen bool
	)
	for _, t := range ts {
		for _, v := range frames {
			r, ok := t.InViewRange(v)
			if !ok {
				continue
			}
			if !seen {
				out, seen = r, true
				continue
			}
			out.Min = min(out.Min, r.Min)
			out.Max = max(out.Max, r.Max)
		}
	}
	if !seen {
		return track.Range{}, false
	}
	out.Min = min(out.Min, 0)
	out.Max = max(out.Max, 0)
	if out.Max <= out.Min {
		out.Max = out.Min + 1
	}
	return out, true
}
