// internal/track/visible.go
package track

// Panel is an ordered group of tracks shown together.
type Panel struct {
	Name   string
	Tracks []Track
	Hidden map[string]bool // by track ID
}

// Visible returns the tracks of the panel that are not hidden, in order.
func (p *Panel) Visible() []Track {
	out := make([]Track, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		if !p.Hidden[t.ID()] {
			out = append(out, t)
		}
	}
	return out
}
