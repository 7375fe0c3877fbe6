// pkg/api/frame_v1.go
package api

// FrameV1 is the stable JSON/JSONL schema of one redraw: what every track
// shows in every viewport. Keep fields, names, and types stable. Add new
// fields only with ",omitempty".
type FrameV1 struct {
	Label     string       `json:"label,omitempty"`
	Viewports []ViewportV1 `json:"viewports"`
	Tracks    []TrackV1    `json:"tracks"`
}

// ViewportV1 is one split panel. Start is 0-based, End exclusive.
type ViewportV1 struct {
	Name       string `json:"name,omitempty"`
	Chromosome string `json:"chrom"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Zoom       int    `json:"zoom"`
}

// TrackV1 is one track with its display range and per-viewport data.
type TrackV1 struct {
	ID      string     `json:"id"`
	Panel   string     `json:"panel,omitempty"`
	Group   string     `json:"group,omitempty"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Windows []WindowV1 `json:"windows"`
}

// WindowV1 is the data of a track in one viewport, in viewport order.
type WindowV1 struct {
	Locus  string    `json:"locus"`
	Ready  bool      `json:"ready"`
	Values []float64 `json:"values,omitempty"`
}
