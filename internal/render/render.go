// Package render turns the browser state into output: the stable snapshot
// schema used by batch scripts and the plain text layout drawn by the TUI.
package render

import (
	"fmt"
	"math"
	"strings"

	"trackview/internal/genome"
	"trackview/internal/track"
	"trackview/pkg/api"
)

// valued is implemented by tracks exposing binned values per viewport.
type valued interface {
	Values(v genome.Viewport) ([]float64, bool)
}

// Snapshot captures what a redraw of panels over frames would show.
// Hidden tracks are left out.
func Snapshot(label string, frames []genome.Viewport, panels []track.Panel) api.FrameV1 {
	out := api.FrameV1{
		Label:     label,
		Viewports: make([]api.ViewportV1, len(frames)),
		Tracks:    []api.TrackV1{},
	}
	for i, v := range frames {
		out.Viewports[i] = api.ViewportV1{Name: v.Name, Chromosome: v.Chromosome, Start: v.Start, End: v.End, Zoom: v.ZoomLevel}
	}
	for i := range panels {
		for _, t := range panels[i].Visible() {
			rng := rangeOf(t)
			tv := api.TrackV1{
				ID:      t.ID(),
				Panel:   panels[i].Name,
				Group:   t.AutoscaleGroup(),
				Min:     rng.Min,
				Max:     rng.Max,
				Windows: make([]api.WindowV1, len(frames)),
			}
			for j, v := range frames {
				w := api.WindowV1{Locus: v.String(), Ready: t.IsReadyToPaint(v)}
				if vt, ok := t.(valued); ok && w.Ready {
					w.Values, _ = vt.Values(v)
				}
				tv.Windows[j] = w
			}
			out.Tracks = append(out.Tracks, tv)
		}
	}
	return out
}

func rangeOf(t track.Track) track.Range {
	if s, ok := t.(track.Scalable); ok {
		return s.DataRange()
	}
	return track.Range{Min: 0, Max: 1}
}

var blocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values scaled to rng as width block glyphs. Values are
// resampled by nearest bin; no data renders as dots.
func Sparkline(values []float64, rng track.Range, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("·", width)
	}
	span := rng.Max - rng.Min
	var sb strings.Builder
	for i := 0; i < width; i++ {
		x := values[i*len(values)/width]
		f := 0.0
		if span > 0 {
			f = (x - rng.Min) / span
		}
		f = math.Max(0, math.Min(1, f))
		sb.WriteRune(blocks[int(math.Round(f*float64(len(blocks)-1)))])
	}
	return sb.String()
}

const labelWidth = 12

// Text lays panels out as rows of sparklines, one column per frame.
func Text(frames []genome.Viewport, panels []track.Panel, width int) string {
	if len(frames) == 0 {
		return ""
	}
	col := (width - labelWidth) / len(frames)
	if col < 4 {
		col = 4
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth))
	for _, v := range frames {
		fmt.Fprintf(&sb, "%-*s", col, clip(v.String(), col-1))
	}
	sb.WriteByte('\n')

	for i := range panels {
		fmt.Fprintf(&sb, "[%s]\n", panels[i].Name)
		for _, t := range panels[i].Visible() {
			rng := rangeOf(t)
			fmt.Fprintf(&sb, "%-*s", labelWidth, clip(t.ID(), labelWidth-1))
			for _, v := range frames {
				var vals []float64
				if vt, ok := t.(valued); ok {
					vals, _ = vt.Values(v)
				}
				sb.WriteString(Sparkline(vals, rng, col-1))
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.2f-%.2f\n", rng.Min, rng.Max)
		}
	}
	return sb.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
