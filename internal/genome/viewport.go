// Package genome holds the coordinate model shared by tracks and the repaint
// core: viewports (one per split panel), the ordered frame sequence and the
// contig table used to validate and clamp loci.
package genome

import (
	"fmt"
	"math"
)

// Viewport is a visible genomic window. Coordinates are 0-based, half-open.
// A Viewport value is never mutated; navigation produces a new value.
type Viewport struct {
	Chromosome string
	Start      int
	End        int
	ZoomLevel  int
	Name       string
}

// Width returns the window size in bp.
func (v Viewport) Width() int { return v.End - v.Start }

// Key identifies the data window of v. Name is not part of it: two panels
// showing the same region share loaded data.
func (v Viewport) Key() string {
	return fmt.Sprintf("%s:%d-%d@%d", v.Chromosome, v.Start, v.End, v.ZoomLevel)
}

// String renders v as a 1-based inclusive locus, e.g. chr1:101-200.
func (v Viewport) String() string {
	return fmt.Sprintf("%s:%d-%d", v.Chromosome, v.Start+1, v.End)
}

// ZoomFor returns floor(log2(chromLen/width)), never negative.
func ZoomFor(width, chromLen int) int {
	if width <= 0 || chromLen <= width {
		return 0
	}
	return int(math.Floor(math.Log2(float64(chromLen) / float64(width))))
}

// NewViewport builds a viewport clamped to [0, chromLen).
func NewViewport(name string, c Contig, start, end int) Viewport {
	if c.Length <= 0 {
		return Viewport{Chromosome: c.Name, Name: name}
	}
	if start < 0 {
		start = 0
	}
	if end > c.Length {
		end = c.Length
	}
	if end <= start {
		end = start + 1
		if end > c.Length {
			start, end = c.Length-1, c.Length
		}
	}
	return Viewport{
		Chromosome: c.Name,
		Start:      start,
		End:        end,
		ZoomLevel:  ZoomFor(end-start, c.Length),
		Name:       name,
	}
}

// Pan shifts v by delta bp, keeping its width, clamped to the contig.
func (v Viewport) Pan(c Contig, delta int) Viewport {
	w := v.Width()
	start := v.Start + delta
	if start+w > c.Length {
		start = c.Length - w
	}
	if start < 0 {
		start = 0
	}
	return NewViewport(v.Name, c, start, start+w)
}

// Zoom scales the width of v by 1/factor around its center (factor > 1 zooms in).
func (v Viewport) Zoom(c Contig, factor float64) Viewport {
	if factor <= 0 {
		return v
	}
	w := int(math.Round(float64(v.Width()) / factor))
	if w < 1 {
		w = 1
	}
	mid := v.Start + v.Width()/2
	return NewViewport(v.Name, c, mid-w/2, mid-w/2+w)
}
