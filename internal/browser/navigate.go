package browser

import (
	"github.com/sirkon/errors"

	"trackview/internal/genome"
)

// Goto replaces the frames with one viewport per locus (split view when
// more than one) and repaints.
func (b *Browser) Goto(loci ...string) error {
	if len(loci) == 0 {
		return errors.New("no locus given")
	}
	vs := make([]genome.Viewport, 0, len(loci))
	for _, l := range loci {
		v, err := genome.ParseLocus(l, b.contigs)
		if err != nil {
			return err
		}
		vs = append(vs, v)
	}
	b.frames.Set(vs...)
	b.Repaint()
	return nil
}

// Split appends a panel showing the window right after the last frame.
func (b *Browser) Split() {
	vs := b.frames.Snapshot()
	last := vs[len(vs)-1]
	c, _ := b.contigs.Lookup(last.Chromosome)
	next := last.Pan(c, last.Width())
	next.Name = next.String()
	b.frames.Set(append(vs, next)...)
	b.Repaint()
}

// Unsplit keeps only the first frame.
func (b *Browser) Unsplit() {
	vs := b.frames.Snapshot()
	if len(vs) < 2 {
		return
	}
	b.frames.Set(vs[0])
	b.Repaint()
}

// Pan shifts every frame by fraction of its width (negative pans left).
func (b *Browser) Pan(fraction float64) {
	b.frames.Update(func(v genome.Viewport) genome.Viewport {
		c, _ := b.contigs.Lookup(v.Chromosome)
		return v.Pan(c, int(float64(v.Width())*fraction))
	})
	b.Repaint()
}

// Zoom scales every frame around its center; factor > 1 zooms in.
func (b *Browser) Zoom(factor float64) {
	b.frames.Update(func(v genome.Viewport) genome.Viewport {
		c, _ := b.contigs.Lookup(v.Chromosome)
		return v.Zoom(c, factor)
	})
	b.Repaint()
}
