// internal/genome/locus.go
package genome

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sirkon/errors"
)

// Contig is a chromosome name and its length in bp.
type Contig struct {
	Name   string
	Length int
}

// Contigs is the chromosome table of the loaded genome, in file order.
type Contigs []Contig

// Lookup finds a contig by name.
func (cs Contigs) Lookup(name string) (Contig, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	return Contig{}, false
}

// Closest returns the contig name with the smallest edit distance to name,
// if that distance is at most 3.
func (cs Contigs) Closest(name string) (string, bool) {
	best, bestD := "", 4
	for _, c := range cs {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c.Name)); d < bestD {
			best, bestD = c.Name, d
		}
	}
	return best, best != ""
}

// pointWindow is the width shown around a single-position locus.
const pointWindow = 100

// ParseLocus parses "chr", "chr:pos" or "chr:start-end" (1-based, inclusive,
// thousands separators allowed) into a viewport named after the input.
func ParseLocus(s string, cs Contigs) (Viewport, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Viewport{}, errors.New("empty locus")
	}
	chrom, rng, hasRange := strings.Cut(s, ":")
	c, ok := cs.Lookup(chrom)
	if !ok {
		if alt, ok := cs.Closest(chrom); ok {
			return Viewport{}, errors.New("unknown chromosome").Str("chromosome", chrom).Str("did-you-mean", alt)
		}
		return Viewport{}, errors.New("unknown chromosome").Str("chromosome", chrom)
	}
	if !hasRange {
		return NewViewport(s, c, 0, c.Length), nil
	}

	rng = strings.ReplaceAll(rng, ",", "")
	from, to, isSpan := strings.Cut(rng, "-")
	start, err := strconv.Atoi(from)
	if err != nil {
		return Viewport{}, errors.Wrap(err, "parse locus start").Str("locus", s)
	}
	if !isSpan {
		center := start - 1
		return NewViewport(s, c, center-pointWindow/2, center+pointWindow/2), nil
	}
	end, err := strconv.Atoi(to)
	if err != nil {
		return Viewport{}, errors.Wrap(err, "parse locus end").Str("locus", s)
	}
	if end < start {
		return Viewport{}, errors.New("locus end before start").Str("locus", s)
	}
	return NewViewport(s, c, start-1, end), nil
}
