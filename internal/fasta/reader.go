// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/sirkon/errors"
)

// Contig is a named sequence and its length in bp.
type Contig struct {
	Name   string
	Length int
}

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return sc
}

// Index scans the whole file and returns its contigs in file order.
func Index(path string) ([]Contig, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "open fasta").Str("fasta-path", path)
	}
	defer rc.Close()

	var out []Contig
	sc := newScanner(rc)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			out = append(out, Contig{Name: parseHeaderID(line[1:])})
			continue
		}
		if len(out) == 0 {
			return nil, errors.New("sequence data before first header").Str("fasta-path", path)
		}
		out[len(out)-1].Length += len(bytes.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan fasta").Str("fasta-path", path)
	}
	return out, nil
}

// ReadRegion returns the upper-cased bases of chrom in [start, end), 0-based.
// The slice is clipped to the contig length. Cancellation is checked per line.
func ReadRegion(ctx context.Context, path, chrom string, start, end int) ([]byte, error) {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return nil, errors.New("empty region").Str("chromosome", chrom).Int("start", start).Int("end", end)
	}
	rc, err := openReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "open fasta").Str("fasta-path", path)
	}
	defer rc.Close()

	var (
		in    bool
		found bool
		pos   int
		out   = make([]byte, 0, end-start)
	)
	sc := newScanner(rc)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if in {
				break
			}
			in = parseHeaderID(line[1:]) == chrom
			found = found || in
			continue
		}
		if !in {
			continue
		}
		line = bytes.TrimSpace(line)
		lo, hi := pos, pos+len(line)
		pos = hi
		if hi <= start {
			continue
		}
		if lo >= end {
			break
		}
		from, to := 0, len(line)
		if lo < start {
			from = start - lo
		}
		if hi > end {
			to = end - lo
		}
		out = append(out, bytes.ToUpper(line[from:to])...)
		if hi >= end {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan fasta").Str("fasta-path", path)
	}
	if !found {
		return nil, errors.New("chromosome not found").Str("fasta-path", path).Str("chromosome", chrom)
	}
	return out, nil
}

func parseHeaderID(h []byte) string {
	f := bytes.Fields(h)
	if len(f) == 0 {
		return ""
	}
	return string(f[0])
}
