// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"syscall"
)

// Reuse a 64 KiB buffered writer across streams to avoid per-stream mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// IsBrokenPipe reports whether err is a broken or closed pipe, e.g. when a
// downstream `head` exits early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Start spins up a goroutine writing every value sent on the returned
// channel as one JSON line to out. Output is flushed whenever the channel
// is drained. Close the channel and read the error channel to finish.
// After the first write error the goroutine keeps draining so senders never
// block; broken pipes are not reported.
func Start[T any](out io.Writer, bufSize int, indent bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		if indent {
			enc.SetIndent("", "  ")
		}

		var werr error
		for v := range in {
			if werr != nil {
				continue
			}
			werr = enc.Encode(v)
			if werr == nil && len(in) == 0 {
				werr = bw.Flush()
			}
		}
		if werr == nil {
			werr = bw.Flush()
		}
		if IsBrokenPipe(werr) {
			werr = nil
		}
		done <- werr
	}()

	return in, done
}
