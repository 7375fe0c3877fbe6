// Package runmode holds the process-wide batch flag. The batch runner sets
// it around script execution; the repaint core only reads it.
package runmode

import "sync/atomic"

var batch atomic.Bool

// IsBatch reports whether a batch script is running.
func IsBatch() bool { return batch.Load() }

// EnterBatch turns batch mode on and returns a func restoring the previous value.
func EnterBatch() (restore func()) {
	prev := batch.Swap(true)
	return func() { batch.Store(prev) }
}
