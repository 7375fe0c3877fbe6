// internal/loadsched/errors.go
package loadsched

import (
	"fmt"

	"github.com/sirkon/errors"

	"trackview/internal/track"
)

// ErrClosed is reported for units that could not be dispatched because the
// scheduler was closed.
var ErrClosed error = errors.New("load scheduler closed")

// FetchFailure is a failed load unit. It never aborts the cycle.
type FetchFailure struct {
	Unit track.LoadUnit
	Err  error
}

func (f FetchFailure) Error() string {
	return fmt.Sprintf("load %s: %v", f.Unit, f.Err)
}

func (f FetchFailure) Unwrap() error { return f.Err }
