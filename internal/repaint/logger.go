// internal/repaint/logger.go
package repaint

import (
	"github.com/google/uuid"

	"trackview/internal/loadsched"
)

// Logger receives the events of the repaint core. Implementations decide
// levels and destinations.
type Logger interface {
	// CycleStarted a load cycle of n units was dispatched.
	CycleStarted(cycle uuid.UUID, units int)
	// CycleFinished every unit of the cycle is done.
	CycleFinished(res loadsched.Result)
	// RequestCoalesced a request arrived while loading and was parked;
	// replaced tells whether an older pending request was discarded.
	RequestCoalesced(cycle uuid.UUID, tracks int, replaced bool)
	// FetchFailed one unit failed. Called exactly once per failure.
	FetchFailed(f loadsched.FetchFailure)
	// Misuse a request was rejected as inconsistent.
	Misuse(err error)
}

// NopLogger drops everything.
type NopLogger struct{}

func (NopLogger) CycleStarted(uuid.UUID, int)           {}
func (NopLogger) CycleFinished(loadsched.Result)        {}
func (NopLogger) RequestCoalesced(uuid.UUID, int, bool) {}
func (NopLogger) FetchFailed(loadsched.FetchFailure)    {}
func (NopLogger) Misuse(error)                          {}
