// internal/repaint/state.go
package repaint

import (
	"github.com/google/uuid"

	"trackview/internal/track"
)

// Request is one unit of repaint intent.
type Request struct {
	Surface Surface
	Tracks  []track.Track
}

// state is idleState or *loadingState. A pending request only exists inside
// loadingState.
type state interface {
	isState()
}

type idleState struct{}

type loadingState struct {
	cycle   uuid.UUID
	pending *Request
}

func (idleState) isState()     {}
func (*loadingState) isState() {}
