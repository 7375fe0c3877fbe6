// Package repaint coordinates data loading and redraws.
//
// A Coordinator is the single serialization point for repaint intent. It is
// either idle or loading one cycle. Requests that arrive while loading do not
// start a second cycle: the surface is redrawn with resident data and the
// request is parked as the pending one, replacing any older pending request.
// When the cycle completes the coordinator autoscales over the whole track
// set, redraws, goes idle and re-issues the pending request.
//
// In batch mode the same pipeline runs synchronously through BatchExecutor.
package repaint
