// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"trackview/internal/loadsched"
)

// Level filters TextLogger output.
type Level int

const (
	LevelQuiet Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps quiet|warn|info|debug to a Level; unknown names are warn.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "off", "none":
		return LevelQuiet
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelWarn
	}
}

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// TextLogger writes repaint events as prefixed lines.
type TextLogger struct {
	mu    sync.Mutex
	dst   io.Writer
	level Level
}

func NewTextLogger(dst io.Writer, level Level) *TextLogger {
	return &TextLogger{dst: dst, level: level}
}

func (l *TextLogger) printf(at Level, prefix, format string, a ...any) {
	if l.level < at {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if at == LevelWarn {
		Warnf(l.dst, false, format, a...)
		return
	}
	_, _ = fmt.Fprintf(l.dst, prefix+format+"\n", a...)
}

func (l *TextLogger) CycleStarted(cycle uuid.UUID, units int) {
	l.printf(LevelDebug, "DEBUG: ", "cycle %s: loading %d unit(s)", cycle, units)
}

func (l *TextLogger) CycleFinished(res loadsched.Result) {
	l.printf(LevelInfo, "INFO: ", "cycle %s: %d unit(s), %d failed, %s", res.Cycle, res.Units, len(res.Failures), res.Elapsed.Round(1e6))
}

func (l *TextLogger) RequestCoalesced(cycle uuid.UUID, tracks int, replaced bool) {
	l.printf(LevelDebug, "DEBUG: ", "cycle %s busy: parked request for %d track(s), replaced=%t", cycle, tracks, replaced)
}

func (l *TextLogger) FetchFailed(f loadsched.FetchFailure) {
	l.printf(LevelWarn, "", "%v", f)
}

func (l *TextLogger) Misuse(err error) {
	l.printf(LevelWarn, "", "ignored repaint request: %v", err)
}
