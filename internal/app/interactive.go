package app

import (
	"context"
	"fmt"
	"io"

	"trackview/internal/loadsched"
	"trackview/internal/tui"
)

// RunInteractive opens the terminal browser. Logs go to --log-file only,
// the terminal belongs to the UI.
func RunInteractive(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, code, done := parseOrExit("trackview", "terminal genome track browser", argv, false, stdout, stderr)
	if done {
		return code
	}

	bridge := tui.NewBridge()
	s, err := openSession(opts, bridge, func(f loadsched.FetchFailure) { bridge.Fail(f) }, io.Discard)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return setupCode(err)
	}
	defer s.Close()

	if loci := startLoci(opts.Args, s.cfg); len(loci) > 0 {
		if err := s.b.Goto(loci...); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitUsage
		}
	}
	s.b.Attach(bridge)

	if err := tui.Run(ctx, s.b, bridge); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return ExitOK
}
