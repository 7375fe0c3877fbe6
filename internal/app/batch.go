package app

import (
	"context"
	stderrs "errors"
	"fmt"
	"io"
	"os"

	"trackview/internal/batchscript"
	"trackview/internal/repaint"
)

// stdin is read when the script is "-".
var stdin io.Reader = os.Stdin

// RunBatch executes a trackview script headlessly; snapshots go to stdout.
func RunBatch(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, code, done := parseOrExit("trackview-batch", "headless track browser scripts", argv, true, stdout, stderr)
	if done {
		return code
	}

	script := stdin
	if opts.Script != "-" {
		f, err := os.Open(opts.Script)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		defer f.Close()
		script = f
	}

	s, err := openSession(opts, repaint.Inline, nil, stderr)
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

	r := batchscript.New(s.b, batchscript.Options{Messages: stderr, Indent: opts.Indent})
	if err := r.Run(ctx, script, stdout); err != nil {
		if stderrs.Is(err, context.Canceled) {
			return ExitCancel
		}
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return ExitOK
}
