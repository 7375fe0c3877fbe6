// internal/app/app.go
package app

import (
	"bufio"
	stderrs "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirkon/errors"

	"trackview/internal/browser"
	"trackview/internal/cli"
	"trackview/internal/cmdutil"
	"trackview/internal/config"
	"trackview/internal/jsonlutil"
	"trackview/internal/loadsched"
	"trackview/internal/repaint"
	"trackview/internal/track"
	"trackview/internal/version"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitUsage   = 2
	ExitRuntime = 3
	ExitCancel  = 130
)

// usageError marks setup errors caused by bad input rather than I/O.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// parseOrExit parses argv; when it returns done, code is final.
func parseOrExit(name, about string, argv []string, batch bool, stdout, stderr io.Writer) (opts cli.Options, code int, done bool) {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(name, about)
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv, batch)
	switch {
	case stderrs.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return opts, flush(outw, stderr, ExitOK), true
	case err != nil:
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return opts, flush(outw, stderr, ExitUsage), true
	case opts.Version:
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return opts, flush(outw, stderr, ExitOK), true
	}
	return opts, ExitOK, false
}

func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); err != nil && !jsonlutil.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return code
}

// session is a configured browser plus what must be released with it.
type session struct {
	b      *browser.Browser
	cfg    config.Config
	closer func()
}

func (s *session) Close() {
	s.b.Close()
	s.closer()
}

// openSession merges config file and flags, indexes the genome and builds
// the browser with every configured track. logDst is used when no log file
// is given.
func openSession(opts cli.Options, poster repaint.Poster, onFailure func(loadsched.FetchFailure), logDst io.Writer) (*session, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, usageError{err}
	}

	if opts.Workers > 0 {
		cfg.Scheduler.Workers = opts.Workers
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Genome != "" {
		cfg.Browser.Genome = opts.Genome
	}
	for _, fn := range opts.Tracks {
		cfg.Tracks = append(cfg.Tracks, config.TrackConfig{Fasta: fn, Group: opts.Group, Bins: opts.Bins})
	}
	if cfg.Browser.Genome == "" && len(cfg.Tracks) > 0 {
		cfg.Browser.Genome = cfg.Tracks[0].Fasta
	}
	if cfg.Browser.Genome == "" {
		return nil, usageError{errors.New("no genome: give --genome, --track or a config file")}
	}

	closer := func() {}
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file").Str("log-file", opts.LogFile)
		}
		logDst = f
		closer = func() { _ = f.Close() }
	}
	logger := cmdutil.NewTextLogger(logDst, cmdutil.ParseLevel(cfg.Log.Level))

	contigs, err := browser.ContigsFromFasta(cfg.Browser.Genome)
	if err != nil {
		closer()
		return nil, err
	}
	b, err := browser.New(browser.Config{
		Contigs:   contigs,
		Workers:   cfg.Scheduler.Workers,
		Queue:     cfg.Scheduler.Queue,
		Poster:    poster,
		Logger:    logger,
		OnFailure: onFailure,
	})
	if err != nil {
		closer()
		return nil, err
	}

	for _, tc := range cfg.Tracks {
		gc := track.NewGCTrack(track.GCConfig{
			Name:      tc.Name,
			Fasta:     tc.Fasta,
			Group:     tc.Group,
			Bins:      tc.Bins,
			Autoscale: tc.Autoscale,
		})
		if err := b.AddTrack("", gc); err != nil {
			b.Close()
			closer()
			return nil, usageError{err}
		}
	}
	return &session{b: b, cfg: cfg, closer: closer}, nil
}

// startLoci picks the initial frames: positional loci win over config.
func startLoci(args []string, cfg config.Config) []string {
	if len(args) > 0 {
		return args
	}
	if cfg.Browser.Locus == "" {
		return nil
	}
	return append([]string{cfg.Browser.Locus}, cfg.Browser.Split...)
}

func setupCode(err error) int {
	var ue usageError
	if stderrs.As(err, &ue) {
		return ExitUsage
	}
	return ExitRuntime
}
