// Package batchscript runs headless browser scripts. A script is a list of
// line commands; every repaint it causes is synchronous, so a snapshot taken
// after a command sees all of that command's data.
//
//	load <fasta> [name=..] [group=..] [bins=..] [panel=..] [autoscale=true]
//	goto <locus> [<locus>...]
//	zoomin | zoomout
//	pan <fraction>
//	group <track> <group>
//	hide <track> | show <track>
//	repaint
//	snapshot [label]
//	echo [text]
//	exit
//
// Blank lines and lines starting with # are skipped.
package batchscript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sirkon/errors"

	"trackview/internal/browser"
	"trackview/internal/jsonlutil"
	"trackview/internal/render"
	"trackview/internal/runmode"
	"trackview/internal/track"
	"trackview/pkg/api"
)

// Runner executes scripts against one browser. It is the browser's surface.
type Runner struct {
	b      *browser.Browser
	msg    io.Writer
	indent bool

	redraws atomic.Int64
	frames  chan<- api.FrameV1
}

// Options tune a Runner.
type Options struct {
	// Messages receives echo output; nil discards it.
	Messages io.Writer
	// Indent pretty-prints snapshots instead of one JSON object per line.
	Indent bool
}

// New attaches a runner to b.
func New(b *browser.Browser, opts Options) *Runner {
	if opts.Messages == nil {
		opts.Messages = io.Discard
	}
	r := &Runner{b: b, msg: opts.Messages, indent: opts.Indent}
	b.Attach(r)
	return r
}

// Redraw counts surface repaints.
func (r *Runner) Redraw() { r.redraws.Add(1) }

// Redraws is the number of repaints so far.
func (r *Runner) Redraws() int64 { return r.redraws.Load() }

// Run executes script in batch mode, writing snapshots to out. It repaints
// the browser once before the first command. It stops at the first failing
// command, at exit, or when ctx is done.
func (r *Runner) Run(ctx context.Context, script io.Reader, out io.Writer) (err error) {
	restore := runmode.EnterBatch()
	defer restore()

	frames, done := jsonlutil.Start[api.FrameV1](out, 4, r.indent)
	r.frames = frames
	defer func() {
		close(frames)
		r.frames = nil
		if werr := <-done; werr != nil && err == nil {
			err = errors.Wrap(werr, "write snapshots")
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	// Tracks and loci set up before the script are loaded now, so the
	// first command already sees resident data.
	r.b.Repaint()

	sc := bufio.NewScanner(script)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stop, err := r.exec(line)
		if err != nil {
			return errors.Wrap(err, "run script").Int("line", n).Str("command", line)
		}
		if stop {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "read script")
	}
	return nil
}

func (r *Runner) exec(line string) (stop bool, err error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(cmd) {
	case "load":
		return false, r.load(args)
	case "goto":
		return false, r.b.Goto(args...)
	case "zoomin":
		r.b.Zoom(2)
	case "zoomout":
		r.b.Zoom(0.5)
	case "pan":
		if len(args) != 1 {
			return false, errors.New("usage: pan <fraction>")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return false, errors.Wrap(err, "parse pan fraction")
		}
		r.b.Pan(f)
	case "group":
		switch len(args) {
		case 1:
			return false, r.b.SetGroup(args[0], "")
		case 2:
			return false, r.b.SetGroup(args[0], args[1])
		}
		return false, errors.New("usage: group <track> [<group>]")
	case "hide", "show":
		if len(args) != 1 {
			return false, errors.Newf("usage: %s <track>", cmd)
		}
		return false, r.b.SetHidden(args[0], cmd == "hide")
	case "repaint":
		r.b.Repaint()
	case "snapshot":
		r.frames <- render.Snapshot(rest, r.b.Frames(), r.b.Panels())
	case "echo":
		if rest == "" {
			rest = "echo"
		}
		_, _ = fmt.Fprintln(r.msg, rest)
	case "exit":
		return true, nil
	default:
		return false, errors.New("unknown command").Str("command", cmd)
	}
	return false, nil
}

func (r *Runner) load(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: load <fasta> [name=..] [group=..] [bins=..] [panel=..] [autoscale=true]")
	}
	cfg := track.GCConfig{Fasta: args[0]}
	panel := ""
	for _, kv := range args[1:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.New("expected key=value").Str("argument", kv)
		}
		switch k {
		case "name":
			cfg.Name = v
		case "group":
			cfg.Group = v
		case "panel":
			panel = v
		case "bins":
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return errors.New("bins must be a positive integer").Str("bins", v)
			}
			cfg.Bins = n
		case "autoscale":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrap(err, "parse autoscale")
			}
			cfg.Autoscale = b
		default:
			return errors.New("unknown load option").Str("option", k)
		}
	}
	return r.b.AddTrack(panel, track.NewGCTrack(cfg))
}
