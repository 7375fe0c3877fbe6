// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/sirkon/errors"

	"trackview/internal/cliutil"
	"trackview/internal/version"
)

// Options holds all CLI flags and arguments. Zero values mean "take it from
// the config file".
type Options struct {
	Config   string
	Genome   string
	Tracks   []string // FASTA files shown as GC tracks
	Group    string   // autoscale group for Tracks
	Bins     int
	Workers  int
	LogLevel string
	LogFile  string

	// Batch only
	Script string
	Indent bool

	// Interactive: loci; batch: at most one script path
	Args []string

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name, about string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: %s

Version: %s

Usage of %s:
`, name, about, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags. Flags may follow positionals.
func ParseArgs(fs *flag.FlagSet, argv []string, batch bool) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Config, "config", "", "TOML config file [$TRACKVIEW_CONFIG]")
	fs.StringVar(&opt.Genome, "genome", "", "FASTA file providing the contig table [first track]")
	var tracks stringSlice
	fs.Var(&tracks, "track", "FASTA file shown as a GC track (repeatable, globs allowed)")
	fs.StringVar(&opt.Group, "group", "", "autoscale group for --track tracks")
	fs.IntVar(&opt.Bins, "bins", 0, "bins per viewport for --track tracks [60]")
	fs.IntVar(&opt.Workers, "workers", 0, "concurrent track loads [config or 5]")
	fs.StringVar(&opt.LogLevel, "log-level", "", "quiet | warn | info | debug [config or warn]")
	fs.StringVar(&opt.LogFile, "log-file", "", "write log lines to this file")
	if batch {
		fs.StringVar(&opt.Script, "script", "", "batch script ('-' for stdin)")
		fs.BoolVar(&opt.Indent, "indent", false, "indent snapshot JSON [false]")
	}
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Args = posArgs

	expanded, err := cliutil.ExpandGlobs(tracks)
	if err != nil {
		return opt, err
	}
	opt.Tracks = expanded

	if opt.Workers < 0 {
		return opt, errors.New("--workers must be ≥ 0")
	}
	if opt.Bins < 0 {
		return opt, errors.New("--bins must be ≥ 0")
	}
	if batch {
		switch {
		case opt.Script != "" && len(opt.Args) > 0:
			return opt, errors.New("--script conflicts with a positional script")
		case opt.Script == "" && len(opt.Args) == 1:
			opt.Script = opt.Args[0]
		case opt.Script == "" && len(opt.Args) == 0:
			return opt, errors.New("provide a script path or --script")
		case len(opt.Args) > 1:
			return opt, errors.New("only one script may be given")
		}
		opt.Args = nil
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
