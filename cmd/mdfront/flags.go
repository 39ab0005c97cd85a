package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Processing modes.
const (
	modeParse   = "parse"
	modeHTML    = "html"
	modeCompile = "compile"
	modeCheck   = "check"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputs    = errors.New("usage: mdfront [flags] <input.md> [more.md ...]")
	ErrInvalidMode = errors.New("invalid mode (expected parse, html, compile, or check)")
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	mode    string
	config  string
	outDir  string
	workers int
	verbose bool
	version bool
}

// parseFlags parses args into flags and positional input paths.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdfront", flag.ContinueOnError)

	flags := &cliFlags{}
	fs.StringVarP(&flags.mode, "mode", "m", modeHTML, "processing mode: parse, html, compile, check")
	fs.StringVarP(&flags.config, "config", "c", "", "pipeline config name or path")
	fs.StringVarP(&flags.outDir, "out", "o", "", "output directory (default: next to each input)")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel workers for batch input (0 = NumCPU)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress to stderr")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	if !flags.version {
		switch flags.mode {
		case modeParse, modeHTML, modeCompile, modeCheck:
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidMode, flags.mode)
		}
		if fs.NArg() == 0 {
			return nil, nil, ErrNoInputs
		}
	}

	return flags, fs.Args(), nil
}
