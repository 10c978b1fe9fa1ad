package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	out            string
	preset         string
	width          int
	height         int
	scale          int
	cropMode       string
	padding        int
	paddingMode    string
	scheme         string
	htmlOut        string
	omitBackground bool
	workers        int
	timeout        time.Duration
	verbose        bool
	listPresets    bool
	listSchemes    bool
	version        bool
}

// parseFlags parses args (excluding the program name) into cliFlags and
// returns the remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}
	fs := flag.NewFlagSet("diagram2png", flag.ContinueOnError)

	fs.StringVarP(&flags.out, "out", "o", "", "output PNG path (or directory in batch mode)")
	fs.StringVar(&flags.preset, "preset", "", "export preset name (see --list-presets)")
	fs.IntVar(&flags.width, "width", 0, "viewport width in CSS pixels")
	fs.IntVar(&flags.height, "height", 0, "viewport height in CSS pixels")
	fs.IntVar(&flags.scale, "scale", 0, "device scale factor")
	fs.StringVar(&flags.cropMode, "crop", "", "crop mode: none, safe, tight")
	fs.IntVar(&flags.padding, "padding", 0, "crop padding in CSS pixels")
	fs.StringVar(&flags.paddingMode, "padding-mode", "", "padding mode: none, minimal, comfortable")
	fs.StringVar(&flags.scheme, "scheme", "", "color scheme name or YAML file (overrides the document)")
	fs.StringVar(&flags.htmlOut, "html-out", "", "keep the rendered HTML at this path")
	fs.BoolVar(&flags.omitBackground, "omit-background", false, "render with a transparent background")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "max concurrent exports in batch mode (0 = auto)")
	fs.DurationVar(&flags.timeout, "timeout", 0, "per-export navigation timeout (0 = default)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&flags.listPresets, "list-presets", false, "list export presets and exit")
	fs.BoolVar(&flags.listSchemes, "list-schemes", false, "list built-in color schemes and exit")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: diagram2png [flags] <diagram.yaml | page.html | directory>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}
