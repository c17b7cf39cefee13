package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// titleFlags override fields of the outline's title slide.
type titleFlags struct {
	title  string
	author string
	date   string
	logo   string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	title   titleFlags
	output  string
	workers int
	strict  bool
}

// handoutFlags holds all flags for the handout command.
type handoutFlags struct {
	common        commonFlags
	title         titleFlags
	output        string
	format        string
	style         string
	assetPath     string
	timeout       string
	includeSource bool
	noFooter      bool
	strict        bool
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	common   commonFlags
	title    titleFlags
	output   string
	debounce string
	strict   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show skipped sections and timings")
}

// addTitleFlags adds title slide override flags to a FlagSet.
func addTitleFlags(fs *flag.FlagSet, f *titleFlags) {
	fs.StringVar(&f.title, "title", "", "override the title slide title")
	fs.StringVar(&f.author, "author", "", "override the title slide author")
	fs.StringVar(&f.date, "date", "", "override the title slide date (literal, auto, auto:FORMAT)")
	fs.StringVar(&f.logo, "logo", "", "override the title slide logo path")
}

// newFlagSet builds a FlagSet that reports to w instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args, turning parse failures into ErrUsage.
// flag.ErrHelp is returned as is so callers can exit cleanly.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown section tags")
	addCommonFlags(fs, &f.common)
	addTitleFlags(fs, &f.title)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseHandoutFlags parses handout command flags and returns positional args.
func parseHandoutFlags(args []string, w io.Writer) (*handoutFlags, []string, error) {
	f := &handoutFlags{}
	fs := newFlagSet("handout", w, printHandoutUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringVarP(&f.format, "format", "f", "", "handout format: md, html, pdf (default pdf)")
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF printing timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.includeSource, "include-source", false, "append the LaTeX source")
	fs.BoolVar(&f.noFooter, "no-footer", false, "omit the generated-on footer")
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown section tags")
	addCommonFlags(fs, &f.common)
	addTitleFlags(fs, &f.title)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, w io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	fs := newFlagSet("watch", w, printWatchUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output .tex file (required)")
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before re-rendering (e.g., 300ms)")
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown section tags")
	addCommonFlags(fs, &f.common)
	addTitleFlags(fs, &f.title)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (jsonOutput bool, err error) {
	fs := newFlagSet("doctor", w, printDoctorUsage)
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")

	if err := parseFlagSet(fs, args); err != nil {
		return false, err
	}
	return jsonOutput, nil
}
