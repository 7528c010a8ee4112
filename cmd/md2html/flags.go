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

// styleFlags holds stylesheet and asset flags.
type styleFlags struct {
	style     string // built-in name or path to a CSS file
	css       string // extra CSS file appended after the style
	assetPath string // custom asset directory
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title    string
	disabled bool
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	enabled bool
	style   string
}

// convertFlags holds all flags for a conversion run.
type convertFlags struct {
	common       commonFlags
	output       string
	title        string
	workers      int
	rewriteLinks bool
	style        styleFlags
	toc          tocFlags
	highlight    highlightFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file details and timing")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "built-in style name or CSS file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.enabled, "highlight", false, "highlight tagged code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for --highlight")
}

// newFlagSet creates a FlagSet that reports errors to the caller instead of
// printing them. Help requests surface as flag.ErrHelp.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseError wraps flag parse errors as usage errors. flag.ErrHelp is
// returned unchanged.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// newConvertFlagSet registers every conversion flag on a new FlagSet.
// Parsing and shell completion share it.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := newFlagSet("md2html")

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.title, "title", "T", "", "document title (default: file name)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.rewriteLinks, "rewrite-links", false, "rewrite links to .md files as .html")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addTOCFlags(fs, &f.toc)
	addHighlightFlags(fs, &f.highlight)

	return fs
}

// newConfigFlagSet registers the config command flags on a new FlagSet.
func newConfigFlagSet(f *commonFlags) *flag.FlagSet {
	fs := newFlagSet("config")
	addCommonFlags(fs, f)
	return fs
}

// parseConvertFlags parses conversion flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}

	return f, fs.Args(), nil
}

// parseConfigFlags parses flags for the config command.
func parseConfigFlags(args []string) (*commonFlags, error) {
	f := &commonFlags{}
	fs := newConfigFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, parseError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: config takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}
