package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// converterFlags holds flags that select and tune the PDF engine.
type converterFlags struct {
	engine  string
	binary  string
	timeout string
	workDir string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	converter converterFlags
	addr      string
	workers   int
	logLevel  string
	logFormat string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	converter converterFlags
	output    string
	html      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addConverterFlags adds PDF engine flags to a FlagSet.
func addConverterFlags(fs *flag.FlagSet, f *converterFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: html2pdf, chrome, native")
	fs.StringVar(&f.binary, "binary", "", "html2pdf executable name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.workDir, "work-dir", "", "directory for transient files")
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 0.0.0.0:3000)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent conversions (0 = auto)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)

	fs.Usage = func() { printServeUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (\"-\" = stdout)")
	fs.BoolVar(&f.html, "html", false, "write the HTML page instead of the PDF")
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)

	fs.Usage = func() { printRenderUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse keeps flag.ErrHelp intact and marks other errors as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
