package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/logger"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// Sentinel errors for the render command.
var (
	ErrNoInput          = errors.New("no invoice file specified")
	ErrReadInvoice      = errors.New("failed to read invoice file")
	ErrInvalidInvoice   = errors.New("invalid invoice file")
	ErrInvalidExtension = errors.New("invoice file must have .json, .yaml or .yml extension")
	ErrWriteOutput      = errors.New("failed to write output file")
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// stdoutPath makes render write to standard output.
const stdoutPath = "-"

// runRender converts one invoice file to PDF, or to HTML with --html.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	switch len(positional) {
	case 0:
		return ErrNoInput
	case 1:
	default:
		return fmt.Errorf("%w: render takes one invoice file, got %d", ErrUsage, len(positional))
	}
	inputPath := positional[0]

	if err := validateInvoiceExtension(inputPath); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeConverterFlags(flags.converter, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inv, err := readInvoice(inputPath)
	if err != nil {
		return err
	}

	level := "warn"
	if flags.common.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.Log.Format}, env.Stderr)

	conv, err := invoice2pdf.NewConverter(converterOptions(cfg, log)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := time.Now()
	var out []byte
	if flags.html {
		out, err = conv.RenderHTML(ctx, inv)
	} else {
		var result *invoice2pdf.ConvertResult
		result, err = conv.Convert(ctx, inv)
		if result != nil {
			out = result.PDF
		}
	}
	if err != nil {
		return withHint(err, cfg)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, flags.html)
	}
	if err := writeOutput(outputPath, out, env); err != nil {
		return err
	}

	if outputPath != stdoutPath && !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %d bytes)\n", inputPath, outputPath, time.Since(start).Round(time.Millisecond), len(out))
		} else {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", inputPath, outputPath)
		}
	}
	return nil
}

// validateInvoiceExtension accepts JSON and YAML invoice files.
func validateInvoiceExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
}

// readInvoice decodes a JSON or YAML invoice. JSON is valid YAML, so one
// decoder serves both.
func readInvoice(path string) (invoice2pdf.Invoice, error) {
	var inv invoice2pdf.Invoice

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided CLI input
	if err != nil {
		return inv, fmt.Errorf("%w: %w", ErrReadInvoice, err)
	}
	if err := yamlutil.Unmarshal(data, &inv); err != nil {
		return inv, fmt.Errorf("%w: %s: %v", ErrInvalidInvoice, path, err)
	}
	return inv, nil
}

// defaultOutputPath swaps the input extension for .pdf, or .html.
func defaultOutputPath(inputPath string, html bool) string {
	ext := ".pdf"
	if html {
		ext = ".html"
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}

func writeOutput(path string, data []byte, env *Environment) error {
	if path == stdoutPath {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
