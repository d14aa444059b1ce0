package invoice2pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/logger"
)

// html2pdfConverter shells out to the html2pdf command line tool.
type html2pdfConverter struct {
	binary  string
	workDir string
	runner  CommandRunner
	logger  *slog.Logger
}

func newHTML2PDFConverter(binary, workDir string, runner CommandRunner, log *slog.Logger) *html2pdfConverter {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &html2pdfConverter{
		binary:  binary,
		workDir: workDir,
		runner:  runner,
		logger:  log,
	}
}

// html2pdfArgs builds the argument list: margin, output path, input path.
func html2pdfArgs(markup, artifact string) []string {
	return []string{
		"--margin", strconv.FormatFloat(Margin, 'f', -1, 64),
		"--output", artifact,
		markup,
	}
}

// ToPDF writes the page to a job-scoped file, runs html2pdf on it and reads
// the produced PDF. Both files are removed before returning, on success and
// on failure.
func (c *html2pdfConverter) ToPDF(ctx context.Context, job *conversionJob) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := fileutil.NewTransient(c.workDir, job.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}
	log := logger.WithContext(ctx, c.logger)
	defer func() { logCleanup(log, files.Cleanup()) }()

	if err := files.WriteMarkup(job.HTML); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}

	args := html2pdfArgs(files.Markup, files.Artifact)
	log.Debug("running converter", "command", c.binary, "args", args)

	stdout, stderr, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return nil, c.classify(ctx, args, stdout, stderr, err)
	}

	pdf, err := files.ReadArtifact()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s wrote no file", ErrEmptyPDF, c.binary)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: %s wrote an empty file", ErrEmptyPDF, c.binary)
	}

	return pdf, nil
}

// classify maps a runner error onto the package error taxonomy.
func (c *html2pdfConverter) classify(ctx context.Context, args []string, stdout, stderr string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrConverterNotFound, c.binary, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s killed", ErrConversionTimeout, c.binary)
		}
		return ctxErr
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &ProcessError{
		Command:  c.binary,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}
}

// Close is a no-op: no resources outlive a conversion.
func (c *html2pdfConverter) Close() error {
	return nil
}
