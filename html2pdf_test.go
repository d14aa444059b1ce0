package invoice2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Fake CommandRunner
// ---------------------------------------------------------------------------

// fakeRunner imitates html2pdf: it copies the input file to the --output
// path with a PDF header, unless err or noOutput is set.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	stdout   string
	stderr   string
	err      error
	noOutput bool
	// seen records whether both transient files existed during the call.
	seenMarkup bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if f.err != nil {
		return f.stdout, f.stderr, f.err
	}
	if len(args) != 5 || args[0] != "--margin" || args[2] != "--output" {
		return "", "usage: html2pdf", fmt.Errorf("unexpected args %q", args)
	}

	in, err := os.ReadFile(args[4])
	if err != nil {
		return "", err.Error(), err
	}
	f.mu.Lock()
	f.seenMarkup = true
	f.mu.Unlock()

	if f.noOutput {
		return f.stdout, f.stderr, nil
	}
	out := append([]byte("%PDF-1.4\n"), in...)
	if err := os.WriteFile(args[3], out, 0o600); err != nil {
		return "", err.Error(), err
	}
	return f.stdout, f.stderr, nil
}

func (f *fakeRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

// assertNoTransientFiles fails if any transient file remains in dir.
func assertNoTransientFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "invoice2pdf-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("transient files left behind: %v", matches)
	}
}

func newJob(id, html string) *conversionJob {
	return &conversionJob{ID: id, HTML: html}
}

// ---------------------------------------------------------------------------
// TestHTML2PDF_ToPDF - Command invocation and cleanup
// ---------------------------------------------------------------------------

func TestHTML2PDF_ToPDF_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{}
	conv := newHTML2PDFConverter("html2pdf", dir, runner, nil)

	pdf, err := conv.ToPDF(context.Background(), newJob("abc", "<html>invoice</html>"))
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}

	if string(pdf) != "%PDF-1.4\n<html>invoice</html>" {
		t.Errorf("pdf = %q", pdf)
	}

	want := []string{
		"html2pdf",
		"--margin", "0.4",
		"--output", filepath.Join(dir, "invoice2pdf-abc.pdf"),
		filepath.Join(dir, "invoice2pdf-abc.html"),
	}
	if got := runner.lastCall(); !reflect.DeepEqual(got, want) {
		t.Errorf("command = %q, want %q", got, want)
	}
	if !runner.seenMarkup {
		t.Error("markup file should exist while the command runs")
	}
	assertNoTransientFiles(t, dir)
}

func TestHTML2PDF_ToPDF_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		runner  *fakeRunner
		wantErr error
	}{
		{
			name:    "binary missing",
			runner:  &fakeRunner{err: &exec.Error{Name: "html2pdf", Err: exec.ErrNotFound}},
			wantErr: ErrConverterNotFound,
		},
		{
			name:    "path does not exist",
			runner:  &fakeRunner{err: &os.PathError{Op: "fork/exec", Path: "/nope/html2pdf", Err: os.ErrNotExist}},
			wantErr: ErrConverterNotFound,
		},
		{
			name:    "non-zero exit",
			runner:  &fakeRunner{err: errors.New("exit status 1"), stderr: "Error: navigation failed\nstack..."},
			wantErr: ErrConversionProcess,
		},
		{
			name:    "exit zero without output",
			runner:  &fakeRunner{noOutput: true},
			wantErr: ErrEmptyPDF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			conv := newHTML2PDFConverter("html2pdf", dir, tt.runner, nil)

			pdf, err := conv.ToPDF(context.Background(), newJob("job", "<html></html>"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToPDF() error = %v, want %v", err, tt.wantErr)
			}
			if pdf != nil {
				t.Errorf("pdf = %q, want nil", pdf)
			}
			assertNoTransientFiles(t, dir)
		})
	}
}

func TestHTML2PDF_ToPDF_ProcessErrorDetails(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		err:    errors.New("exit status 3"),
		stdout: "starting",
		stderr: "\nError: page crashed\nat line 1",
	}
	conv := newHTML2PDFConverter("html2pdf", t.TempDir(), runner, nil)

	_, err := conv.ToPDF(context.Background(), newJob("job", ""))

	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a *ProcessError", err)
	}
	if perr.Command != "html2pdf" || perr.Stdout != "starting" {
		t.Errorf("ProcessError = %+v", perr)
	}
	if perr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for a non-exec error", perr.ExitCode)
	}
	if len(perr.Args) != 5 || perr.Args[1] != "0.4" {
		t.Errorf("Args = %q", perr.Args)
	}
	if got := perr.Error(); got != "html2pdf exited with code -1: Error: page crashed" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHTML2PDF_ToPDF_Timeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	dir := t.TempDir()
	conv := newHTML2PDFConverter("html2pdf", dir, &fakeRunner{}, nil)

	_, err := conv.ToPDF(ctx, newJob("job", ""))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("ToPDF() error = %v, want context.DeadlineExceeded", err)
	}
	assertNoTransientFiles(t, dir)
}

func TestHTML2PDF_Classify_Timeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	conv := newHTML2PDFConverter("html2pdf", "", &fakeRunner{}, nil)
	err := conv.classify(ctx, nil, "", "", errors.New("signal: killed"))

	if !errors.Is(err, ErrConversionTimeout) {
		t.Errorf("classify() = %v, want ErrConversionTimeout", err)
	}
}

func TestHTML2PDF_ToPDF_InvalidJobID(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	conv := newHTML2PDFConverter("html2pdf", t.TempDir(), runner, nil)

	_, err := conv.ToPDF(context.Background(), newJob("../escape", ""))
	if !errors.Is(err, ErrTransientIO) {
		t.Errorf("ToPDF() error = %v, want ErrTransientIO", err)
	}
	if runner.lastCall() != nil {
		t.Error("command should not run for an invalid job ID")
	}
}

func TestHTML2PDF_ToPDF_MissingWorkDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "missing")
	conv := newHTML2PDFConverter("html2pdf", dir, &fakeRunner{}, nil)

	_, err := conv.ToPDF(context.Background(), newJob("job", ""))
	if !errors.Is(err, ErrTransientIO) {
		t.Errorf("ToPDF() error = %v, want ErrTransientIO", err)
	}
}

// ---------------------------------------------------------------------------
// TestHTML2PDF_Concurrent - Isolation between simultaneous conversions
// ---------------------------------------------------------------------------

func TestHTML2PDF_Concurrent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{}
	conv := newTestConverter(t, WithWorkDir(dir), WithCommandRunner(runner))

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()

			number := fmt.Sprintf("INV-%03d", i)
			result, err := conv.Convert(context.Background(), Invoice{InvoiceNumber: number})
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(string(result.PDF), number) {
				errs <- fmt.Errorf("invoice %s received another artifact", number)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assertNoTransientFiles(t, dir)
}

func TestHTML2PDFArgs(t *testing.T) {
	t.Parallel()

	got := html2pdfArgs("in.html", "out.pdf")
	want := []string{"--margin", "0.4", "--output", "out.pdf", "in.html"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("html2pdfArgs() = %q, want %q", got, want)
	}
}
