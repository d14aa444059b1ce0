package invoice2pdf

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for library operations.
var (
	ErrConverterNotFound = errors.New("PDF converter executable not found")
	ErrConversionProcess = errors.New("PDF converter process failed")
	ErrConversionTimeout = errors.New("PDF conversion timed out")
	ErrTransientIO       = errors.New("transient file operation failed")
	ErrEmptyPDF          = errors.New("PDF converter produced no output")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrUnknownEngine     = errors.New("unknown PDF engine")
	ErrPoolClosed        = errors.New("converter pool is closed")
)

// ProcessError describes a converter command that exited unsuccessfully.
// It matches ErrConversionProcess with errors.Is.
type ProcessError struct {
	Command  string
	Args     []string
	ExitCode int // -1 when the process did not report one
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s exited with code %d", e.Command, e.ExitCode)
	if msg := firstLine(e.Stderr); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying exec error.
func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversionProcess}
	}
	return []error{ErrConversionProcess, e.Err}
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
