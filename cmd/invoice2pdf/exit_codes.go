package main

import (
	"errors"
	"os"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
)

// Exit codes for the invoice2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful run
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or input document
	ExitIO        = 3 // File not found, permission denied, transient files
	ExitConverter = 4 // html2pdf, browser, or PDF engine failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter errors (exit 4)
	if errors.Is(err, invoice2pdf.ErrConverterNotFound) ||
		errors.Is(err, invoice2pdf.ErrConversionProcess) ||
		errors.Is(err, invoice2pdf.ErrConversionTimeout) ||
		errors.Is(err, invoice2pdf.ErrEmptyPDF) ||
		errors.Is(err, invoice2pdf.ErrPDFGeneration) ||
		errors.Is(err, invoice2pdf.ErrBrowserConnect) ||
		errors.Is(err, invoice2pdf.ErrPageCreate) ||
		errors.Is(err, invoice2pdf.ErrPageLoad) {
		return ExitConverter
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, invoice2pdf.ErrUnknownEngine) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidInvoice) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, invoice2pdf.ErrTransientIO) ||
		errors.Is(err, ErrReadInvoice) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
