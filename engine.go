package invoice2pdf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alnah/go-invoice2pdf/internal/layout"
)

// conversionJob is the input handed to a PDF engine.
type conversionJob struct {
	ID       string           // unique per conversion, safe for file names
	HTML     string           // self-contained page
	Document *layout.Document // the tree the HTML was rendered from
}

// pdfConverter abstracts the PDF stage to allow different engines.
type pdfConverter interface {
	ToPDF(ctx context.Context, job *conversionJob) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ pdfConverter = (*html2pdfConverter)(nil)
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfConverter = (*nativeConverter)(nil)
)

// newEngine builds the pdfConverter named by cfg.engine.
func newEngine(cfg converterConfig) (pdfConverter, error) {
	switch cfg.engine {
	case EngineHTML2PDF:
		return newHTML2PDFConverter(cfg.binary, cfg.workDir, cfg.runner, cfg.logger), nil
	case EngineChrome:
		return newRodConverter(cfg.workDir, cfg.timeout, cfg.logger), nil
	case EngineNative:
		return newNativeConverter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s, %s, or %s)",
			ErrUnknownEngine, cfg.engine, EngineHTML2PDF, EngineChrome, EngineNative)
	}
}

// logCleanup reports a transient file cleanup failure. Cleanup never fails
// a conversion.
func logCleanup(log *slog.Logger, err error) {
	if err != nil {
		log.Warn("transient file cleanup failed", "error", err)
	}
}
