package invoice2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/logger"
	"github.com/alnah/go-invoice2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkupRenderer = (*pipeline.MarkupWriter)(nil)
	_ pipeline.CSSInjector    = (*pipeline.CSSInjection)(nil)
)

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML  []byte // the page handed to the PDF engine
	PDF   []byte
	JobID string // per-conversion UUID, also used in transient file names
}

// Converter orchestrates the invoice-to-PDF pipeline.
// Create with NewConverter, use Convert, and Close when done.
// A Converter may be used from several goroutines at once.
type Converter struct {
	cfg          converterConfig
	markup       pipeline.MarkupRenderer
	pdfConverter pdfConverter
	newJobID     func() string
}

// NewConverter creates a Converter. Without options it uses the html2pdf
// engine, a 30s timeout and os.TempDir() for transient files.
// Returns error if the engine name is unknown or the embedded assets fail
// to load.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			engine:  EngineHTML2PDF,
			binary:  DefaultBinary,
		},
		newJobID: func() string { return uuid.NewString() },
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.logger == nil {
		c.cfg.logger = logger.Discard()
	}

	if c.markup == nil {
		style, err := assets.InvoiceStyle()
		if err != nil {
			return nil, fmt.Errorf("loading invoice style: %w", err)
		}
		tmpl, err := assets.InvoiceTemplate()
		if err != nil {
			return nil, fmt.Errorf("loading invoice template: %w", err)
		}
		writer, err := pipeline.NewMarkupWriter(tmpl, style)
		if err != nil {
			return nil, fmt.Errorf("initializing markup writer: %w", err)
		}
		c.markup = writer
	}

	// Create PDF engine if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		engine, err := newEngine(c.cfg)
		if err != nil {
			return nil, err
		}
		c.pdfConverter = engine
	}

	return c, nil
}

// Engine returns the configured engine name.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// RenderHTML runs the layout and markup stages only.
func (c *Converter) RenderHTML(ctx context.Context, inv Invoice) ([]byte, error) {
	_, html, err := c.render(ctx, inv)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// Convert renders inv and converts it to PDF within the configured timeout.
// The caller's invoice is never modified. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, inv Invoice) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	jobID := c.newJobID()
	ctx = logger.WithJobID(ctx, jobID)
	log := logger.WithContext(ctx, c.cfg.logger)
	start := time.Now()

	doc, html, err := c.render(ctx, inv)
	if err != nil {
		return nil, err
	}

	pdfCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	pdf, err := c.pdfConverter.ToPDF(pdfCtx, &conversionJob{ID: jobID, HTML: html, Document: doc})
	if err != nil {
		if errors.Is(pdfCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil && !errors.Is(err, ErrConversionTimeout) {
			err = fmt.Errorf("%w after %s: %v", ErrConversionTimeout, c.cfg.timeout, err)
		}
		log.Error("conversion failed", "engine", c.cfg.engine, "error", err)
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	if len(pdf) == 0 {
		log.Error("conversion failed", "engine", c.cfg.engine, "error", ErrEmptyPDF)
		return nil, ErrEmptyPDF
	}

	log.Info("invoice converted",
		"engine", c.cfg.engine,
		"bills", len(inv.Bills),
		"bytes", len(pdf),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &ConvertResult{HTML: []byte(html), PDF: pdf, JobID: jobID}, nil
}

// render builds the layout and serializes it.
func (c *Converter) render(ctx context.Context, inv Invoice) (*layout.Document, string, error) {
	doc := layout.Render(inv.toLayoutData())

	html, err := c.markup.ToHTML(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("rendering HTML: %w", err)
	}
	return doc, html, nil
}

// Close releases engine resources (the headless browser, if any).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
