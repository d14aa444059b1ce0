package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-invoice2pdf/internal/layout"
)

// ErrMarkupRender is returned when the page template fails to execute.
var ErrMarkupRender = errors.New("invoice template rendering failed")

// MarkupRenderer serializes a layout document into a self-contained HTML page.
type MarkupRenderer interface {
	ToHTML(ctx context.Context, doc *layout.Document) (string, error)
}

// MarkupWriter renders the invoice template and embeds the theme stylesheet.
// It is safe for concurrent use once created.
type MarkupWriter struct {
	tmpl        *template.Template
	css         string
	cssInjector CSSInjector
}

// NewMarkupWriter parses the page template and keeps the stylesheet for
// injection. Returns error if the template cannot be parsed.
func NewMarkupWriter(tmplContent, css string) (*MarkupWriter, error) {
	tmpl, err := template.New("invoice").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing invoice template: %w", err)
	}

	return &MarkupWriter{
		tmpl:        tmpl,
		css:         css,
		cssInjector: &CSSInjection{},
	}, nil
}

// ToHTML executes the template against doc. All text is escaped by
// html/template; the stylesheet lands in <head>.
func (w *MarkupWriter) ToHTML(ctx context.Context, doc *layout.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc == nil {
		doc = layout.Render(nil)
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkupRender, err)
	}

	return w.cssInjector.InjectCSS(ctx, buf.String(), w.css), nil
}

// Compile-time interface check.
var _ MarkupRenderer = (*MarkupWriter)(nil)
