// Package assets embeds the invoice theme and page template.
//
// The theme is fixed: one stylesheet and one HTML template compiled into
// the binary with go:embed. Nothing is read from disk at runtime, so the
// rendered markup is always self-contained.
//
//	styles/invoice.css        # visual theme (fonts, spacing, colors)
//	templates/invoice.html    # page structure bound to layout.Document
package assets
