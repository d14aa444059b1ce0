package invoice2pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-invoice2pdf/internal/layout"
)

// Native layout metrics. Units are inches except font sizes (points).
const (
	nativeFont        = "Helvetica"
	nativeTitleSize   = 36
	nativeHeadingSize = 14
	nativeBodySize    = 11
	nativeNoteSize    = 10
	nativeLine        = 0.22
	nativeNoteIndent  = 0.3
	nativeAmountWidth = 1.6
	nativeSectionGap  = 0.3
)

// rgb is a text color.
type rgb struct{ r, g, b int }

var (
	nativeTitleColor = rgb{50, 50, 200}
	nativeTextColor  = rgb{0, 0, 0}
	nativeNoteColor  = rgb{110, 110, 110}
)

// nativeConverter draws the layout tree with go-pdf/fpdf. It needs no
// external tool and never touches the filesystem.
type nativeConverter struct{}

func newNativeConverter() *nativeConverter {
	return &nativeConverter{}
}

// ToPDF draws job.Document onto US Letter pages.
func (c *nativeConverter) ToPDF(ctx context.Context, job *conversionJob) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := job.Document
	if doc == nil {
		doc = layout.Render(nil)
	}

	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(true, Margin)
	pdf.SetCreator("go-invoice2pdf", true)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	w := &nativeWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	w.draw(doc)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// Close is a no-op.
func (c *nativeConverter) Close() error {
	return nil
}

// nativeWriter draws one document. The translator maps UTF-8 text onto the
// core font encoding (cp1252).
type nativeWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *nativeWriter) contentWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	return pageW - left - right
}

// fits reports whether a row of height h fits above the bottom margin.
func (w *nativeWriter) fits(h float64) bool {
	_, pageH := w.pdf.GetPageSize()
	_, bottom := w.pdf.GetAutoPageBreak()
	return w.pdf.GetY()+h <= pageH-bottom
}

func (w *nativeWriter) font(style string, size float64, c rgb) {
	w.pdf.SetFont(nativeFont, style, size)
	w.pdf.SetTextColor(c.r, c.g, c.b)
}

func (w *nativeWriter) line(text, align string) {
	w.pdf.MultiCell(0, nativeLine, w.tr(text), "", align, false)
}

func (w *nativeWriter) draw(doc *layout.Document) {
	w.title(doc.Title)
	w.contact(doc.Contact)
	w.billingInfo(doc.BillingInfo)
	w.lineItems(doc.LineItems)
	w.total(doc.Total)
}

func (w *nativeWriter) title(text string) {
	w.font("B", nativeTitleSize, nativeTitleColor)
	w.pdf.CellFormat(0, 0.6, w.tr(text), "", 1, "L", false, 0, "")
	w.pdf.Ln(nativeSectionGap / 2)
}

func (w *nativeWriter) contact(c layout.Contact) {
	w.font("B", nativeHeadingSize, nativeTextColor)
	w.line(c.Heading, "L")
	w.font("", nativeBodySize, nativeTextColor)
	for _, l := range c.Lines {
		w.line(l, "L")
	}
	w.pdf.Ln(nativeSectionGap)
}

// billingInfo draws the bill-to column on the left and the labeled entries
// stacked on the right, starting at the same height.
func (w *nativeWriter) billingInfo(b layout.BillingInfo) {
	left, _, _, _ := w.pdf.GetMargins()
	half := w.contentWidth() / 2
	top := w.pdf.GetY()

	w.font("B", nativeBodySize, nativeTextColor)
	w.pdf.MultiCell(half, nativeLine, w.tr(b.BillToLabel), "", "L", false)
	w.font("", nativeBodySize, nativeTextColor)
	w.pdf.MultiCell(half, nativeLine, w.tr(b.BillTo), "", "L", false)
	leftBottom := w.pdf.GetY()

	labelW := half / 2
	w.pdf.SetXY(left+half, top)
	for _, e := range b.Entries {
		w.font("B", nativeBodySize, nativeTextColor)
		w.pdf.CellFormat(labelW, nativeLine, w.tr(e.Label), "", 0, "L", false, 0, "")
		w.font("", nativeBodySize, nativeTextColor)
		w.pdf.CellFormat(half-labelW, nativeLine, w.tr(e.Value), "", 2, "R", false, 0, "")
		w.pdf.SetX(left + half)
	}

	w.pdf.SetXY(left, max(leftBottom, w.pdf.GetY()))
	w.pdf.Ln(nativeSectionGap)
}

func (w *nativeWriter) lineItems(items layout.LineItems) {
	left, _, _, _ := w.pdf.GetMargins()
	width := w.contentWidth()
	descW := width - nativeAmountWidth

	w.font("B", nativeBodySize, nativeTextColor)
	w.pdf.CellFormat(descW, nativeLine, w.tr(items.DescriptionHeader), "B", 0, "L", false, 0, "")
	w.pdf.CellFormat(nativeAmountWidth, nativeLine, w.tr(items.AmountHeader), "B", 1, "R", false, 0, "")
	w.pdf.Ln(nativeLine / 2)

	for _, item := range items.Items {
		w.font("", nativeBodySize, nativeTextColor)
		if !w.fits(nativeLine) {
			w.pdf.AddPage()
		}
		page, top := w.pdf.PageNo(), w.pdf.GetY()
		w.pdf.MultiCell(descW, nativeLine, w.tr(item.Description), "", "L", false)
		endPage, bottom := w.pdf.PageNo(), w.pdf.GetY()

		// Amount on the first row of the description, which stays on the
		// starting page when a long description breaks across pages.
		w.pdf.SetPage(page)
		w.pdf.SetXY(left+descW, top)
		w.pdf.CellFormat(nativeAmountWidth, nativeLine, w.tr(item.Amount), "", 0, "R", false, 0, "")
		w.pdf.SetPage(endPage)
		w.pdf.SetXY(left, bottom)

		if item.HasNotes() {
			w.font("", nativeNoteSize, nativeNoteColor)
			for _, note := range item.Notes {
				w.pdf.SetX(left + nativeNoteIndent)
				w.pdf.MultiCell(descW-nativeNoteIndent, nativeLine, w.tr("- "+note), "", "L", false)
			}
		}
		w.pdf.Ln(nativeLine / 2)
	}
	w.pdf.Ln(nativeSectionGap)
}

func (w *nativeWriter) total(t layout.Total) {
	w.font("B", nativeHeadingSize, nativeTextColor)
	w.line(t.Text, "R")
}
