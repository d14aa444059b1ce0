package invoice2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-invoice2pdf/internal/layout"
)

func TestNativeConverter_ToPDF(t *testing.T) {
	t.Parallel()

	manyBills := make([]layout.BillData, 80)
	for i := range manyBills {
		manyBills[i] = layout.BillData{Description: "Line", Amount: int64(i), ExtraParagraphs: []string{"note"}}
	}

	tests := []struct {
		name string
		doc  *layout.Document
	}{
		{"sample invoice", layout.Render(sampleInvoice().toLayoutData())},
		{"empty invoice", layout.Render(&layout.InvoiceData{})},
		{"nil document", nil},
		{"non-ASCII text", layout.Render(&layout.InvoiceData{CompanyName: "Café Müller", Bills: []layout.BillData{{Description: "Crème brûlée € 5"}}})},
		{"long description wraps", layout.Render(&layout.InvoiceData{Bills: []layout.BillData{{Description: strings.Repeat("consulting ", 60), Amount: 9}}})},
		{"spans pages", layout.Render(&layout.InvoiceData{Bills: manyBills})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pdf, err := newNativeConverter().ToPDF(context.Background(), &conversionJob{ID: "n", Document: tt.doc})
			if err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}
			if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
				t.Errorf("output does not start with a PDF header: %q", pdf[:min(len(pdf), 16)])
			}
			if !bytes.Contains(pdf, []byte("%%EOF")) {
				t.Error("output has no PDF trailer")
			}
		})
	}
}

func TestNativeConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newNativeConverter().ToPDF(ctx, &conversionJob{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToPDF() error = %v, want context.Canceled", err)
	}
}

func TestNativeEngine_ThroughConverter(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithEngine(EngineNative))

	result, err := conv.Convert(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !bytes.HasPrefix(result.PDF, []byte("%PDF-")) {
		t.Error("native engine should produce a PDF")
	}
	if len(result.HTML) == 0 {
		t.Error("HTML is still rendered for the native engine")
	}
}

// ---------------------------------------------------------------------------
// TestNativeWriter_LineItems - Amount placement across page breaks
// ---------------------------------------------------------------------------

var textOp = regexp.MustCompile(`BT ([\d.]+) ([\d.]+) Td \((.*?)\)Tj ET`)

type placedText struct {
	page int
	y    string
	text string
}

// placedTexts returns every text operator of an uncompressed pdf with its
// page and baseline.
func placedTexts(t *testing.T, pdf *fpdf.Fpdf) []placedText {
	t.Helper()

	pages := pdf.PageCount()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output() error = %v", err)
	}

	var out []placedText
	for i, part := range strings.Split(buf.String(), "endstream")[:pages] {
		content := part[strings.LastIndex(part, "stream")+len("stream"):]
		for _, m := range textOp.FindAllStringSubmatch(content, -1) {
			out = append(out, placedText{page: i + 1, y: m[2], text: m[3]})
		}
	}
	return out
}

func TestNativeWriter_LineItemsAmountStaysWithFirstLine(t *testing.T) {
	t.Parallel()

	words := make([]string, 400)
	for i := range words {
		words[i] = fmt.Sprintf("w%03d", i)
	}
	desc := strings.Join(words, " ")

	tests := []struct {
		name      string
		startY    float64
		wantPage  int
		wantPages int
	}{
		{"description breaks across pages", 9.8, 1, 2},
		{"row moved to a new page", 10.3, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pdf := fpdf.New("P", "in", "Letter", "")
			pdf.SetMargins(Margin, Margin, Margin)
			pdf.SetAutoPageBreak(true, Margin)
			pdf.SetCompression(false)
			pdf.AddPage()
			pdf.SetY(tt.startY)

			w := &nativeWriter{pdf: pdf, tr: func(s string) string { return s }}
			w.lineItems(layout.LineItems{
				DescriptionHeader: "DESCRIPTION",
				AmountHeader:      "AMOUNT",
				Items:             []layout.LineItem{{Description: desc, Amount: "$9"}},
			})
			if err := pdf.Error(); err != nil {
				t.Fatalf("draw error = %v", err)
			}
			if got := pdf.PageCount(); got != tt.wantPages {
				t.Fatalf("PageCount() = %d, want %d", got, tt.wantPages)
			}

			var first, amount *placedText
			texts := placedTexts(t, pdf)
			for i := range texts {
				switch {
				case first == nil && strings.HasPrefix(texts[i].text, "w000 "):
					first = &texts[i]
				case texts[i].text == "$9":
					amount = &texts[i]
				}
			}
			if first == nil || amount == nil {
				t.Fatalf("missing text: first line %v, amount %v", first, amount)
			}

			if amount.page != tt.wantPage || first.page != tt.wantPage {
				t.Errorf("first line on page %d, amount on page %d, want both on %d", first.page, amount.page, tt.wantPage)
			}
			if amount.y != first.y {
				t.Errorf("amount baseline = %s, want first line baseline %s", amount.y, first.y)
			}
		})
	}
}
