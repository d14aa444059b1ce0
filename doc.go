// Package invoice2pdf renders invoices to PDF.
//
// # Quick Start
//
// Create a converter, convert an invoice, and close when done:
//
//	conv, err := invoice2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, invoice2pdf.Invoice{
//	    CompanyName:   "Acme Corp",
//	    BillTo:        "Globex",
//	    InvoiceNumber: "INV-42",
//	    Bills: []invoice2pdf.Bill{
//	        {Description: "Consulting", Amount: 1500},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("invoice.pdf", result.PDF, 0o644)
//
// The result carries the PDF bytes, the intermediate HTML, and the job ID
// used for logging and transient file names. RenderHTML stops after the
// markup stage.
//
// # Conversion Pipeline
//
//  1. Layout: the invoice becomes a section tree (internal/layout).
//  2. Markup: the tree is serialized to a self-contained HTML page with the
//     invoice theme inlined (internal/pipeline).
//  3. PDF: an engine turns the page into PDF bytes.
//
// # Engines
//
// Select with WithEngine:
//
//   - EngineHTML2PDF (default) runs the external html2pdf command as
//     `html2pdf --margin 0.4 --output <out.pdf> <in.html>`.
//   - EngineChrome prints the page with headless Chrome (go-rod).
//   - EngineNative draws the layout directly with go-pdf/fpdf; no external
//     tool is needed.
//
// Every conversion gets a fresh UUID. The html2pdf and chrome engines embed
// it in their transient file names and delete both files on every exit path,
// so concurrent conversions never read each other's output.
//
// # Parallel Processing
//
// ConverterPool bounds how many conversions run at once:
//
//	pool := invoice2pdf.NewConverterPool(4)
//	defer pool.Close()
//
//	result, err := pool.Convert(ctx, inv)
//
// # Error Handling
//
// Errors wrap sentinels that can be checked with errors.Is:
//
//	if errors.Is(err, invoice2pdf.ErrConverterNotFound) {
//	    // html2pdf is not installed
//	}
//	var perr *invoice2pdf.ProcessError
//	if errors.As(err, &perr) {
//	    log.Println(perr.ExitCode, perr.Stderr)
//	}
package invoice2pdf
