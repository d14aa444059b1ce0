// Package layout turns invoice data into a structured document tree.
//
// The tree mirrors the printed page from top to bottom:
//
//	Document
//	├── Title              "INVOICE"
//	├── Contact            company heading + contact lines
//	├── BillingInfo        "BILL TO" column + invoice number/date entries
//	├── LineItems          "DESCRIPTION"/"AMOUNT" header + one LineItem per bill
//	│   └── LineItem       description, formatted amount, optional Notes
//	└── Total              "TOTAL $<sum>"
//
// Rendering is pure and total: every InvoiceData value, including one with
// no bills, produces a Document. The same Document feeds both the HTML
// serializer in internal/pipeline and the native PDF engine, so the two
// outputs cannot drift apart structurally.
package layout
