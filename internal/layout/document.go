package layout

// Fixed labels printed on every invoice.
const (
	TitleText          = "INVOICE"
	BillToLabel        = "BILL TO"
	InvoiceNumberLabel = "INVOICE #"
	InvoiceDateLabel   = "INVOICE DATE"
	DescriptionHead    = "DESCRIPTION"
	AmountHead         = "AMOUNT"
	TotalPrefix        = "TOTAL "
)

// InvoiceData holds the invoice fields needed to build a Document.
// Callers convert their own types into InvoiceData; layout never sees them.
type InvoiceData struct {
	CompanyName   string
	ContactName   string
	Address       string
	City          string
	State         string
	Zip           string
	Phone         string
	Email         string
	BillTo        string
	InvoiceNumber string
	InvoiceDate   string
	Bills         []BillData
}

// BillData holds one line item. A nil ExtraParagraphs means the field was
// absent; an empty non-nil slice means it was present but empty.
type BillData struct {
	Description     string
	Amount          int64
	ExtraParagraphs []string
}

// Document is the rendered, styled-by-class representation of an invoice.
type Document struct {
	Title       string
	Contact     Contact
	BillingInfo BillingInfo
	LineItems   LineItems
	Total       Total
}

// Contact is the sender block. Lines are printed one per row after Heading.
type Contact struct {
	Heading string
	Lines   []string
}

// BillingInfo is the two-column block under the contact details.
type BillingInfo struct {
	BillToLabel string
	BillTo      string
	Entries     []LabeledValue
}

// LabeledValue is a label printed next to its value.
type LabeledValue struct {
	Label string
	Value string
}

// LineItems is the itemized section.
type LineItems struct {
	DescriptionHeader string
	AmountHeader      string
	Items             []LineItem
}

// LineItem is one rendered bill. Notes is nil when no sub-list is shown;
// a non-nil empty Notes renders an empty sub-list.
type LineItem struct {
	Description string
	Amount      string
	Notes       []string
}

// HasNotes reports whether the item carries an indented sub-list.
func (li LineItem) HasNotes() bool {
	return li.Notes != nil
}

// Total is the closing sum block.
type Total struct {
	Amount int64
	Text   string
}
