package invoice2pdf

import "github.com/alnah/go-invoice2pdf/internal/layout"

// Invoice is the input record. Every text field is printed as given;
// missing fields render as empty text.
type Invoice struct {
	CompanyName   string `json:"company_name" yaml:"company_name"`
	ContactName   string `json:"contact_name" yaml:"contact_name"`
	Address       string `json:"address" yaml:"address"`
	City          string `json:"city" yaml:"city"`
	State         string `json:"state" yaml:"state"`
	Zip           string `json:"zip" yaml:"zip"`
	Phone         string `json:"phone" yaml:"phone"`
	Email         string `json:"email" yaml:"email"`
	BillTo        string `json:"bill_to" yaml:"bill_to"`
	InvoiceNumber string `json:"invoice_number" yaml:"invoice_number"`
	InvoiceDate   string `json:"invoice_date" yaml:"invoice_date"`
	Bills         []Bill `json:"bills" yaml:"bills"`
}

// Bill is one line item. Amount is in whole currency units and may be
// negative. ExtraParagraphs is optional; empty strings in it are skipped.
type Bill struct {
	Description     string   `json:"description" yaml:"description"`
	Amount          int64    `json:"amount" yaml:"amount"`
	ExtraParagraphs []string `json:"extra_paragraphs,omitempty" yaml:"extra_paragraphs,omitempty"`
}

// Total sums every bill amount. It is recomputed on each call.
func (inv Invoice) Total() int64 {
	var total int64
	for _, b := range inv.Bills {
		total += b.Amount
	}
	return total
}

// toLayoutData copies the invoice into layout input. Slices are copied so
// later edits by the caller cannot reach a conversion in flight.
func (inv Invoice) toLayoutData() *layout.InvoiceData {
	bills := make([]layout.BillData, len(inv.Bills))
	for i, b := range inv.Bills {
		var extra []string
		if b.ExtraParagraphs != nil {
			extra = append([]string{}, b.ExtraParagraphs...)
		}
		bills[i] = layout.BillData{
			Description:     b.Description,
			Amount:          b.Amount,
			ExtraParagraphs: extra,
		}
	}

	return &layout.InvoiceData{
		CompanyName:   inv.CompanyName,
		ContactName:   inv.ContactName,
		Address:       inv.Address,
		City:          inv.City,
		State:         inv.State,
		Zip:           inv.Zip,
		Phone:         inv.Phone,
		Email:         inv.Email,
		BillTo:        inv.BillTo,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Bills:         bills,
	}
}
