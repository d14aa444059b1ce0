package layout

import "strconv"

// Render builds the Document for an invoice. A nil data renders the same
// document as a zero-valued InvoiceData.
func Render(data *InvoiceData) *Document {
	if data == nil {
		data = &InvoiceData{}
	}

	items := make([]LineItem, 0, len(data.Bills))
	for _, b := range data.Bills {
		items = append(items, LineItem{
			Description: b.Description,
			Amount:      FormatAmount(b.Amount),
			Notes:       visibleParagraphs(b.ExtraParagraphs),
		})
	}

	total := Sum(data.Bills)

	return &Document{
		Title: TitleText,
		Contact: Contact{
			Heading: data.CompanyName,
			Lines: []string{
				data.ContactName,
				data.Address,
				CityLine(data.City, data.State, data.Zip),
				data.Phone,
				data.Email,
			},
		},
		BillingInfo: BillingInfo{
			BillToLabel: BillToLabel,
			BillTo:      data.BillTo,
			Entries: []LabeledValue{
				{Label: InvoiceNumberLabel, Value: data.InvoiceNumber},
				{Label: InvoiceDateLabel, Value: data.InvoiceDate},
			},
		},
		LineItems: LineItems{
			DescriptionHeader: DescriptionHead,
			AmountHeader:      AmountHead,
			Items:             items,
		},
		Total: Total{
			Amount: total,
			Text:   TotalPrefix + FormatAmount(total),
		},
	}
}

// Sum adds every bill amount. An empty slice sums to zero.
func Sum(bills []BillData) int64 {
	var total int64
	for _, b := range bills {
		total += b.Amount
	}
	return total
}

// FormatAmount renders an amount as "$" followed by the plain base-10
// integer: no thousands separator, no decimals, sign after the symbol.
func FormatAmount(amount int64) string {
	return "$" + strconv.FormatInt(amount, 10)
}

// CityLine composes the "{city}, {state} {zip}" contact line.
func CityLine(city, state, zip string) string {
	return city + ", " + state + " " + zip
}

// visibleParagraphs drops empty strings. Absent and empty inputs return nil
// (no sub-list); any other input returns a non-nil slice, empty when every
// entry was blank.
func visibleParagraphs(paragraphs []string) []string {
	if len(paragraphs) == 0 {
		return nil
	}
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
