// Package render builds the deterministic view model behind the on-screen
// invoice preview. The PDF export lays out the same sections with fixed
// coordinates; both read the same draft so they stay visually consistent.
package render

import (
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/domain/invoice"
	"github.com/grayvally/invoicer-api/pkg/money"
)

// Party is one rendered party block: a name plus its non-empty detail lines.
type Party struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// Row is one rendered line item. Quantity, unit price and amount are empty in
// the simple line style.
type Row struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity,omitempty"`
	UnitPrice   string `json:"unitPrice,omitempty"`
	Amount      string `json:"amount,omitempty"`
}

// Totals is the rendered totals panel.
type Totals struct {
	Subtotal      string `json:"subtotal"`
	DiscountLabel string `json:"discountLabel"`
	Discount      string `json:"discount"`
	TaxLabel      string `json:"taxLabel"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
}

// Preview is the full view model of one draft snapshot.
type Preview struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	IssueDate     string    `json:"issueDate"`
	DueDate       string    `json:"dueDate"`
	Currency      string    `json:"currency"`
	LineStyle     string    `json:"lineStyle"`
	Columns       []string  `json:"columns"`
	From          Party     `json:"from"`
	To            Party     `json:"to"`
	Rows          []Row     `json:"rows"`
	Totals        Totals    `json:"totals"`
	Notes         string    `json:"notes,omitempty"`
	Terms         string    `json:"terms,omitempty"`
}

// BuildPreview derives the view model from a draft and its totals. Pure;
// calling it twice on the same snapshot yields the same result.
func BuildPreview(d entity.InvoiceDraft, t invoice.Totals) Preview {
	code := string(d.Currency)

	columns := []string{"Description"}
	if d.LineStyle == entity.LineStyleDetailed {
		columns = []string{"Description", "Qty", "Unit Price", "Amount"}
	}

	rows := make([]Row, 0, len(d.Items))
	for _, it := range d.Items {
		row := Row{Description: it.Description}
		if d.LineStyle == entity.LineStyleDetailed {
			row.Quantity = it.Quantity.String()
			row.UnitPrice = money.Format(it.UnitPrice, code)
			row.Amount = money.Format(it.Amount(), code)
		}
		rows = append(rows, row)
	}

	discountLabel := "Discount"
	if d.DiscountType == entity.DiscountPercent {
		discountLabel = "Discount (" + d.DiscountValue.String() + "%)"
	}

	return Preview{
		InvoiceNumber: d.InvoiceNumber,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		Currency:      code,
		LineStyle:     string(d.LineStyle),
		Columns:       columns,
		From:          partyView(d.From),
		To:            partyView(d.To),
		Rows:          rows,
		Totals: Totals{
			Subtotal:      money.Format(t.Subtotal, code),
			DiscountLabel: discountLabel,
			Discount:      money.Format(t.DiscountAmount, code),
			TaxLabel:      "Tax (" + d.TaxRate.String() + "%)",
			Tax:           money.Format(t.TaxAmount, code),
			Total:         money.Format(t.Total, code),
		},
		Notes: d.Notes,
		Terms: d.Terms,
	}
}

func partyView(p entity.PartyInfo) Party {
	lines := make([]string, 0, 6)
	lines = append(lines, splitLines(p.Address)...)
	for _, s := range []string{p.Email, p.Phone, p.Website} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	if p.TaxID != "" {
		lines = append(lines, "Tax ID: "+p.TaxID)
	}
	return Party{Name: p.Name, Lines: lines}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			line := s[start:i]
			if line != "" && line != "\r" {
				if line[len(line)-1] == '\r' {
					line = line[:len(line)-1]
				}
				out = append(out, line)
			}
			start = i + 1
		}
	}
	return out
}
