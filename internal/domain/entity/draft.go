package entity

import "github.com/shopspring/decimal"

// DateLayout is the wire format for issue and due dates (ISO 8601 date).
const DateLayout = "2006-01-02"

// Currency is the closed set of billing currencies the tool offers.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBDT Currency = "BDT"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Valid reports whether c is one of the supported codes.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyBDT, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// LineStyle controls which columns the line-item table shows.
type LineStyle string

const (
	// LineStyleDetailed shows description, quantity, unit price and amount.
	LineStyleDetailed LineStyle = "detailed"
	// LineStyleSimple shows only the description column.
	LineStyleSimple LineStyle = "simple"
)

// DiscountType says how DiscountValue is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// PartyInfo identifies one side of the invoice (issuer or recipient).
// Every field is free-form and may be blank.
type PartyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"` // multi-line
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	TaxID   string `json:"taxId"`
}

// LineItem is one billable row. The line total is always derived
// (Quantity * UnitPrice), never stored.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Amount returns Quantity * UnitPrice.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// InvoiceDraft is the root aggregate of the tool: the single editable invoice.
// Invariant: Items never drops below one element; removal of the sole item is
// a no-op at the use-case layer.
//
// Due date has no enforced ordering against the issue date; a due date before
// the issue date is accepted as-is.
type InvoiceDraft struct {
	Currency      Currency        `json:"currency"`
	LineStyle     LineStyle       `json:"lineStyle"`
	InvoiceNumber string          `json:"invoiceNumber"`
	IssueDate     string          `json:"issueDate"` // YYYY-MM-DD
	DueDate       string          `json:"dueDate"`   // YYYY-MM-DD
	From          PartyInfo       `json:"from"`
	To            PartyInfo       `json:"to"`
	Items         []LineItem      `json:"items"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	TaxRate       decimal.Decimal `json:"taxRate"` // percent
	Notes         string          `json:"notes"`
	Terms         string          `json:"terms"`
}

// Clone returns a deep copy. Handlers and exporters work on copies so the
// export path can never mutate the live draft.
func (d InvoiceDraft) Clone() InvoiceDraft {
	out := d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}
