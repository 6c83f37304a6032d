// Package dto defines the request/response bodies of the HTTP surface.
package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // per-field validation errors
}

// UnlockRequest body for POST /api/unlock.
type UnlockRequest struct {
	PIN string `json:"pin"`
}

// PartyUpdate partial update of one party block. Nil pointers leave the
// current value untouched.
type PartyUpdate struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	TaxID   *string `json:"taxId"`
}

// UpdateDraftRequest partial update of the draft's editable fields. Numeric
// fields are deliberately untyped: the UI may send numbers or strings, and
// non-numeric garbage collapses to zero rather than erroring.
type UpdateDraftRequest struct {
	Currency      *string      `json:"currency"`
	LineStyle     *string      `json:"lineStyle"`
	InvoiceNumber *string      `json:"invoiceNumber"`
	IssueDate     *string      `json:"issueDate"`
	DueDate       *string      `json:"dueDate"`
	From          *PartyUpdate `json:"from"`
	To            *PartyUpdate `json:"to"`
	DiscountType  *string      `json:"discountType"`
	DiscountValue any          `json:"discountValue"`
	TaxRate       any          `json:"taxRate"`
	Notes         *string      `json:"notes"`
	Terms         *string      `json:"terms"`
}

// LineItemRequest add/update body for one line item.
type LineItemRequest struct {
	Description *string `json:"description"`
	Quantity    any     `json:"quantity"`
	UnitPrice   any     `json:"unitPrice"`
}

// TotalsResponse computed totals, raw (exact decimal strings) plus formatted
// for display.
type TotalsResponse struct {
	Currency  string          `json:"currency"`
	Raw       RawTotals       `json:"raw"`
	Formatted FormattedTotals `json:"formatted"`
}

// RawTotals exact decimal values as strings.
type RawTotals struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discountAmount"`
	Taxable        string `json:"taxable"`
	TaxAmount      string `json:"taxAmount"`
	Total          string `json:"total"`
}

// FormattedTotals locale-formatted money strings.
type FormattedTotals struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discountAmount"`
	TaxAmount      string `json:"taxAmount"`
	Total          string `json:"total"`
}

// LeadResponse relay acknowledgement.
type LeadResponse struct {
	Status   string `json:"status"`
	FormType string `json:"formType"`
}
