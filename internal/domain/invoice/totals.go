// Package invoice holds the pure billing arithmetic of the draft tool.
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// Totals is the derived money summary of a draft.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Taxable        decimal.Decimal `json:"taxable"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, discount, tax and grand total from the line
// items and the discount/tax configuration. Pure and order-independent across
// items; no display rounding happens here, that belongs to the formatting
// layer.
//
// The discount amount is NOT capped at the subtotal: a large fixed discount
// legitimately shows as exceeding it. Only the taxable base is floored at
// zero, so tax can never be charged on a negative base and the grand total
// can never go below zero.
func ComputeTotals(
	items []entity.LineItem,
	discountType entity.DiscountType,
	discountValue decimal.Decimal,
	taxRate decimal.Decimal,
) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}

	value := money.ClampNonNegative(discountValue)
	var discount decimal.Decimal
	if discountType == entity.DiscountFixed {
		discount = value
	} else {
		discount = subtotal.Mul(value).Div(hundred)
	}

	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax := taxable.Mul(money.ClampNonNegative(taxRate)).Div(hundred)

	total := taxable.Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Taxable:        taxable,
		TaxAmount:      tax,
		Total:          total,
	}
}
