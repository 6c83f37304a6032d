package render_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvally/invoicer-api/internal/application/render"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/domain/invoice"
)

func sampleDraft() entity.InvoiceDraft {
	return entity.InvoiceDraft{
		InvoiceNumber: "INV-2026-0042",
		IssueDate:     "2026-08-29",
		DueDate:       "2026-09-05",
		Currency:      entity.CurrencyUSD,
		LineStyle:     entity.LineStyleDetailed,
		From: entity.PartyInfo{
			Name:    "GrayVally",
			Address: "12 Harbor Lane\nDhaka",
			Email:   "hello@grayvally.com",
			TaxID:   "TIN-123",
		},
		To: entity.PartyInfo{Name: "Acme Corp"},
		Items: []entity.LineItem{
			{ID: "i1", Description: "Design sprint", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500)},
			{ID: "i2", Description: "Hosting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80)},
		},
		DiscountType:  entity.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
		TaxRate:       decimal.NewFromInt(5),
		Notes:         "Thank you.",
		Terms:         "Net 7.",
	}
}

func buildPreview(d entity.InvoiceDraft) render.Preview {
	return render.BuildPreview(d, invoice.ComputeTotals(d.Items, d.DiscountType, d.DiscountValue, d.TaxRate))
}

func TestBuildPreview_Detailed(t *testing.T) {
	p := buildPreview(sampleDraft())

	assert.Equal(t, []string{"Description", "Qty", "Unit Price", "Amount"}, p.Columns)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, "Design sprint", p.Rows[0].Description)
	assert.Equal(t, "2", p.Rows[0].Quantity)
	assert.NotEmpty(t, p.Rows[0].UnitPrice)
	assert.NotEmpty(t, p.Rows[0].Amount)

	assert.Equal(t, "Discount (10%)", p.Totals.DiscountLabel)
	assert.Equal(t, "Tax (5%)", p.Totals.TaxLabel)
	assert.Contains(t, p.Totals.Total, "1,020.60") // 1080 - 108, taxed 5%

	assert.Equal(t, "GrayVally", p.From.Name)
	assert.Equal(t, []string{"12 Harbor Lane", "Dhaka", "hello@grayvally.com", "Tax ID: TIN-123"}, p.From.Lines)
	assert.Empty(t, p.To.Lines)
}

func TestBuildPreview_Simple(t *testing.T) {
	d := sampleDraft()
	d.LineStyle = entity.LineStyleSimple
	p := buildPreview(d)

	assert.Equal(t, []string{"Description"}, p.Columns)
	require.Len(t, p.Rows, 2)
	assert.Empty(t, p.Rows[0].Quantity)
	assert.Empty(t, p.Rows[0].UnitPrice)
	assert.Empty(t, p.Rows[0].Amount)

	// Totals still show real amounts regardless of the line style.
	assert.NotEmpty(t, p.Totals.Total)
}

func TestBuildPreview_FixedDiscountLabel(t *testing.T) {
	d := sampleDraft()
	d.DiscountType = entity.DiscountFixed
	d.DiscountValue = decimal.NewFromInt(50)
	p := buildPreview(d)

	assert.Equal(t, "Discount", p.Totals.DiscountLabel, "fixed discounts get no percent suffix")
}

func TestBuildPreview_OmitsEmptyNotesAndTerms(t *testing.T) {
	d := sampleDraft()
	d.Notes = ""
	d.Terms = ""
	p := buildPreview(d)

	assert.Empty(t, p.Notes)
	assert.Empty(t, p.Terms)
}

// Same snapshot in, same view model out.
func TestBuildPreview_Deterministic(t *testing.T) {
	d := sampleDraft()
	assert.Equal(t, buildPreview(d), buildPreview(d))
}
