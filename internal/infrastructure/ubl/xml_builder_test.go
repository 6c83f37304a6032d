package ubl_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvally/invoicer-api/internal/application/export"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/domain/invoice"
	"github.com/grayvally/invoicer-api/internal/infrastructure/ubl"
)

func sampleInput() export.Input {
	d := entity.InvoiceDraft{
		InvoiceNumber: "INV-2026-0042",
		IssueDate:     "2026-08-29",
		DueDate:       "2026-09-05",
		Currency:      entity.CurrencyUSD,
		LineStyle:     entity.LineStyleDetailed,
		From:          entity.PartyInfo{Name: "GrayVally", Email: "hello@grayvally.com", TaxID: "TIN-1"},
		To:            entity.PartyInfo{Name: "Acme Corp"},
		Items: []entity.LineItem{
			{ID: "i1", Description: "Design sprint", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500)},
		},
		DiscountType:  entity.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
		TaxRate:       decimal.NewFromInt(5),
		Notes:         "Thank you.",
		Terms:         "Net 7.",
	}
	return export.Input{
		Draft:  d,
		Totals: invoice.ComputeTotals(d.Items, d.DiscountType, d.DiscountValue, d.TaxRate),
	}
}

func parse(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return doc
}

func TestGenerate_Document(t *testing.T) {
	data, err := ubl.NewBuilder().Generate(sampleInput())
	require.NoError(t, err)

	doc := parse(t, data)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)

	assert.Equal(t, "INV-2026-0042", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "2026-08-29", root.FindElement("cbc:IssueDate").Text())
	assert.Equal(t, "2026-09-05", root.FindElement("cbc:DueDate").Text())
	assert.Equal(t, "USD", root.FindElement("cbc:DocumentCurrencyCode").Text())
	assert.Equal(t, "Thank you.", root.FindElement("cbc:Note").Text())

	supplier := root.FindElement("cac:AccountingSupplierParty/cac:Party")
	require.NotNil(t, supplier)
	assert.Equal(t, "GrayVally", supplier.FindElement("cac:PartyName/cbc:Name").Text())
	assert.Equal(t, "TIN-1", supplier.FindElement("cac:PartyTaxScheme/cbc:CompanyID").Text())
	assert.Equal(t, "hello@grayvally.com", supplier.FindElement("cac:Contact/cbc:ElectronicMail").Text())

	lines := root.FindElements("cac:InvoiceLine")
	require.Len(t, lines, 1)
	assert.Equal(t, "1", lines[0].FindElement("cbc:ID").Text())
	assert.Equal(t, "2", lines[0].FindElement("cbc:InvoicedQuantity").Text())
	assert.Equal(t, "1000", lines[0].FindElement("cbc:LineExtensionAmount").Text())
	assert.Equal(t, "500", lines[0].FindElement("cac:Price/cbc:PriceAmount").Text())

	totals := root.FindElement("cac:LegalMonetaryTotal")
	require.NotNil(t, totals)
	payable := totals.FindElement("cbc:PayableAmount")
	assert.Equal(t, "945", payable.Text())
	assert.Equal(t, "USD", payable.SelectAttrValue("currencyID", ""))
}

func TestGenerate_OmitsEmptyOptionals(t *testing.T) {
	in := sampleInput()
	in.Draft.Notes = ""
	in.Draft.Terms = ""
	in.Draft.To = entity.PartyInfo{Name: "Bare Client"}

	data, err := ubl.NewBuilder().Generate(in)
	require.NoError(t, err)
	root := parse(t, data).Root()

	assert.Nil(t, root.FindElement("cbc:Note"))
	assert.Nil(t, root.FindElement("cac:PaymentTerms"))

	customer := root.FindElement("cac:AccountingCustomerParty/cac:Party")
	require.NotNil(t, customer)
	assert.Nil(t, customer.FindElement("cac:PostalAddress"))
	assert.Nil(t, customer.FindElement("cac:Contact"))
}

func TestGenerate_Deterministic(t *testing.T) {
	b := ubl.NewBuilder()
	first, err := b.Generate(sampleInput())
	require.NoError(t, err)
	second, err := b.Generate(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
