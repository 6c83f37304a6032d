// Package ubl renders the draft as a UBL-flavoured XML document, the second
// export rendition next to the PDF.
package ubl

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/grayvally/invoicer-api/internal/application/export"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
)

// UBL 2.1 namespaces.
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// Builder implements export.XMLGenerator using etree.
type Builder struct{}

// NewBuilder creates the builder.
func NewBuilder() *Builder { return &Builder{} }

// Generate builds the Invoice document. Deterministic for a given input.
func (b *Builder) Generate(in export.Input) ([]byte, error) {
	d := in.Draft
	code := string(d.Currency)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCac)
	root.CreateAttr("xmlns:cbc", nsCbc)

	root.CreateElement("cbc:ID").SetText(d.InvoiceNumber)
	root.CreateElement("cbc:IssueDate").SetText(d.IssueDate)
	root.CreateElement("cbc:DueDate").SetText(d.DueDate)
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(code)
	if d.Notes != "" {
		root.CreateElement("cbc:Note").SetText(d.Notes)
	}

	addParty(root, "cac:AccountingSupplierParty", d.From)
	addParty(root, "cac:AccountingCustomerParty", d.To)

	if d.Terms != "" {
		terms := root.CreateElement("cac:PaymentTerms")
		terms.CreateElement("cbc:Note").SetText(d.Terms)
	}

	for i, it := range d.Items {
		addLine(root, i+1, it, code)
	}

	totals := root.CreateElement("cac:LegalMonetaryTotal")
	addAmount(totals, "cbc:LineExtensionAmount", in.Totals.Subtotal.String(), code)
	addAmount(totals, "cbc:AllowanceTotalAmount", in.Totals.DiscountAmount.String(), code)
	addAmount(totals, "cbc:TaxExclusiveAmount", in.Totals.Taxable.String(), code)
	addAmount(totals, "cbc:TaxInclusiveAmount", in.Totals.Taxable.Add(in.Totals.TaxAmount).String(), code)
	addAmount(totals, "cbc:PayableAmount", in.Totals.Total.String(), code)

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serialize document: %w", err)
	}
	return data, nil
}

func addParty(root *etree.Element, tag string, p entity.PartyInfo) {
	wrapper := root.CreateElement(tag)
	party := wrapper.CreateElement("cac:Party")

	name := party.CreateElement("cac:PartyName")
	name.CreateElement("cbc:Name").SetText(p.Name)

	if p.Address != "" {
		addr := party.CreateElement("cac:PostalAddress")
		addr.CreateElement("cbc:StreetName").SetText(p.Address)
	}
	if p.TaxID != "" {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		scheme.CreateElement("cbc:CompanyID").SetText(p.TaxID)
	}
	if p.Email != "" || p.Phone != "" || p.Website != "" {
		contact := party.CreateElement("cac:Contact")
		if p.Phone != "" {
			contact.CreateElement("cbc:Telephone").SetText(p.Phone)
		}
		if p.Email != "" {
			contact.CreateElement("cbc:ElectronicMail").SetText(p.Email)
		}
		if p.Website != "" {
			contact.CreateElement("cbc:Note").SetText(p.Website)
		}
	}
}

func addLine(root *etree.Element, seq int, it entity.LineItem, code string) {
	line := root.CreateElement("cac:InvoiceLine")
	line.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", seq))

	qty := line.CreateElement("cbc:InvoicedQuantity")
	qty.SetText(it.Quantity.String())

	addAmount(line, "cbc:LineExtensionAmount", it.Amount().String(), code)

	item := line.CreateElement("cac:Item")
	item.CreateElement("cbc:Description").SetText(it.Description)

	price := line.CreateElement("cac:Price")
	addAmount(price, "cbc:PriceAmount", it.UnitPrice.String(), code)
}

func addAmount(parent *etree.Element, tag, value, code string) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", code)
	el.SetText(value)
}
