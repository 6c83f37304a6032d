// Package pdf implements the paginated invoice document using Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logo + issuer block        │  INVOICE # + dates    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: recipient name + contact lines                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Description [| Qty | Unit Price | Amount]           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Discount / Tax / TOTAL                  │
//	│  NOTES · TERMS                                              │
//	└─────────────────────────────────────────────────────────────┘
//
// The detailed/simple column split and every printed string come from the
// same view model the on-screen preview renders, so the two stay consistent.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/grayvally/invoicer-api/internal/application/export"
	"github.com/grayvally/invoicer-api/internal/application/render"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 38, Green: 38, Blue: 38}
	colorAccent  = &props.Color{Red: 13, Green: 110, Blue: 253}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Generator implements export.PDFGenerator using Maroto v2.
type Generator struct{}

// NewGenerator builds the generator.
func NewGenerator() *Generator { return &Generator{} }

// Generate lays out the document and returns its bytes.
func (g *Generator) Generate(_ context.Context, in export.Input) ([]byte, error) {
	view := render.BuildPreview(in.Draft, in.Totals)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+view.InvoiceNumber, true).
		WithAuthor(view.From.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(view, in))
	m.AddRows(line.NewRow(2, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(billToRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(view))
	for _, r := range tableRows(view) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRows(view)...)

	for _, r := range noteRows("Notes", view.Notes) {
		m.AddRows(r)
	}
	for _, r := range noteRows("Terms", view.Terms) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: logo + issuer block (left), invoice number + dates (right).
func headerRow(view render.Preview, in export.Input) core.Row {
	issuerCols := 7
	cols := make([]core.Col, 0, 3)

	if len(in.Logo) > 0 {
		ext := extension.Png
		if in.LogoExt == "jpg" {
			ext = extension.Jpg
		}
		cols = append(cols, col.New(2).Add(
			image.NewFromBytes(in.Logo, ext, props.Rect{Percent: 90, Center: true}),
		))
		issuerCols = 5
	}

	issuer := []core.Component{
		text.New(view.From.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	top := 8.0
	for _, l := range view.From.Lines {
		issuer = append(issuer, text.New(l, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}
	cols = append(cols, col.New(issuerCols).Add(issuer...))

	cols = append(cols, col.New(5).Add(
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorAccent, Top: 1,
		}),
		text.New(view.InvoiceNumber, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Issue date: "+view.IssueDate, props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
		text.New("Due date: "+view.DueDate, props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}),
	))

	return row.New(30).Add(cols...)
}

// billToRow: recipient block.
func billToRow(view render.Preview) core.Row {
	comps := []core.Component{
		text.New("BILL TO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
		}),
		text.New(nonEmpty(view.To.Name, "—"), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 6,
		}),
	}
	top := 11.0
	for _, l := range view.To.Lines {
		comps = append(comps, text.New(l, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}
	h := top + 3
	return row.New(h).Add(col.New(12).Add(comps...))
}

// tableHeaderRow: column captions; the simple style only has a description
// column spanning the page.
func tableHeaderRow(view render.Preview) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if view.LineStyle == string(entity.LineStyleSimple) {
		return row.New(8).Add(h("Description", 12, align.Left))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Unit Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableRows: one row per line item.
func tableRows(view render.Preview) []core.Row {
	result := make([]core.Row, 0, len(view.Rows))
	for _, r := range view.Rows {
		if view.LineStyle == string(entity.LineStyleSimple) {
			result = append(result, row.New(7).Add(
				col.New(12).Add(text.New(r.Description, props.Text{
					Size: 8, Align: align.Left, Top: 1, Left: 1,
				})),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(r.Description, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(r.Quantity, props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(r.UnitPrice, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New(r.Amount, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRows: right-aligned totals block, grand total in bold accent.
func totalsRows(view render.Preview) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	rows := []core.Row{
		row.New(6).Add(
			col.New(5),
			col.New(4).Add(label("Subtotal:")),
			col.New(3).Add(value(view.Totals.Subtotal)),
		),
		row.New(6).Add(
			col.New(5),
			col.New(4).Add(label(view.Totals.DiscountLabel+":")),
			col.New(3).Add(value(view.Totals.Discount)),
		),
		row.New(6).Add(
			col.New(5),
			col.New(4).Add(label(view.Totals.TaxLabel+":")),
			col.New(3).Add(value(view.Totals.Tax)),
		),
		row.New(9).Add(
			col.New(5),
			col.New(4).Add(text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorAccent, Top: 1, Right: 2,
			})),
			col.New(3).Add(text.New(view.Totals.Total, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorAccent, Top: 1, Right: 1,
			})),
		),
	}
	return rows
}

// noteRows: a labelled free-text block; skipped entirely when the text is
// empty.
func noteRows(label, body string) []core.Row {
	if body == "" {
		return nil
	}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 3,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(body, props.Text{Size: 8, Color: colorGray, Top: 0.5, Left: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
