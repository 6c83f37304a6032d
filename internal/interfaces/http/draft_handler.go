package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/application/draft"
	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/application/render"
	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/pkg/money"
)

// DraftHandler exposes the draft editing lifecycle.
type DraftHandler struct {
	drafts *draft.Service
}

// NewDraftHandler builds the handler.
func NewDraftHandler(drafts *draft.Service) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Get returns the current in-memory draft.
// GET /api/draft
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.drafts.Current())
}

// Update applies a partial edit and returns the updated draft.
// PUT /api/draft
func (h *DraftHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	return c.JSON(h.drafts.Update(in))
}

// AddItem appends a line item.
// POST /api/draft/items
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	return c.Status(fiber.StatusCreated).JSON(h.drafts.AddItem(in))
}

// UpdateItem edits one line item.
// PUT /api/draft/items/:id
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	updated, err := h.drafts.UpdateItem(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// RemoveItem deletes a line item. Removing the last remaining item (or an
// unknown id) is a no-op and still answers 200 with the unchanged draft.
// DELETE /api/draft/items/:id
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	return c.JSON(h.drafts.RemoveItem(c.Params("id")))
}

// Totals returns the computed totals, raw and formatted.
// GET /api/draft/totals
func (h *DraftHandler) Totals(c *fiber.Ctx) error {
	d, t := h.drafts.Totals()
	code := string(d.Currency)
	return c.JSON(dto.TotalsResponse{
		Currency: code,
		Raw: dto.RawTotals{
			Subtotal:       t.Subtotal.String(),
			DiscountAmount: t.DiscountAmount.String(),
			Taxable:        t.Taxable.String(),
			TaxAmount:      t.TaxAmount.String(),
			Total:          t.Total.String(),
		},
		Formatted: dto.FormattedTotals{
			Subtotal:       money.Format(t.Subtotal, code),
			DiscountAmount: money.Format(t.DiscountAmount, code),
			TaxAmount:      money.Format(t.TaxAmount, code),
			Total:          money.Format(t.Total, code),
		},
	})
}

// Preview returns the deterministic preview view model.
// GET /api/draft/preview
func (h *DraftHandler) Preview(c *fiber.Ctx) error {
	d, t := h.drafts.Totals()
	return c.JSON(render.BuildPreview(d, t))
}

// Save persists the current draft. Storage trouble is only logged, so this
// always answers 200.
// POST /api/draft/save
func (h *DraftHandler) Save(c *fiber.Ctx) error {
	h.drafts.Save(c.Context())
	return c.JSON(fiber.Map{"saved": true})
}

// Reset replaces the draft with fresh defaults and clears persistence.
// POST /api/draft/reset
func (h *DraftHandler) Reset(c *fiber.Ctx) error {
	return c.JSON(h.drafts.Reset(c.Context()))
}
