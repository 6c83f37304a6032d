package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/application/leads"
	"github.com/grayvally/invoicer-api/internal/domain"
)

// LeadHandler takes website form submissions and hands them to the relay.
type LeadHandler struct {
	leads *leads.Service
}

// NewLeadHandler builds the handler.
func NewLeadHandler(svc *leads.Service) *LeadHandler {
	return &LeadHandler{leads: svc}
}

// Submit validates and relays one submission.
// POST /api/leads/:formType
func (h *LeadHandler) Submit(c *fiber.Ctx) error {
	formType := c.Params("formType")

	fields := make(map[string]string)
	if err := c.BodyParser(&fields); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}

	if err := h.leads.Submit(c.Context(), formType, fields); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.LeadResponse{Status: "sent", FormType: formType})
}
