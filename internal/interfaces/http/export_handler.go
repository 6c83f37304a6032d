package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/application/export"
)

// ExportHandler serves the downloadable invoice artifacts.
type ExportHandler struct {
	exports *export.Service
}

// NewExportHandler builds the handler.
func NewExportHandler(exports *export.Service) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// PDF streams the paginated PDF document.
// GET /api/draft/export.pdf
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.exports.InvoicePDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// XML streams the UBL-flavoured XML document.
// GET /api/draft/export.xml
func (h *ExportHandler) XML(c *fiber.Ctx) error {
	data, filename, err := h.exports.InvoiceXML(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
