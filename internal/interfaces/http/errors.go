package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/application/leads"
	"github.com/grayvally/invoicer-api/internal/domain"
)

// respondError maps domain errors onto HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	var verr *leads.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "please fix the highlighted fields",
			Fields:  verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	case errors.Is(err, domain.ErrLocked):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOCKED", Message: "unlock the invoice tool first"})
	case errors.Is(err, domain.ErrWrongPIN):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "WRONG_PIN", Message: "that PIN is not right"})
	case errors.Is(err, domain.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: "could not reach the form service, please try again"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
