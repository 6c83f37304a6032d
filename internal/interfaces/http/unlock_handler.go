package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/pkg/token"
)

// tokenTTL bounds how long an unlock token stays valid even if the browser
// keeps the session cookie alive.
const tokenTTL = 12 * time.Hour

// UnlockHandler handles the PIN prompt of the invoice tool.
type UnlockHandler struct {
	pin    string
	secret string
	issuer string
}

// NewUnlockHandler builds the handler.
func NewUnlockHandler(pin, secret, issuer string) *UnlockHandler {
	return &UnlockHandler{pin: pin, secret: secret, issuer: issuer}
}

// Unlock checks the submitted PIN and, on a match, sets the session cookie.
// POST /api/unlock
//
// The comparison is a plain string equality on purpose: this gate is a
// casual-access deterrent for an internal tool, not a security boundary.
func (h *UnlockHandler) Unlock(c *fiber.Ctx) error {
	var in dto.UnlockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	if in.PIN == "" || in.PIN != h.pin {
		return respondError(c, domain.ErrWrongPIN)
	}

	tok, err := token.Generate(h.secret, h.issuer, tokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	// Session cookie: no Expires/MaxAge, gone when the browser session ends.
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    tok,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"unlocked": true})
}
