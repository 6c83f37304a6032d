package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/pkg/token"
)

// SessionCookie carries the unlock token. Set without Max-Age/Expires so the
// browser drops it when the session ends, mirroring a session-storage flag.
const SessionCookie = "gv_invoice_session"

// UnlockMiddleware gates the invoice tool routes on a valid unlock token.
//
// This is not authentication: the PIN is known to everyone on
// the team and the whole gate exists only to keep the tool out of casual
// reach. Do not hang any real access-control decision off this check.
func UnlockMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookie)
		if cookie == "" {
			return respondError(c, domain.ErrLocked)
		}
		if err := token.Verify(secret, cookie); err != nil {
			return respondError(c, domain.ErrLocked)
		}
		return c.Next()
	}
}
