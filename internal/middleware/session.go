package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	SessionCookie = "cart_session"
	SessionHeader = "X-Cart-Session"
	sessionLocal  = "cart_session"
)

// CartSession resolves the caller's cart session from the cookie or the
// header, issuing a new one when neither holds a valid id. The id is echoed
// back in both so browser and API clients can keep using it.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := resolveSession(c)

		c.Locals(sessionLocal, id)
		c.Set(SessionHeader, id)
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
		})
		return c.Next()
	}
}

// resolveSession returns a copy of the first valid uuid among the cookie and
// the header. Fiber's request strings are only valid until the handler returns,
// and the id outlives the request as a cart store key.
func resolveSession(c *fiber.Ctx) string {
	for _, candidate := range []string{c.Cookies(SessionCookie), c.Get(SessionHeader)} {
		if _, err := uuid.Parse(candidate); err == nil {
			return utils.CopyString(candidate)
		}
	}
	return uuid.New().String()
}

// SessionID returns the id resolved by CartSession.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}
