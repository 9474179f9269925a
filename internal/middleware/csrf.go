package middleware

import (
	"time"

	"feedbackboard/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	// CSRFCookie holds the token issued to the browser.
	CSRFCookie = "csrf_"
	// CSRFField is the hidden form field every POST must echo the token in.
	CSRFField = "_csrf"

	csrfContextKey = "csrf"
)

// CSRF refuses unsafe requests whose form token does not match the cookie
// and a token held in storage. A nil storage keeps tokens in memory.
func CSRF(storage fiber.Storage) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFField,
		CookieName:     CSRFCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     time.Hour,
		Storage:        storage,
		ContextKey:     csrfContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.Log.Warnw("csrf check failed", "method", c.Method(), "path", c.Path(), "error", err)
			return fiber.ErrForbidden
		},
	})
}

// CSRFToken is the token the rendered forms must submit.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(csrfContextKey).(string)
	return token
}
