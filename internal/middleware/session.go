package middleware

import (
	"fmt"
	"net/url"

	"feedbackboard/internal/flash"
	"feedbackboard/internal/logger"
	"feedbackboard/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

// UnauthorizedPath is where every guard refusal is redirected.
const UnauthorizedPath = "/401"

// LoadSession resolves the session once per request and stores it with
// sessions.Set. A store failure is logged and treated as anonymous.
func LoadSession(store sessions.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := store.Load(c)
		if err != nil {
			logger.Log.Warnw("failed to load session", "path", c.Path(), "error", err)
			state = sessions.State{}
		}
		sessions.Set(c, state)
		return c.Next()
	}
}

// ActiveUsers tells whether a session still belongs to a stored account.
type ActiveUsers interface {
	Active(username, key string) (bool, error)
}

// ForgetStaleSession signs out sessions whose account was deleted or
// re-created since sign-in, so they are Anonymous for the rest of the chain.
func ForgetStaleSession(store sessions.Store, users ActiveUsers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := sessions.Current(c)
		if !state.Authenticated() {
			return c.Next()
		}
		active, err := users.Active(state.Username, state.Key)
		if err != nil {
			return err
		}
		if !active {
			logger.Log.Infow("stale session", "username", state.Username, "path", c.Path())
			if err := store.SignOut(c); err != nil {
				return err
			}
			sessions.Set(c, sessions.State{})
		}
		return c.Next()
	}
}

// AnonymousOnly refuses the route to authenticated sessions with a warning.
func AnonymousOnly(warning string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := sessions.Current(c)
		if state.Authenticated() {
			flash.Add(c, flash.Warning, warning)
			return c.Redirect(UserPath(state.Username))
		}
		return c.Next()
	}
}

// OwnerOnly applies the guard rule to the user named by the route param.
func OwnerOnly(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sessions.Current(c).Owns(c.Params(param)) {
			return Deny(c)
		}
		return c.Next()
	}
}

// Deny is the single refusal used for every guard failure.
func Deny(c *fiber.Ctx) error {
	logger.Log.Infow("access denied",
		"path", c.Path(),
		"method", c.Method(),
		"session_user", sessions.Current(c).Username,
	)
	flash.Add(c, flash.Danger, "Oops! You don't have access to this page")
	return c.Redirect(UnauthorizedPath)
}

// UserPath is the page of a user.
func UserPath(username string) string {
	return fmt.Sprintf("/users/%s", url.PathEscape(username))
}
