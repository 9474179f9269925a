// Package sessions tracks which user, if any, a browser session belongs to.
package sessions

import "github.com/gofiber/fiber/v2"

// State is the resolved session of one request: Anonymous when Username is
// empty, Authenticated(Username) otherwise.
type State struct {
	Username string
	// Key is the user's session key at sign-in. An account re-created
	// under the same username gets a new key.
	Key string
}

// Authenticated reports whether the session belongs to a user.
func (s State) Authenticated() bool {
	return s.Username != ""
}

// Owns is the guard rule: the session is authenticated as owner.
func (s State) Owns(owner string) bool {
	return s.Authenticated() && s.Username == owner
}

// Store persists the session username between requests.
type Store interface {
	// Load resolves the session of the request. A missing or invalid
	// session is Anonymous, not an error.
	Load(c *fiber.Ctx) (State, error)
	// SignIn makes the session Authenticated(state.Username).
	SignIn(c *fiber.Ctx, state State) error
	// SignOut makes the session Anonymous.
	SignOut(c *fiber.Ctx) error
}

const localsKey = "session"

// Set stores the resolved state on the request.
func Set(c *fiber.Ctx, s State) {
	c.Locals(localsKey, s)
}

// Current returns the state stored on the request by Set, Anonymous if none.
func Current(c *fiber.Ctx) State {
	if s, ok := c.Locals(localsKey).(State); ok {
		return s
	}
	return State{}
}
