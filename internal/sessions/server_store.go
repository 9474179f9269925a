package sessions

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	usernameKey   = "username"
	sessionKeyKey = "key"
)

// ServerStore keeps the username server side, keyed by a session id cookie.
type ServerStore struct {
	store *session.Store
}

// NewServerStore creates a ServerStore. A nil storage keeps sessions in memory.
func NewServerStore(storage fiber.Storage, ttl time.Duration) *ServerStore {
	return &ServerStore{
		store: session.New(session.Config{
			Expiration:     ttl,
			Storage:        storage,
			KeyLookup:      "cookie:session_id",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
			KeyGenerator:   uuid.NewString,
		}),
	}
}

func (s *ServerStore) Load(c *fiber.Ctx) (State, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}
	username, _ := sess.Get(usernameKey).(string)
	key, _ := sess.Get(sessionKeyKey).(string)
	return State{Username: username, Key: key}, nil
}

// SignIn issues a fresh session id so a pre-login id cannot be reused.
func (s *ServerStore) SignIn(c *fiber.Ctx, state State) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(usernameKey, state.Username)
	sess.Set(sessionKeyKey, state.Key)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *ServerStore) SignOut(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
