package sessions

import (
	"fmt"
	"time"

	"feedbackboard/internal/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the name of the cookie holding the signed session token.
const TokenCookie = "session_token"

// TokenStore keeps the username client side in an HS256-signed JWT cookie.
type TokenStore struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore signing with secret.
func NewTokenStore(secret string, ttl time.Duration) *TokenStore {
	return &TokenStore{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Load treats a missing, expired or forged token as Anonymous.
func (s *TokenStore) Load(c *fiber.Ctx) (State, error) {
	raw := c.Cookies(TokenCookie)
	if raw == "" {
		return State{}, nil
	}
	claims, err := s.parse(raw)
	if err != nil {
		logger.Log.Debugw("discarding session token", "error", err)
		expire(c)
		return State{}, nil
	}
	return State{Username: claims.Subject, Key: claims.Id}, nil
}

func (s *TokenStore) SignIn(c *fiber.Ctx, state State) error {
	token, expires, err := s.issue(state)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

func (s *TokenStore) SignOut(c *fiber.Ctx) error {
	expire(c)
	return nil
}

func expire(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (s *TokenStore) issue(state State) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   state.Username,
		Id:        state.Key,
		IssuedAt:  now.Unix(),
		ExpiresAt: expires.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expires, nil
}

func (s *TokenStore) parse(raw string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
