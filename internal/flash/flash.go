// Package flash passes one-shot messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	cookieName = "flash"
	localsKey  = "flash"
)

// Message categories.
const (
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

// Message is a single flash message.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Add queues a message for the next rendered page. Messages already
// carried in by the request are kept.
func Add(c *fiber.Ctx, category, text string) {
	messages := append(pending(c), Message{Category: category, Text: text})
	c.Locals(localsKey, messages)

	b, err := json.Marshal(messages)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Pop returns the queued messages and clears them.
func Pop(c *fiber.Ctx) []Message {
	messages := pending(c)
	if len(messages) > 0 || c.Cookies(cookieName) != "" {
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	c.Locals(localsKey, []Message(nil))
	return messages
}

// pending returns the messages of the request: those from the incoming
// cookie plus any added since.
func pending(c *fiber.Ctx) []Message {
	if messages, ok := c.Locals(localsKey).([]Message); ok {
		return messages
	}
	var messages []Message
	if raw := c.Cookies(cookieName); raw != "" {
		if b, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
			_ = json.Unmarshal(b, &messages)
		}
	}
	c.Locals(localsKey, messages)
	return messages
}
