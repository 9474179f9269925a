package flash_test

import (
	"testing"

	"feedbackboard/internal/flash"
	"feedbackboard/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestFlash_SurvivesOneRedirect(t *testing.T) {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		flash.Add(c, flash.Info, "Welcome C!")
		flash.Add(c, flash.Warning, "second")
		return c.Redirect("/show")
	})
	app.Get("/show", func(c *fiber.Ctx) error {
		return c.JSON(flash.Pop(c))
	})

	client := testutil.NewClient(t, app)
	resp := client.Get("/set")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	body := testutil.Body(t, client.Get("/show"))
	assert.JSONEq(t, `[{"c":"info","t":"Welcome C!"},{"c":"warning","t":"second"}]`, body)

	// Consumed: the next page has nothing to show.
	assert.Equal(t, "null", testutil.Body(t, client.Get("/show")))
}

func TestFlash_KeepsUnshownMessagesAcrossRedirects(t *testing.T) {
	app := fiber.New()
	app.Get("/register", func(c *fiber.Ctx) error {
		flash.Add(c, flash.Warning, "You're already logged in")
		return c.Redirect("/users/bob")
	})
	app.Get("/users/bob", func(c *fiber.Ctx) error {
		flash.Add(c, flash.Danger, "no access")
		return c.Redirect("/401")
	})
	app.Get("/401", func(c *fiber.Ctx) error {
		return c.JSON(flash.Pop(c))
	})

	client := testutil.NewClient(t, app)
	client.Get("/register")
	client.Get("/users/bob")

	body := testutil.Body(t, client.Get("/401"))
	assert.JSONEq(t, `[{"c":"warning","t":"You're already logged in"},{"c":"danger","t":"no access"}]`, body)
	assert.Empty(t, client.Cookie("flash"))
}

func TestFlash_PopInSameRequestClearsCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		flash.Add(c, flash.Info, "shown now")
		return c.JSON(flash.Pop(c))
	})

	client := testutil.NewClient(t, app)
	body := testutil.Body(t, client.Get("/"))

	assert.JSONEq(t, `[{"c":"info","t":"shown now"}]`, body)
	assert.Empty(t, client.Cookie("flash"))
}
