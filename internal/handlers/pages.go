package handlers

import (
	"errors"

	"feedbackboard/internal/flash"
	"feedbackboard/internal/logger"
	"feedbackboard/internal/middleware"
	"feedbackboard/internal/sessions"
	"feedbackboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// Config returns the fiber configuration shared by the server and tests.
func Config() fiber.Config {
	return fiber.Config{
		Views:        views.New(),
		ViewsLayout:  views.Layout,
		ErrorHandler: ErrorHandler,
		UnescapePath: true,
	}
}

// render adds the session and pending flash messages to data and renders name.
func render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Current"] = sessions.Current(c)
	data["Flashes"] = flash.Pop(c)
	data["CSRF"] = middleware.CSRFToken(c)
	return c.Render(name, data)
}

// backPath is where the error pages link back to.
func backPath(c *fiber.Ctx) string {
	if state := sessions.Current(c); state.Authenticated() {
		return middleware.UserPath(state.Username)
	}
	return "/"
}

// ErrorHandler renders the 404 page for missing routes and records, and the
// 500 page for everything unexpected.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	switch {
	case code == fiber.StatusNotFound:
		c.Status(code)
		return render(c, "404", fiber.Map{"Back": backPath(c)})
	case code >= fiber.StatusInternalServerError:
		logger.Log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		c.Status(code)
		return render(c, "500", fiber.Map{"Back": backPath(c)})
	default:
		return c.Status(code).SendString(err.Error())
	}
}

// PageHandler serves the pages that are not tied to a resource.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// RegisterRoutes registers the home and unauthorized pages.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get(middleware.UnauthorizedPath, h.HandleUnauthorized)
}

// HandleHome sends visitors to the registration form.
func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	return c.Redirect("/register")
}

// HandleUnauthorized renders the page every guard refusal lands on.
func (h *PageHandler) HandleUnauthorized(c *fiber.Ctx) error {
	c.Status(fiber.StatusUnauthorized)
	return render(c, "401", fiber.Map{"Back": backPath(c)})
}
