package handlers

import (
	"feedbackboard/internal/middleware"
	"feedbackboard/internal/services"
	"feedbackboard/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Auth        *services.AuthService
	Users       *services.UserService
	Feedback    *services.FeedbackService
	Sessions    sessions.Store
	CSRFStorage fiber.Storage // nil keeps CSRF tokens in memory
}

// SetupRoutes resolves the session and checks the CSRF token for every
// request, then registers all routes.
func SetupRoutes(app *fiber.App, d Deps) {
	app.Use(middleware.LoadSession(d.Sessions))
	app.Use(middleware.ForgetStaleSession(d.Sessions, d.Users))
	app.Use(middleware.CSRF(d.CSRFStorage))

	NewPageHandler().RegisterRoutes(app)
	NewAuthHandler(d.Auth, d.Sessions).RegisterRoutes(app)
	NewUserHandler(d.Users, d.Feedback, d.Sessions).RegisterRoutes(app)
	NewFeedbackHandler(d.Feedback).RegisterRoutes(app)
}
