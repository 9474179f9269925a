package handlers

import (
	"errors"
	"fmt"

	"feedbackboard/internal/flash"
	"feedbackboard/internal/forms"
	"feedbackboard/internal/logger"
	"feedbackboard/internal/middleware"
	"feedbackboard/internal/models"
	"feedbackboard/internal/services"
	"feedbackboard/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
	store       sessions.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store sessions.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	anonymous := middleware.AnonymousOnly
	router.Get("/register", anonymous("logout to register a new account"), h.ShowRegister)
	router.Post("/register", anonymous("logout to register a new account"), h.HandleRegister)
	router.Get("/login", anonymous("You're already logged in"), h.ShowLogin)
	router.Post("/login", anonymous("You're already logged in"), h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
	router.Post("/logout", h.HandleLogout)
}

// ShowRegister renders an empty registration form.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return renderRegister(c, forms.RegisterForm{}, nil)
}

// HandleRegister creates the account and signs the session in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var form forms.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if errs := forms.Validate(&form); errs != nil {
		return renderRegister(c.Status(fiber.StatusUnprocessableEntity), form, errs)
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return renderRegister(c.Status(fiber.StatusUnprocessableEntity), form, forms.Errors{
				"username": "Username taken. Please choose another username.",
			})
		case errors.Is(err, services.ErrPasswordTooLong):
			return renderRegister(c.Status(fiber.StatusUnprocessableEntity), form, forms.Errors{
				"password": "Field cannot be longer than 72 bytes.",
			})
		}
		return err
	}

	if err := h.store.SignIn(c, signedIn(user)); err != nil {
		return err
	}
	flash.Add(c, flash.Info, fmt.Sprintf("Welcome %s!", user.FirstName))
	return c.Redirect(middleware.UserPath(user.Username))
}

// ShowLogin renders an empty login form.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderLogin(c, forms.LoginForm{}, nil)
}

// HandleLogin verifies the credentials and signs the session in.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if errs := forms.Validate(&form); errs != nil {
		return renderLogin(c.Status(fiber.StatusUnprocessableEntity), form, errs)
	}

	user, err := h.authService.Authenticate(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Log.Infow("login failed", "username", form.Username)
			return renderLogin(c.Status(fiber.StatusUnprocessableEntity), form, forms.Errors{
				"username": "Invalid username/password.",
			})
		}
		return err
	}

	if err := h.store.SignIn(c, signedIn(user)); err != nil {
		return err
	}
	flash.Add(c, flash.Info, fmt.Sprintf("Welcome %s!", user.FirstName))
	return c.Redirect(middleware.UserPath(user.Username))
}

// HandleLogout makes the session anonymous.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if sessions.Current(c).Authenticated() {
		if err := h.store.SignOut(c); err != nil {
			return err
		}
		flash.Add(c, flash.Info, "Goodbye!")
	}
	return c.Redirect("/register")
}

func renderRegister(c *fiber.Ctx, form forms.RegisterForm, errs forms.Errors) error {
	form.Password = ""
	return render(c, "register", fiber.Map{"Form": form, "Errors": errs})
}

func renderLogin(c *fiber.Ctx, form forms.LoginForm, errs forms.Errors) error {
	form.Password = ""
	return render(c, "login", fiber.Map{"Form": form, "Errors": errs})
}

func signedIn(user *models.User) sessions.State {
	return sessions.State{Username: user.Username, Key: user.SessionKey}
}
