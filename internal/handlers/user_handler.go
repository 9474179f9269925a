package handlers

import (
	"errors"
	"fmt"

	"feedbackboard/internal/flash"
	"feedbackboard/internal/forms"
	"feedbackboard/internal/middleware"
	"feedbackboard/internal/services"
	"feedbackboard/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the user page, adding feedback and deleting accounts.
type UserHandler struct {
	userService     *services.UserService
	feedbackService *services.FeedbackService
	store           sessions.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, feedbackService *services.FeedbackService, store sessions.Store) *UserHandler {
	return &UserHandler{
		userService:     userService,
		feedbackService: feedbackService,
		store:           store,
	}
}

// RegisterRoutes registers the owner-only user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	owner := middleware.OwnerOnly("username")
	router.Get("/users/:username", owner, h.HandleShow)
	router.Get("/users/:username/add", owner, h.ShowAddFeedback)
	router.Post("/users/:username/add", owner, h.HandleAddFeedback)
	router.Post("/users/:username/delete", owner, h.HandleDelete)
}

// HandleShow renders the user's details and feedback.
func (h *UserHandler) HandleShow(c *fiber.Ctx) error {
	user, err := h.userService.Profile(c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	return render(c, "user", fiber.Map{"User": user})
}

// ShowAddFeedback renders an empty feedback form.
func (h *UserHandler) ShowAddFeedback(c *fiber.Ctx) error {
	return renderAddFeedback(c, forms.FeedbackForm{}, nil)
}

// HandleAddFeedback stores the submitted feedback for the user.
func (h *UserHandler) HandleAddFeedback(c *fiber.Ctx) error {
	var form forms.FeedbackForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if errs := forms.Validate(&form); errs != nil {
		return renderAddFeedback(c.Status(fiber.StatusUnprocessableEntity), form, errs)
	}

	username := c.Params("username")
	feedback, err := h.feedbackService.Add(username, form.Title, form.Content)
	if err != nil {
		return err
	}
	flash.Add(c, flash.Info, fmt.Sprintf("feedback '%s' submitted!", feedback.Title))
	return c.Redirect(middleware.UserPath(username))
}

// HandleDelete deletes the account with its feedback and signs the session out.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Params("username")); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	if err := h.store.SignOut(c); err != nil {
		return err
	}
	sessions.Set(c, sessions.State{})
	flash.Add(c, flash.Warning, "Account has been deleted")
	return c.Redirect("/register")
}

func renderAddFeedback(c *fiber.Ctx, form forms.FeedbackForm, errs forms.Errors) error {
	username := c.Params("username")
	return render(c, "feedback", fiber.Map{
		"Action":     "Add",
		"FormAction": fmt.Sprintf("%s/add", middleware.UserPath(username)),
		"Username":   username,
		"Form":       form,
		"Errors":     errs,
	})
}
