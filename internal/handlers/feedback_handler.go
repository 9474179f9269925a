package handlers

import (
	"errors"
	"fmt"

	"feedbackboard/internal/flash"
	"feedbackboard/internal/forms"
	"feedbackboard/internal/middleware"
	"feedbackboard/internal/models"
	"feedbackboard/internal/services"
	"feedbackboard/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

const feedbackKey = "feedback"

// FeedbackHandler handles editing and deleting a single feedback.
type FeedbackHandler struct {
	service *services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

// RegisterRoutes registers the feedback routes; all require the owner.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/feedback/:id/update", h.requireOwner, h.ShowUpdate)
	router.Post("/feedback/:id/update", h.requireOwner, h.HandleUpdate)
	router.Post("/feedback/:id/delete", h.requireOwner, h.HandleDelete)
}

// requireOwner loads the feedback named by :id and applies the guard rule to
// its owner. Anonymous sessions are refused before the lookup.
func (h *FeedbackHandler) requireOwner(c *fiber.Ctx) error {
	state := sessions.Current(c)
	if !state.Authenticated() {
		return middleware.Deny(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}
	feedback, err := h.service.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrFeedbackNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	if !state.Owns(feedback.Username) {
		return middleware.Deny(c)
	}

	c.Locals(feedbackKey, feedback)
	return c.Next()
}

func owned(c *fiber.Ctx) *models.Feedback {
	return c.Locals(feedbackKey).(*models.Feedback)
}

// ShowUpdate renders the edit form filled with the stored values.
func (h *FeedbackHandler) ShowUpdate(c *fiber.Ctx) error {
	feedback := owned(c)
	return renderUpdateFeedback(c, feedback, forms.FeedbackForm{
		Title:   feedback.Title,
		Content: feedback.Content,
	}, nil)
}

// HandleUpdate stores the new title and content.
func (h *FeedbackHandler) HandleUpdate(c *fiber.Ctx) error {
	feedback := owned(c)

	var form forms.FeedbackForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	if errs := forms.Validate(&form); errs != nil {
		return renderUpdateFeedback(c.Status(fiber.StatusUnprocessableEntity), feedback, form, errs)
	}

	if err := h.service.Update(feedback, form.Title, form.Content); err != nil {
		if errors.Is(err, services.ErrFeedbackNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	flash.Add(c, flash.Info, fmt.Sprintf("feedback '%s' updated!", feedback.Title))
	return c.Redirect(middleware.UserPath(feedback.Username))
}

// HandleDelete deletes the feedback.
func (h *FeedbackHandler) HandleDelete(c *fiber.Ctx) error {
	feedback := owned(c)
	if err := h.service.Delete(feedback); err != nil {
		if errors.Is(err, services.ErrFeedbackNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	flash.Add(c, flash.Info, fmt.Sprintf("feedback '%s' deleted", feedback.Title))
	return c.Redirect(middleware.UserPath(feedback.Username))
}

func renderUpdateFeedback(c *fiber.Ctx, feedback *models.Feedback, form forms.FeedbackForm, errs forms.Errors) error {
	return render(c, "feedback", fiber.Map{
		"Action":     "Edit",
		"FormAction": fmt.Sprintf("/feedback/%d/update", feedback.ID),
		"Username":   feedback.Username,
		"Form":       form,
		"Errors":     errs,
	})
}
