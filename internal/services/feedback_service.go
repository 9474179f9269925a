package services

import (
	"errors"
	"fmt"

	"feedbackboard/internal/models"
	"feedbackboard/internal/repositories"
)

// FeedbackService handles business logic related to feedback.
type FeedbackService struct {
	repo   repositories.FeedbackRepository
	events EventPublisher
}

// NewFeedbackService creates a new FeedbackService. events may be nil.
func NewFeedbackService(repo repositories.FeedbackRepository, events EventPublisher) *FeedbackService {
	return &FeedbackService{
		repo:   repo,
		events: events,
	}
}

// Add creates feedback owned by username.
func (s *FeedbackService) Add(username, title, content string) (*models.Feedback, error) {
	feedback := &models.Feedback{
		Title:    title,
		Content:  content,
		Username: username,
	}
	if err := s.repo.Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to add feedback: %w", err)
	}

	publish(s.events, EventFeedbackCreated, eventPayload(feedback))
	return feedback, nil
}

// Get retrieves a single feedback by its ID.
func (s *FeedbackService) Get(id uint) (*models.Feedback, error) {
	feedback, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return feedback, nil
}

// Update replaces title and content of the feedback.
func (s *FeedbackService) Update(feedback *models.Feedback, title, content string) error {
	if err := s.repo.Update(feedback.ID, title, content); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	feedback.Title = title
	feedback.Content = content

	publish(s.events, EventFeedbackUpdated, eventPayload(feedback))
	return nil
}

// Delete deletes the feedback.
func (s *FeedbackService) Delete(feedback *models.Feedback) error {
	if err := s.repo.Delete(feedback.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	publish(s.events, EventFeedbackDeleted, eventPayload(feedback))
	return nil
}

func eventPayload(f *models.Feedback) map[string]interface{} {
	return map[string]interface{}{
		"id":       f.ID,
		"title":    f.Title,
		"username": f.Username,
	}
}
