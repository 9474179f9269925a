package services

import (
	"errors"
	"fmt"

	"feedbackboard/internal/logger"
	"feedbackboard/internal/models"
	"feedbackboard/internal/repositories"
)

// UserService reads and deletes accounts.
type UserService struct {
	userRepo     repositories.UserRepository
	feedbackRepo repositories.FeedbackRepository
	events       EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(userRepo repositories.UserRepository, feedbackRepo repositories.FeedbackRepository, events EventPublisher) *UserService {
	return &UserService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		events:       events,
	}
}

// Profile returns the user with its feedback attached.
func (s *UserService) Profile(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	feedback, err := s.feedbackRepo.ListByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	user.Feedback = feedback
	return user, nil
}

// Active reports whether username is a stored user whose session key is key.
// A session of a deleted account never matches, even after the username is
// registered again.
func (s *UserService) Active(username, key string) (bool, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	return user.SessionKey == key, nil
}

// Delete removes the account together with all of its feedback.
func (s *UserService) Delete(username string) error {
	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Log.Infow("user deleted", "username", username)
	publish(s.events, EventUserDeleted, map[string]interface{}{"username": username})
	return nil
}
