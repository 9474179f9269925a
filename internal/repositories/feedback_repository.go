package repositories

import "feedbackboard/internal/models"

// FeedbackRepository defines the interface for feedback data access.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetByID(id uint) (*models.Feedback, error)
	ListByUsername(username string) ([]models.Feedback, error)
	// Update changes title and content only; the owner is immutable.
	Update(id uint, title, content string) error
	Delete(id uint) error
}
