package repositories

import (
	"errors"
	"fmt"

	"feedbackboard/internal/models"

	"gorm.io/gorm"
)

// GORMFeedbackRepository is a GORM implementation of FeedbackRepository.
type GORMFeedbackRepository struct {
	db *gorm.DB
}

// NewGORMFeedbackRepository creates a new instance of GORMFeedbackRepository.
func NewGORMFeedbackRepository(db *gorm.DB) *GORMFeedbackRepository {
	return &GORMFeedbackRepository{
		db: db,
	}
}

// Create inserts a new feedback row; the database assigns the ID.
func (r *GORMFeedbackRepository) Create(feedback *models.Feedback) error {
	feedback.ID = 0
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByID retrieves a single feedback by its ID.
func (r *GORMFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get feedback by ID %d: %w", id, err)
	}
	return &feedback, nil
}

// ListByUsername returns the user's feedback, oldest first.
func (r *GORMFeedbackRepository) ListByUsername(username string) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.Where("username = ?", username).Order("id").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback of user %s: %w", username, err)
	}
	return feedback, nil
}

// Update sets title and content of an existing feedback.
func (r *GORMFeedbackRepository) Update(id uint, title, content string) error {
	res := r.db.Model(&models.Feedback{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update feedback %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("feedback %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a feedback by its ID.
func (r *GORMFeedbackRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete feedback %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("feedback %d: %w", id, ErrNotFound)
	}
	return nil
}
