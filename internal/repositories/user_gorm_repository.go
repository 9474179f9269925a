package repositories

import (
	"errors"
	"fmt"

	"feedbackboard/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. A taken username yields ErrDuplicateKey.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Omit("Feedback").Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("username %s: %w", user.Username, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// Delete removes the user and its feedback in one transaction.
func (r *GORMUserRepository) Delete(username string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&models.Feedback{}).Error; err != nil {
			return fmt.Errorf("failed to delete feedback of user %s: %w", username, err)
		}
		res := tx.Delete(&models.User{}, "username = ?", username)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user %s: %w", username, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil
	})
}
