package repositories

import "feedbackboard/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	// Delete removes the user and every feedback it owns in one transaction.
	Delete(username string) error
}
