package services

import (
	"errors"
	"fmt"

	"feedbackboard/internal/logger"
	"feedbackboard/internal/models"
	"feedbackboard/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// AuthService registers users and verifies their credentials.
type AuthService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
	cost     int
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, cost int) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		events:   events,
		cost:     cost,
	}
}

// Register hashes the password and stores the new user. A taken username
// yields ErrUsernameTaken and leaves the store unchanged.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:   in.Username,
		Password:   string(hashedPassword),
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		SessionKey: uuid.NewString(),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Log.Infow("user registered", "username", user.Username)
	publish(s.events, EventUserRegistered, map[string]interface{}{"username": user.Username})
	return user, nil
}

// Authenticate returns the user iff password matches the stored hash.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
