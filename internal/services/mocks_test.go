package services_test

import (
	"feedbackboard/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

// MockFeedbackRepository is a mock implementation of repositories.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(feedback *models.Feedback) error {
	args := m.Called(feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByUsername(username string) ([]models.Feedback, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Update(id uint, title, content string) error {
	args := m.Called(id, title, content)
	return args.Error(0)
}

func (m *MockFeedbackRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, payload interface{}) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}
