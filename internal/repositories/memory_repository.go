package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"feedbackboard/internal/models"
)

// memoryStore holds users and feedback behind one lock so that deleting a
// user and its feedback is atomic.
type memoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	feedback map[uint]models.Feedback
	nextID   uint
}

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	store *memoryStore
}

// MemoryFeedbackRepository is an in-memory implementation of FeedbackRepository.
type MemoryFeedbackRepository struct {
	store *memoryStore
}

// NewMemoryRepositories creates user and feedback repositories sharing one store.
func NewMemoryRepositories() (*MemoryUserRepository, *MemoryFeedbackRepository) {
	s := &memoryStore{
		users:    make(map[string]models.User),
		feedback: make(map[uint]models.Feedback),
	}
	return &MemoryUserRepository{store: s}, &MemoryFeedbackRepository{store: s}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.Username]; ok {
		return fmt.Errorf("username %s: %w", user.Username, ErrDuplicateKey)
	}
	u := *user
	u.Feedback = nil
	r.store.users[user.Username] = u
	return nil
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	return &user, nil
}

// Delete removes a user and all feedback it owns.
func (r *MemoryUserRepository) Delete(username string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[username]; !ok {
		return fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	for id, f := range r.store.feedback {
		if f.Username == username {
			delete(r.store.feedback, id)
		}
	}
	delete(r.store.users, username)
	return nil
}

// Create adds a new feedback and assigns the next ID. The owner must exist.
func (r *MemoryFeedbackRepository) Create(feedback *models.Feedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[feedback.Username]; !ok {
		return fmt.Errorf("failed to create feedback: owner %s does not exist", feedback.Username)
	}
	r.store.nextID++
	feedback.ID = r.store.nextID
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = feedback.CreatedAt
	r.store.feedback[feedback.ID] = *feedback
	return nil
}

// GetByID returns a feedback by its ID.
func (r *MemoryFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	feedback, ok := r.store.feedback[id]
	if !ok {
		return nil, fmt.Errorf("feedback %d: %w", id, ErrNotFound)
	}
	return &feedback, nil
}

// ListByUsername returns the user's feedback ordered by ID.
func (r *MemoryFeedbackRepository) ListByUsername(username string) ([]models.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]models.Feedback, 0)
	for _, f := range r.store.feedback {
		if f.Username == username {
			list = append(list, f)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Update modifies title and content of an existing feedback.
func (r *MemoryFeedbackRepository) Update(id uint, title, content string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	feedback, ok := r.store.feedback[id]
	if !ok {
		return fmt.Errorf("feedback %d: %w", id, ErrNotFound)
	}
	feedback.Title = title
	feedback.Content = content
	feedback.UpdatedAt = time.Now()
	r.store.feedback[id] = feedback
	return nil
}

// Delete removes a feedback by its ID.
func (r *MemoryFeedbackRepository) Delete(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.feedback[id]; !ok {
		return fmt.Errorf("feedback %d: %w", id, ErrNotFound)
	}
	delete(r.store.feedback, id)
	return nil
}
