package repositories_test

import (
	"testing"

	"feedbackboard/internal/database"
	"feedbackboard/internal/models"
	"feedbackboard/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSet struct {
	users    repositories.UserRepository
	feedback repositories.FeedbackRepository
}

// implementations runs fn against the GORM (in-memory SQLite) and the
// in-memory repositories so both honour the same contract.
func implementations(t *testing.T, fn func(t *testing.T, r repoSet)) {
	t.Run("gorm", func(t *testing.T) {
		db, err := database.Open(database.Options{Driver: "sqlite", DSN: "file::memory:", LogLevel: "silent"})
		require.NoError(t, err)
		t.Cleanup(func() { database.Close(db) })
		fn(t, repoSet{
			users:    repositories.NewGORMUserRepository(db),
			feedback: repositories.NewGORMFeedbackRepository(db),
		})
	})
	t.Run("memory", func(t *testing.T) {
		users, feedback := repositories.NewMemoryRepositories()
		fn(t, repoSet{users: users, feedback: feedback})
	})
}

func newUser(username string) *models.User {
	return &models.User{
		Username:  username,
		Password:  "$2a$10$hash",
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	implementations(t, func(t *testing.T, r repoSet) {
		require.NoError(t, r.users.Create(newUser("cat1")))

		user, err := r.users.GetByUsername("cat1")
		require.NoError(t, err)
		assert.Equal(t, "cat1@example.com", user.Email)
		assert.Equal(t, "$2a$10$hash", user.Password)

		_, err = r.users.GetByUsername("nobody")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	implementations(t, func(t *testing.T, r repoSet) {
		require.NoError(t, r.users.Create(newUser("cat1")))

		dup := newUser("cat1")
		dup.Email = "other@example.com"
		err := r.users.Create(dup)
		assert.ErrorIs(t, err, repositories.ErrDuplicateKey)

		user, err := r.users.GetByUsername("cat1")
		require.NoError(t, err)
		assert.Equal(t, "cat1@example.com", user.Email, "duplicate insert must not modify the existing row")
	})
}

func TestUserRepository_DeleteCascadesFeedback(t *testing.T) {
	implementations(t, func(t *testing.T, r repoSet) {
		require.NoError(t, r.users.Create(newUser("alice")))
		require.NoError(t, r.users.Create(newUser("bob")))

		a1 := &models.Feedback{Title: "a1", Content: "one", Username: "alice"}
		a2 := &models.Feedback{Title: "a2", Content: "two", Username: "alice"}
		b1 := &models.Feedback{Title: "b1", Content: "three", Username: "bob"}
		for _, f := range []*models.Feedback{a1, a2, b1} {
			require.NoError(t, r.feedback.Create(f))
		}

		require.NoError(t, r.users.Delete("alice"))

		_, err := r.users.GetByUsername("alice")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		for _, id := range []uint{a1.ID, a2.ID} {
			_, err := r.feedback.GetByID(id)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		}
		remaining, err := r.feedback.ListByUsername("bob")
		require.NoError(t, err)
		assert.Len(t, remaining, 1)

		assert.ErrorIs(t, r.users.Delete("alice"), repositories.ErrNotFound)
	})
}

func TestFeedbackRepository_CRUD(t *testing.T) {
	implementations(t, func(t *testing.T, r repoSet) {
		require.NoError(t, r.users.Create(newUser("cat1")))

		first := &models.Feedback{Title: "Hi", Content: "Hello", Username: "cat1"}
		second := &models.Feedback{Title: "Again", Content: "More", Username: "cat1"}
		require.NoError(t, r.feedback.Create(first))
		require.NoError(t, r.feedback.Create(second))
		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		got, err := r.feedback.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hi", got.Title)
		assert.Equal(t, "cat1", got.Username)

		require.NoError(t, r.feedback.Update(first.ID, "Hi!", "Hello there"))
		got, err = r.feedback.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hi!", got.Title)
		assert.Equal(t, "Hello there", got.Content)
		assert.Equal(t, "cat1", got.Username)

		list, err := r.feedback.ListByUsername("cat1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)

		require.NoError(t, r.feedback.Delete(first.ID))
		_, err = r.feedback.GetByID(first.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		assert.ErrorIs(t, r.feedback.Delete(first.ID), repositories.ErrNotFound)
		assert.ErrorIs(t, r.feedback.Update(999, "x", "y"), repositories.ErrNotFound)
	})
}

func TestFeedbackRepository_RequiresExistingOwner(t *testing.T) {
	implementations(t, func(t *testing.T, r repoSet) {
		err := r.feedback.Create(&models.Feedback{Title: "orphan", Content: "x", Username: "ghost"})
		assert.Error(t, err)
	})
}
