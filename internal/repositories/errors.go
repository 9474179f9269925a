package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert collides with a unique key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// isDuplicateKey reports whether err is a unique constraint violation.
// Drivers that predate gorm's error translation are matched on their message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
