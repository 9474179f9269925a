package services

import "errors"

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrPasswordTooLong    = errors.New("password longer than 72 bytes")
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrUserNotFound       = errors.New("user not found")
	ErrFeedbackNotFound   = errors.New("feedback not found")
)
