package models

import "errors"

// Application-wide standard errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input data")

	// User & authentication
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Tokens
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Invite codes
	ErrInviteCodeNotFound      = errors.New("invite code not found")
	ErrInviteCodeExhausted     = errors.New("invite code has no uses left")
	ErrInviteCodeExpired       = errors.New("invite code has expired")
	ErrInviteCodeInactive      = errors.New("invite code is inactive")
	ErrInviteCodeAlreadyExists = errors.New("invite code already exists")
)

// ValidationError is a shape violation whose message is safe to show to the caller.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError builds a ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
