package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound                 = errors.New("not found")
	ErrInvalidToken             = errors.New("invalid registration token")
	ErrAlreadyRegistered        = errors.New("already registered for this event")
	ErrDuplicateToken           = errors.New("registration token already in use")
	ErrTokenGenerationExhausted = errors.New("could not generate a unique registration token")
	ErrInvalidCredentials       = errors.New("invalid credentials")
)

// ValidationError reports every invalid input field at once. Check with
// errors.As.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
