package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authorized, token failed")
	ErrForbidden          = errors.New("not authorized to modify this note")
	ErrNoteNotFound       = errors.New("note not found")
)

// Invalid returns an ErrValidation carrying a caller-facing detail message.
func Invalid(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// ValidationError describes why input was rejected. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
