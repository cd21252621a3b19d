// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// ErrTransport covers connection failures and timeouts.
	ErrTransport = errors.New("network error")
	// ErrDecode means the response body did not have the expected shape.
	ErrDecode = errors.New("invalid server response")
	// ErrValidation marks input rejected before any request was sent.
	ErrValidation = errors.New("validation failed")

	// Session errors.
	ErrNotRegistered = errors.New("no registered user")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError is a local, pre-flight rejection of one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ServerError is any non-2xx response. Body is surfaced as-is.
type ServerError struct {
	Method     string
	Path       string
	Body       string
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// StatusMessage converts err into the short status string shown next to
// the section that triggered it. A nil error yields "".
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		body := strings.TrimSpace(serverErr.Body)
		if body == "" {
			return fmt.Sprintf("server error (status %d)", serverErr.StatusCode)
		}
		return body
	}

	switch {
	case errors.Is(err, ErrDecode):
		return ErrDecode.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "network error: request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, ErrTransport):
		return err.Error()
	}

	return err.Error()
}
