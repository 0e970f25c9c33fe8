package application

import "errors"

var (
	// ErrUnauthorized is returned when a request carries no valid token.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested session or room does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyBooked is returned when the room is already reserved for the session.
	ErrAlreadyBooked = errors.New("application: room already booked for session")
	// ErrInvalidCredentials is returned when the supplied email and password do not match.
	ErrInvalidCredentials = errors.New("application: invalid email or password")
	// ErrTokenExpired is returned when a token outlived its validity window.
	ErrTokenExpired = errors.New("application: token expired")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	Message     string
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if v.Message != "" {
		return v.Message
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
