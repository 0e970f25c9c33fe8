package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized       = errors.New("not logged in or token expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyBooked      = errors.New("room already booked for this session")
	ErrNotFound           = errors.New("not found")
)

const (
	codeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	codeAlreadyBooked      = "BOOKING_ALREADY_BOOKED"
)

// APIError is a non-2xx response from the booking server.
type APIError struct {
	StatusCode  int
	Code        string
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the response onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.Code == codeInvalidCredentials:
		return ErrInvalidCredentials
	case e.Code == codeAlreadyBooked, e.StatusCode == http.StatusConflict:
		return ErrAlreadyBooked
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
