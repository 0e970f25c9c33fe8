package application

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withMessage := &ValidationError{Message: "email and password are required"}
	if got := withMessage.Error(); got != "email and password are required" {
		t.Fatalf("expected custom message, got %q", got)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	t.Parallel()

	if (&ValidationError{}).HasErrors() {
		t.Fatalf("expected HasErrors to report false for empty error")
	}

	if !(&ValidationError{FieldErrors: map[string]string{"room_id": "required"}}).HasErrors() {
		t.Fatalf("expected HasErrors to report true when fields are present")
	}
}

func TestValidationError_Add(t *testing.T) {
	t.Parallel()

	base := &ValidationError{}
	base.add("room_id", "required")
	if got := base.FieldErrors["room_id"]; got != "required" {
		t.Fatalf("expected add to populate map, got %q", got)
	}

	base.add("session_id", "required")
	if len(base.FieldErrors) != 2 {
		t.Fatalf("expected two field errors, got %v", base.FieldErrors)
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrUnauthorized, want: "unauthorized"},
		{err: fmt.Errorf("lookup: %w", ErrNotFound), want: "not_found"},
		{err: ErrAlreadyBooked, want: "already_booked"},
		{err: ErrInvalidCredentials, want: "invalid_credentials"},
		{err: ErrTokenExpired, want: "token_expired"},
		{err: &ValidationError{}, want: "validation"},
		{err: errors.New("boom"), want: "unexpected"},
	}
	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
