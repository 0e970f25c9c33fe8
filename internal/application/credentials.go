package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// CredentialStore exposes user credential lookup operations required by the auth service.
type CredentialStore interface {
	GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error)
	GetUser(ctx context.Context, id string) (User, error)
}

// StaticCredentialStore serves a single configured account. Email lookups are
// case-insensitive.
type StaticCredentialStore struct {
	credentials UserCredentials
	emailKey    string
}

// NewStaticCredentialStore wraps an already hashed credential.
func NewStaticCredentialStore(user User, passwordHash string) *StaticCredentialStore {
	user.Email = strings.TrimSpace(user.Email)
	return &StaticCredentialStore{
		credentials: UserCredentials{User: user, PasswordHash: passwordHash},
		emailKey:    foldEmail(user.Email),
	}
}

// NewDemoCredentialStore hashes password and builds a store for the demo account.
func NewDemoCredentialStore(email, password, displayName string, params Argon2idParams) (*StaticCredentialStore, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("demo credential requires email and password")
	}
	hash, err := CreatePasswordHash(password, params)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+foldEmail(email))).String()
	user := User{ID: id, Email: email, DisplayName: strings.TrimSpace(displayName)}
	if user.DisplayName == "" {
		user.DisplayName = email
	}
	return NewStaticCredentialStore(user, hash), nil
}

// GetUserCredentialsByEmail returns the credential when email matches.
func (s *StaticCredentialStore) GetUserCredentialsByEmail(_ context.Context, email string) (UserCredentials, error) {
	if s == nil || foldEmail(email) != s.emailKey {
		return UserCredentials{}, ErrNotFound
	}
	return s.credentials, nil
}

// GetUser returns the configured account when id matches.
func (s *StaticCredentialStore) GetUser(_ context.Context, id string) (User, error) {
	if s == nil || id != s.credentials.User.ID {
		return User{}, ErrNotFound
	}
	return s.credentials.User, nil
}

func foldEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
