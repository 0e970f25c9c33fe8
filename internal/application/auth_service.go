package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthService handles login, token validation and logout against a credential store.
type AuthService struct {
	credentials    CredentialStore
	verifyPassword PasswordVerifier
	tokenGenerator func() string
	tokens         *tokenCache
	logger         *slog.Logger
}

// AuthOptions tunes token issuance.
type AuthOptions struct {
	TokenTTL  time.Duration
	MaxTokens int
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(credentials CredentialStore, verify PasswordVerifier, tokenGenerator func() string, now func() time.Time, opts AuthOptions) *AuthService {
	return NewAuthServiceWithLogger(credentials, verify, tokenGenerator, now, opts, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(credentials CredentialStore, verify PasswordVerifier, tokenGenerator func() string, now func() time.Time, opts AuthOptions, logger *slog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyPassword
	}
	if tokenGenerator == nil {
		tokenGenerator = uuid.NewString
	}
	return &AuthService{
		credentials:    credentials,
		verifyPassword: verify,
		tokenGenerator: tokenGenerator,
		tokens:         newTokenCache(opts.TokenTTL, opts.MaxTokens, now),
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate validates credentials and issues a new token.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.credentials == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}

	email := strings.TrimSpace(params.Email)
	password := params.Password

	logger := s.loggerWith(ctx, "Authenticate", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "authentication succeeded")
	}()

	if email == "" || password == "" {
		vErr := &ValidationError{Message: "email and password are required"}
		if email == "" {
			vErr.add("email", "required")
		}
		if password == "" {
			vErr.add("password", "required")
		}
		err = vErr
		return
	}

	var creds UserCredentials
	creds, err = s.credentials.GetUserCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if err = s.verifyPassword(creds.PasswordHash, password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	value := s.tokenGenerator()
	if value == "" {
		err = fmt.Errorf("token generator returned empty token")
		return
	}

	result = AuthenticateResult{User: creds.User, Token: s.tokens.Issue(value, creds.User.ID)}
	return
}

// ValidateToken verifies that token is active and returns its principal.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (principal Principal, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.credentials == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "ValidateToken", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "token validation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("principal_id", principal.UserID).DebugContext(ctx, "token validated")
	}()

	if trimmed == "" {
		err = ErrUnauthorized
		return
	}

	issued, ok, expired := s.tokens.Get(trimmed)
	switch {
	case !ok:
		err = ErrUnauthorized
		return
	case expired:
		err = ErrTokenExpired
		return
	}

	var user User
	user, err = s.credentials.GetUser(ctx, issued.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}

	principal = user.Principal()
	return
}

// RevokeToken invalidates an issued token.
func (s *AuthService) RevokeToken(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "RevokeToken", "token_provided", trimmed != "")

	if trimmed == "" || !s.tokens.Remove(trimmed) {
		logger.ErrorContext(ctx, "failed to revoke token", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
		return ErrUnauthorized
	}

	logger.InfoContext(ctx, "token revoked")
	return nil
}

// ActiveTokens reports how many tokens are currently held.
func (s *AuthService) ActiveTokens() int {
	if s == nil {
		return 0
	}
	return s.tokens.Len()
}
