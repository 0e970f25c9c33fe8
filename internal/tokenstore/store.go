// Package tokenstore keeps the CLI's bearer token in a private TOML file.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	storeDirMode    = 0o700
	tokenFileMode   = 0o600
	tempFilePattern = ".token-*.toml.tmp"

	currentSchemaVersion = 1
)

// ErrNoToken is returned by Load when no token has been stored.
var ErrNoToken = errors.New("no stored token")

// Credential is the token issued by the server at login.
type Credential struct {
	Server    string
	Token     string
	Email     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the credential has an expiry at or before now.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type fileSchema struct {
	Version   int       `toml:"version"`
	Server    string    `toml:"server"`
	Token     string    `toml:"token"`
	Email     string    `toml:"email,omitempty"`
	UserID    string    `toml:"user_id,omitempty"`
	ExpiresAt time.Time `toml:"expires_at,omitempty"`
}

func (f *fileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = currentSchemaVersion
	}
}

func (f fileSchema) validateVersion() error {
	if f.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported token file schema version %d (current %d)", f.Version, currentSchemaVersion)
	}
	return nil
}

type Store struct {
	path string
	mu   sync.RWMutex
}

func New(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Path() string {
	return s.path
}

// Save replaces the stored credential atomically.
func (s *Store) Save(ctx context.Context, cred Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(cred.Token) == "" {
		return errors.New("token is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := fileSchema{
		Server:    cred.Server,
		Token:     cred.Token,
		Email:     cred.Email,
		UserID:    cred.UserID,
		ExpiresAt: cred.ExpiresAt.UTC(),
	}
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tempFile.Chmod(tokenFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp token file: %w", err)
	}
	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	cleanup = false

	return nil
}

// Load returns the stored credential or ErrNoToken.
func (s *Store) Load(ctx context.Context) (Credential, error) {
	if err := ctx.Err(); err != nil {
		return Credential{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credential{}, ErrNoToken
		}
		return Credential{}, fmt.Errorf("read token file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return Credential{}, fmt.Errorf("decode token file: %w", err)
	}
	file.applyDefaults()
	if err := file.validateVersion(); err != nil {
		return Credential{}, err
	}
	if strings.TrimSpace(file.Token) == "" {
		return Credential{}, ErrNoToken
	}

	return Credential{
		Server:    file.Server,
		Token:     file.Token,
		Email:     file.Email,
		UserID:    file.UserID,
		ExpiresAt: file.ExpiresAt,
	}, nil
}

// Clear removes the stored credential. Clearing a missing file is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token file: %w", err)
	}
	return nil
}
