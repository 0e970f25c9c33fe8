package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/collab-booking/internal/client"
	"github.com/example/collab-booking/internal/tokenstore"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		email    string
		password string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			c, store, cfg, err := a.anonymousClient()
			if err != nil {
				return err
			}
			result, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, client.ErrInvalidCredentials) {
					return errors.New("login failed: email or password is incorrect")
				}
				return err
			}

			if err := store.Save(cmd.Context(), tokenstore.Credential{
				Server:    cfg.Server,
				Token:     result.Token,
				Email:     result.Principal.Email,
				UserID:    result.Principal.UserID,
				ExpiresAt: result.ExpiresAt,
			}); err != nil {
				return fmt.Errorf("store token: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, result)
			}
			name := result.Principal.DisplayName
			if name == "" {
				name = result.Principal.Email
			}
			return writeLine(cmd, fmt.Sprintf("Logged in as %s (token expires %s)", name, result.ExpiresAt.Local().Format(time.RFC1123)))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the login result as JSON")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, store, _, err := a.anonymousClient()
			if err != nil {
				return err
			}
			cred, err := store.Load(cmd.Context())
			if errors.Is(err, tokenstore.ErrNoToken) {
				return writeLine(cmd, "Not logged in.")
			}
			if err != nil {
				return err
			}

			c.SetToken(cred.Token)
			if err := c.Logout(cmd.Context()); err != nil && !errors.Is(err, client.ErrUnauthorized) {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			return writeLine(cmd, "Logged out.")
		},
	}
}

type whoamiOutput struct {
	LoggedIn  bool       `json:"logged_in"`
	Server    string     `json:"server,omitempty"`
	Email     string     `json:"email,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

func newWhoamiCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := a.tokenStore()
			if err != nil {
				return err
			}
			out := whoamiOutput{}
			cred, err := store.Load(cmd.Context())
			switch {
			case errors.Is(err, tokenstore.ErrNoToken):
			case err != nil:
				return err
			default:
				out.LoggedIn = true
				out.Server = cred.Server
				out.Email = cred.Email
				out.UserID = cred.UserID
				out.Expired = cred.Expired(a.now())
				if !cred.ExpiresAt.IsZero() {
					expiresAt := cred.ExpiresAt
					out.ExpiresAt = &expiresAt
				}
			}

			if asJSON {
				return writeJSON(cmd, out)
			}
			if !out.LoggedIn {
				return writeLine(cmd, "Not logged in.")
			}
			line := fmt.Sprintf("%s on %s", out.Email, out.Server)
			switch {
			case out.Expired:
				line += " (token expired)"
			case out.ExpiresAt != nil:
				line += fmt.Sprintf(" (token expires %s)", out.ExpiresAt.Local().Format(time.RFC1123))
			}
			return writeLine(cmd, line)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored login as JSON")
	return cmd
}
