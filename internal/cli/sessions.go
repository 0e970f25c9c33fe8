package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/example/collab-booking/internal/client"
	"github.com/example/collab-booking/internal/render"
)

func newSessionsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List today's sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			sessions, err := c.Sessions(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			if asJSON {
				return writeJSON(cmd, sessions)
			}

			currentID := ""
			current, err := c.DefaultSession(cmd.Context(), a.now())
			switch {
			case err == nil:
				currentID = current.ID
			case !errors.Is(err, client.ErrNotFound):
				return apiError(err)
			}
			return writeLine(cmd, render.Sessions(sessions, currentID))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print sessions as JSON")
	return cmd
}
