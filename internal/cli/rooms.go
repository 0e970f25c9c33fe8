package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/collab-booking/internal/client"
	"github.com/example/collab-booking/internal/render"
)

func newRoomsCmd(a *app) *cobra.Command {
	var (
		sessionID string
		all       bool
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Show room availability for a session",
		Long:  "Show which rooms are available for a session. Without --session the current or next session is used; --all lists the inventory instead.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authedClient(cmd.Context())
			if err != nil {
				return err
			}

			if all {
				rooms, err := c.Rooms(cmd.Context())
				if err != nil {
					return apiError(err)
				}
				if asJSON {
					return writeJSON(cmd, rooms)
				}
				return writeLine(cmd, render.Rooms(rooms))
			}

			id, err := a.resolveSession(cmd.Context(), c, sessionID)
			if err != nil {
				return err
			}
			partition, err := c.Partition(cmd.Context(), id)
			if err != nil {
				return apiError(err)
			}
			if asJSON {
				return writeJSON(cmd, partition)
			}
			return writeLine(cmd, render.Partition(partition, render.PartitionOptions{}))
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id (default: current or next session)")
	cmd.Flags().BoolVar(&all, "all", false, "list every room without availability")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rooms as JSON")
	return cmd
}

// resolveSession returns id, or the server's default session when id is blank.
func (a *app) resolveSession(ctx context.Context, c *client.Client, id string) (string, error) {
	if id = strings.TrimSpace(id); id != "" {
		return id, nil
	}
	session, err := c.DefaultSession(ctx, a.now())
	if err != nil {
		return "", apiError(err)
	}
	return session.ID, nil
}
