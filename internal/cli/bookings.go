package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/collab-booking/internal/client"
	"github.com/example/collab-booking/internal/render"
)

func newBookCmd(a *app) *cobra.Command {
	var (
		roomID    string
		sessionID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a room for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(roomID) == "" {
				return errors.New("--room is required")
			}
			c, err := a.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := a.resolveSession(cmd.Context(), c, sessionID)
			if err != nil {
				return err
			}

			booking, err := c.Book(cmd.Context(), roomID, id)
			switch {
			case errors.Is(err, client.ErrAlreadyBooked):
				return fmt.Errorf("room %s is already booked for session %s", roomID, id)
			case errors.Is(err, client.ErrNotFound):
				return fmt.Errorf("unknown room %s or session %s", roomID, id)
			case err != nil:
				return apiError(err)
			}
			if asJSON {
				return writeJSON(cmd, booking)
			}
			return writeLine(cmd, render.BookingResult(booking, nil))
		},
	}
	cmd.Flags().StringVar(&roomID, "room", "", "room id, for example CR1")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id (default: current or next session)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the booking as JSON")
	return cmd
}

func newBookingsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List every booking made today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			bookings, err := c.Bookings(cmd.Context())
			if err != nil {
				return apiError(err)
			}
			if asJSON {
				return writeJSON(cmd, bookings)
			}
			return writeLine(cmd, render.Bookings(bookings))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print bookings as JSON")
	return cmd
}
