// Package render formats booking data for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/collab-booking/internal/client"
)

const swatch = "■"

// PartitionOptions controls how a room partition is drawn.
type PartitionOptions struct {
	// SelectedRoomID marks one available room with a cursor.
	SelectedRoomID string
}

// Sessions renders the day's sessions, highlighting currentID.
func Sessions(sessions []client.Session, currentID string) string {
	s := newStyles()
	lines := []string{
		s.title.Render("Today's sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}
	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No sessions configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, session := range sessions {
		label := fmt.Sprintf("%d. %s", i+1, session.Label)
		if session.ID == currentID {
			lines = append(lines, s.selected.Render("> "+label)+"  "+s.detail.Render(fmt.Sprintf("(%d min, current)", session.DurationMinutes)))
			continue
		}
		lines = append(lines, "  "+label+"  "+s.detail.Render(fmt.Sprintf("(%d min)", session.DurationMinutes)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SessionSlider renders sessions as a single row with the selected one highlighted.
func SessionSlider(sessions []client.Session, selected int) string {
	s := newStyles()
	if len(sessions) == 0 {
		return s.empty.Render("No sessions configured.")
	}
	cells := make([]string, 0, len(sessions))
	for i, session := range sessions {
		if i == selected {
			cells = append(cells, s.slotActive.Render(session.Label))
			continue
		}
		cells = append(cells, s.slot.Render(session.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Rooms renders the room inventory.
func Rooms(rooms []client.Room) string {
	s := newStyles()
	lines := []string{
		s.title.Render("Rooms"),
		s.header.Render(fmt.Sprintf("rooms: %d", len(rooms))),
	}
	if len(rooms) == 0 {
		lines = append(lines, s.empty.Render("No rooms configured."))
	}
	for _, room := range rooms {
		lines = append(lines, "  "+roomLine(room, s, false))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Partition renders the available and unavailable sections for a session.
func Partition(partition client.Partition, opts PartitionOptions) string {
	s := newStyles()
	lines := []string{
		s.title.Render("Session " + partition.Session.Label),
		s.header.Render(fmt.Sprintf("available: %d  unavailable: %d", len(partition.Available), len(partition.Unavailable))),
		s.section.Render(s.sectionHead.Render("Available")),
	}

	if len(partition.Available) == 0 {
		lines = append(lines, s.empty.Render("  No rooms available for this session."))
	}
	for _, room := range partition.Available {
		prefix := "  "
		line := roomLine(room, s, false)
		if room.ID == opts.SelectedRoomID {
			prefix = s.selected.Render("> ")
		}
		lines = append(lines, prefix+line)
	}

	lines = append(lines, s.section.Render(s.sectionHead.Render("Unavailable")))
	if len(partition.Unavailable) == 0 {
		lines = append(lines, s.empty.Render("  Every room is free."))
	}
	for _, room := range partition.Unavailable {
		lines = append(lines, "  "+roomLine(room, s, true))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Bookings renders booking records in the order they were made.
func Bookings(bookings []client.Booking) string {
	s := newStyles()
	lines := []string{
		s.title.Render("Bookings"),
		s.header.Render(fmt.Sprintf("bookings: %d", len(bookings))),
	}
	if len(bookings) == 0 {
		lines = append(lines, s.empty.Render("No bookings yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	for _, b := range bookings {
		who := b.BookedBy.DisplayName
		if who == "" {
			who = b.BookedBy.Email
		}
		line := fmt.Sprintf("  %s  %s  %s", b.Session.Label, colorSwatch(b.Room.Color)+" "+s.room.Render(b.Room.Name), s.detail.Render("by "+who))
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// BookingResult renders the outcome of a booking attempt.
func BookingResult(b client.Booking, err error) string {
	s := newStyles()
	if err != nil {
		return s.failure.Render("✗ " + err.Error())
	}
	return s.success.Render(fmt.Sprintf("✓ Booked %s for %s", b.Room.Name, b.Session.Label))
}

func roomLine(room client.Room, s styles, muted bool) string {
	name := s.room.Render(room.Name)
	if muted {
		name = s.roomMuted.Render(room.Name)
	}
	details := fmt.Sprintf("%s · %d seats", room.Type, room.Capacity)
	if len(room.Features) > 0 {
		details += " · " + strings.Join(room.Features, ", ")
	}
	return colorSwatch(room.Color) + " " + name + "  " + s.detail.Render(details)
}

func colorSwatch(color string) string {
	if color == "" {
		return swatch
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(swatch)
}
