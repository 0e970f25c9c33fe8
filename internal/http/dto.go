package http

import (
	"time"

	"github.com/example/collab-booking/internal/application"
	"github.com/example/collab-booking/internal/booking"
)

type sessionDTO struct {
	ID              string `json:"id"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"duration_minutes"`
}

func toSessionDTO(session booking.Session) sessionDTO {
	return sessionDTO{
		ID:              session.ID,
		Start:           session.Start.Format(time.RFC3339),
		End:             session.End.Format(time.RFC3339),
		Label:           session.Label(),
		DurationMinutes: session.DurationMinutes(),
	}
}

func toSessionDTOs(sessions []booking.Session) []sessionDTO {
	out := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out
}

type roomDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity"`
	Color    string   `json:"color"`
	Features []string `json:"features"`
}

func toRoomDTO(room booking.Room) roomDTO {
	features := room.Features
	if features == nil {
		features = []string{}
	}
	return roomDTO{
		ID:       room.ID,
		Name:     room.Name,
		Type:     string(room.Type),
		Capacity: room.Capacity,
		Color:    room.Color,
		Features: features,
	}
}

func toRoomDTOs(rooms []booking.Room) []roomDTO {
	out := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomDTO(room))
	}
	return out
}

type bookingDTO struct {
	ID        string       `json:"id"`
	RoomID    string       `json:"room_id"`
	SessionID string       `json:"session_id"`
	Session   sessionDTO   `json:"session"`
	Room      roomDTO      `json:"room"`
	BookedAt  string       `json:"booked_at"`
	BookedBy  principalDTO `json:"booked_by"`
}

func toBookingDTO(b application.Booking) bookingDTO {
	return bookingDTO{
		ID:        b.Record.ID,
		RoomID:    b.Record.RoomID,
		SessionID: b.Record.SessionID,
		Session:   toSessionDTO(b.Session),
		Room:      toRoomDTO(b.Room),
		BookedAt:  b.Record.BookedAt.UTC().Format(time.RFC3339Nano),
		BookedBy:  toPrincipalDTO(b.BookedBy),
	}
}

func toBookingDTOs(bookings []application.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b))
	}
	return out
}
