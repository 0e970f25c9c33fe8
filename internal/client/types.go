package client

import "time"

type Principal struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Principal Principal `json:"principal"`
}

type Session struct {
	ID              string    `json:"id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Label           string    `json:"label"`
	DurationMinutes int       `json:"duration_minutes"`
}

type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity"`
	Color    string   `json:"color"`
	Features []string `json:"features"`
}

// Partition is the availability split of the room list for one session.
type Partition struct {
	Session     Session `json:"session"`
	Available   []Room  `json:"available"`
	Unavailable []Room  `json:"unavailable"`
}

type Booking struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	SessionID string    `json:"session_id"`
	Session   Session   `json:"session"`
	Room      Room      `json:"room"`
	BookedAt  time.Time `json:"booked_at"`
	BookedBy  Principal `json:"booked_by"`
}
