package application

import (
	"time"

	"github.com/example/collab-booking/internal/booking"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
}

// User represents the account behind a Principal.
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// Principal returns the principal acting on behalf of the user.
func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

// UserCredentials models the authentication attributes held for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// Token is an opaque bearer token issued after a successful login.
type Token struct {
	Value     string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User  User
	Token Token
}

// Partition is the availability split of the room list for one session.
type Partition struct {
	Session     booking.Session
	Available   []booking.Room
	Unavailable []booking.Room
}

// BookRoomParams wraps the data required to book a room.
type BookRoomParams struct {
	Principal Principal
	RoomID    string
	SessionID string
}

// Booking is a ledger record enriched with the room, session and booking principal.
type Booking struct {
	Record   booking.Record
	Room     booking.Room
	Session  booking.Session
	BookedBy Principal
}
