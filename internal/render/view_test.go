package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/collab-booking/internal/client"
)

var (
	cr1 = client.Room{ID: "CR1", Name: "Collab Room 1", Type: "CR1", Capacity: 5, Color: "#E06C75"}
	cr3 = client.Room{ID: "CR3", Name: "Collab Room 3", Type: "CR3", Capacity: 12, Color: "#98C379", Features: []string{"TV", "Board"}}
	s1  = client.Session{ID: "s1", Label: "08:45 - 09:55", DurationMinutes: 70}
	s2  = client.Session{ID: "s2", Label: "10:00 - 11:15", DurationMinutes: 75}
)

func TestSessionsHighlightsCurrent(t *testing.T) {
	output := Sessions([]client.Session{s1, s2}, "s2")

	assert.Contains(t, output, "sessions: 2")
	assert.Contains(t, output, "08:45 - 09:55")
	assert.Contains(t, output, "> 2. 10:00 - 11:15")
	assert.Contains(t, output, "current")
}

func TestSessionsEmpty(t *testing.T) {
	assert.Contains(t, Sessions(nil, ""), "No sessions configured.")
	assert.Contains(t, SessionSlider(nil, 0), "No sessions configured.")
}

func TestSessionSliderListsEveryLabel(t *testing.T) {
	output := SessionSlider([]client.Session{s1, s2}, 1)

	assert.Contains(t, output, s1.Label)
	assert.Contains(t, output, s2.Label)
}

func TestPartitionSections(t *testing.T) {
	output := Partition(client.Partition{
		Session:     s1,
		Available:   []client.Room{cr3},
		Unavailable: []client.Room{cr1},
	}, PartitionOptions{SelectedRoomID: "CR3"})

	assert.Contains(t, output, "Session 08:45 - 09:55")
	assert.Contains(t, output, "available: 1  unavailable: 1")
	assert.Contains(t, output, "> ")
	assert.Contains(t, output, "12 seats · TV, Board")
	assert.Contains(t, output, "Collab Room 1")
	assert.NotContains(t, output, "Every room is free.")
}

func TestPartitionWithNothingBooked(t *testing.T) {
	output := Partition(client.Partition{Session: s1, Available: []client.Room{cr1}}, PartitionOptions{})

	assert.Contains(t, output, "Every room is free.")
	assert.NotContains(t, output, "No rooms available")
}

func TestRoomsAndBookings(t *testing.T) {
	rooms := Rooms([]client.Room{cr1, cr3})
	assert.Contains(t, rooms, "rooms: 2")
	assert.Contains(t, rooms, "CR1 · 5 seats")

	bookings := Bookings([]client.Booking{{
		ID:       "b1",
		Room:     cr1,
		Session:  s1,
		BookedBy: client.Principal{Email: "demo@collab.local"},
	}})
	assert.Contains(t, bookings, "bookings: 1")
	assert.Contains(t, bookings, "by demo@collab.local")

	assert.Contains(t, Bookings(nil), "No bookings yet.")
}

func TestBookingResult(t *testing.T) {
	assert.Contains(t, BookingResult(client.Booking{Room: cr1, Session: s1}, nil), "Booked Collab Room 1 for 08:45 - 09:55")
	assert.Contains(t, BookingResult(client.Booking{}, errors.New("room already booked")), "room already booked")
}
