// Package testfixtures builds deterministic booking engines and services for tests.
package testfixtures

import (
	"testing"
	"time"

	"github.com/example/collab-booking/internal/booking"
)

// ReferenceDay returns the calendar day every fixture schedules sessions on.
func ReferenceDay() time.Time {
	return time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
}

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It falls inside the second default session.
func ReferenceTime() time.Time {
	return ReferenceDay().Add(10*time.Hour + 30*time.Minute)
}

// RoomFixture describes a room to place in a fixture catalog.
type RoomFixture struct {
	spec booking.RoomSpec
}

// RoomOption mutates a RoomFixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a CR1 room with the type defaults.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	f := RoomFixture{spec: booking.RoomSpec{ID: string(booking.RoomTypeCR1), Type: booking.RoomTypeCR1}}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// WithRoomType sets the room type and, unless overridden later, the ID.
func WithRoomType(t booking.RoomType) RoomOption {
	return func(f *RoomFixture) {
		f.spec.Type = t
		f.spec.ID = string(t)
	}
}

func WithRoomID(id string) RoomOption {
	return func(f *RoomFixture) {
		f.spec.ID = id
	}
}

func WithRoomName(name string) RoomOption {
	return func(f *RoomFixture) {
		f.spec.Name = name
	}
}

func WithRoomCapacity(capacity int) RoomOption {
	return func(f *RoomFixture) {
		f.spec.Capacity = &capacity
	}
}

func WithRoomFeatures(features ...string) RoomOption {
	return func(f *RoomFixture) {
		f.spec.Features = append([]string{}, features...)
	}
}

func WithRoomColor(color string) RoomOption {
	return func(f *RoomFixture) {
		f.spec.Color = color
	}
}

// Spec returns the catalog configuration for the fixture.
func (f RoomFixture) Spec() booking.RoomSpec {
	spec := f.spec
	if spec.Features != nil {
		spec.Features = append([]string{}, spec.Features...)
	}
	return spec
}

// RoomsOfType returns one fixture per type using the type as ID.
func RoomsOfType(types ...booking.RoomType) []RoomFixture {
	out := make([]RoomFixture, 0, len(types))
	for _, t := range types {
		out = append(out, NewRoomFixture(WithRoomType(t)))
	}
	return out
}

// EngineFixture is a booking engine wired to a controllable clock and
// deterministic booking IDs.
type EngineFixture struct {
	Engine     *booking.Engine
	Sessions   []booking.Session
	Rooms      []booking.Room
	Clock      *Clock
	BookingIDs *IDGenerator
}

type engineConfig struct {
	day   time.Time
	slots []booking.SlotSpec
	rooms []RoomFixture
	clock *Clock
	ids   *IDGenerator
}

// EngineOption configures NewEngineFixture.
type EngineOption func(*engineConfig)

// WithRooms replaces the default inventory.
func WithRooms(rooms ...RoomFixture) EngineOption {
	return func(c *engineConfig) {
		c.rooms = rooms
	}
}

// WithSlots replaces the default session table.
func WithSlots(slots ...booking.SlotSpec) EngineOption {
	return func(c *engineConfig) {
		c.slots = slots
	}
}

func WithDay(day time.Time) EngineOption {
	return func(c *engineConfig) {
		c.day = day
	}
}

func WithEngineClock(clock *Clock) EngineOption {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

func WithBookingIDs(ids *IDGenerator) EngineOption {
	return func(c *engineConfig) {
		c.ids = ids
	}
}

// NewEngineFixture builds an engine for ReferenceDay with the default session
// table and room inventory unless overridden.
func NewEngineFixture(tb testing.TB, opts ...EngineOption) EngineFixture {
	tb.Helper()

	cfg := engineConfig{day: ReferenceDay()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = NewClock(ReferenceTime())
	}
	if cfg.ids == nil {
		cfg.ids = NewIDGenerator("booking")
	}

	var specs []booking.RoomSpec
	if cfg.rooms != nil {
		specs = make([]booking.RoomSpec, 0, len(cfg.rooms))
		for _, room := range cfg.rooms {
			specs = append(specs, room.Spec())
		}
	}
	rooms, err := booking.NewRoomCatalog(specs)
	if err != nil {
		tb.Fatalf("NewRoomCatalog failed: %v", err)
	}
	sessions := booking.NewSessionCatalog(cfg.day, cfg.slots)
	engine := booking.NewEngine(sessions, rooms, booking.NewLedger(cfg.ids.NextFunc(), cfg.clock.NowFunc()))

	return EngineFixture{
		Engine:     engine,
		Sessions:   sessions.All(),
		Rooms:      rooms.All(),
		Clock:      cfg.clock,
		BookingIDs: cfg.ids,
	}
}

// Session returns the i-th session of the day, failing the test when absent.
func (f EngineFixture) Session(tb testing.TB, i int) booking.Session {
	tb.Helper()
	if i < 0 || i >= len(f.Sessions) {
		tb.Fatalf("session index %d out of range (%d sessions)", i, len(f.Sessions))
	}
	return f.Sessions[i]
}

// MustBook books roomID for the i-th session, failing the test unless the
// pair was free.
func (f EngineFixture) MustBook(tb testing.TB, roomID string, i int) booking.Record {
	tb.Helper()
	result, record := f.Engine.BookRoom(roomID, f.Session(tb, i).ID)
	if result != booking.Booked {
		tb.Fatalf("expected %s to be bookable for %s, got %s", roomID, f.Session(tb, i).ID, result)
	}
	return record
}
