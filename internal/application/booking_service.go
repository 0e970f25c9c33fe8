package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/example/collab-booking/internal/booking"
)

// BookingEngine is the in-process engine the service delegates to.
type BookingEngine interface {
	ListSessions() []booking.Session
	DefaultSession(now time.Time) (booking.Session, bool)
	Session(id string) (booking.Session, bool)
	ListRooms() []booking.Room
	Room(id string) (booking.Room, bool)
	CheckAvailability(roomID, sessionID string) bool
	PartitionRooms(sessionID string) (available, unavailable []booking.Room)
	BookRoom(roomID, sessionID string) (booking.BookingResult, booking.Record)
	Bookings() []booking.Record
}

// BookingService exposes the booking engine to authenticated adapters.
type BookingService struct {
	engine BookingEngine
	now    func() time.Time
	logger *slog.Logger

	mu       sync.RWMutex
	bookedBy map[string]Principal
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(engine BookingEngine, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(engine, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(engine BookingEngine, now func() time.Time, logger *slog.Logger) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		engine:   engine,
		now:      now,
		logger:   defaultLogger(logger),
		bookedBy: make(map[string]Principal),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

func (s *BookingService) ready() error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.engine == nil {
		return fmt.Errorf("booking engine not configured")
	}
	return nil
}

// ListSessions returns today's sessions in ascending start order.
func (s *BookingService) ListSessions(ctx context.Context) ([]booking.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.engine.ListSessions(), nil
}

// DefaultSession returns the current-or-next session. A zero now uses the service clock.
func (s *BookingService) DefaultSession(ctx context.Context, now time.Time) (session booking.Session, err error) {
	if err = s.ready(); err != nil {
		return
	}
	if now.IsZero() {
		now = s.now()
	}

	session, ok := s.engine.DefaultSession(now)
	if !ok {
		err = ErrNotFound
		s.loggerWith(ctx, "DefaultSession").WarnContext(ctx, "no sessions configured", "error_kind", ErrorKind(err))
	}
	return
}

// GetSession looks up a session by identifier.
func (s *BookingService) GetSession(ctx context.Context, id string) (booking.Session, error) {
	if err := s.ready(); err != nil {
		return booking.Session{}, err
	}
	session, ok := s.engine.Session(strings.TrimSpace(id))
	if !ok {
		return booking.Session{}, ErrNotFound
	}
	return session, nil
}

// ListRooms returns the room inventory in configuration order.
func (s *BookingService) ListRooms(ctx context.Context) ([]booking.Room, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.engine.ListRooms(), nil
}

// GetRoom looks up a room by identifier.
func (s *BookingService) GetRoom(ctx context.Context, id string) (booking.Room, error) {
	if err := s.ready(); err != nil {
		return booking.Room{}, err
	}
	room, ok := s.engine.Room(strings.TrimSpace(id))
	if !ok {
		return booking.Room{}, ErrNotFound
	}
	return room, nil
}

// CheckAvailability reports whether the room is free for the session. Unknown
// identifiers are reported as available.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID, sessionID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	roomID = strings.TrimSpace(roomID)
	sessionID = strings.TrimSpace(sessionID)
	if vErr := validateIDs(roomID, sessionID); vErr.HasErrors() {
		return false, vErr
	}
	return s.engine.CheckAvailability(roomID, sessionID), nil
}

// PartitionRooms splits the rooms by availability for a known session.
func (s *BookingService) PartitionRooms(ctx context.Context, sessionID string) (partition Partition, err error) {
	if err = s.ready(); err != nil {
		return
	}

	sessionID = strings.TrimSpace(sessionID)
	logger := s.loggerWith(ctx, "PartitionRooms", "session_id", sessionID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to partition rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"available", len(partition.Available),
			"unavailable", len(partition.Unavailable),
		).DebugContext(ctx, "rooms partitioned")
	}()

	if sessionID == "" {
		vErr := &ValidationError{}
		vErr.add("session_id", "required")
		err = vErr
		return
	}

	session, ok := s.engine.Session(sessionID)
	if !ok {
		err = ErrNotFound
		return
	}

	available, unavailable := s.engine.PartitionRooms(sessionID)
	partition = Partition{Session: session, Available: available, Unavailable: unavailable}
	return
}

// BookRoom reserves a known room for a known session on behalf of the principal.
func (s *BookingService) BookRoom(ctx context.Context, params BookRoomParams) (result Booking, err error) {
	if err = s.ready(); err != nil {
		return
	}

	roomID := strings.TrimSpace(params.RoomID)
	sessionID := strings.TrimSpace(params.SessionID)
	logger := s.loggerWith(ctx, "BookRoom",
		"principal_id", params.Principal.UserID,
		"room_id", roomID,
		"session_id", sessionID,
	)
	defer func() {
		switch {
		case err == nil:
			logger.With("booking_id", result.Record.ID).InfoContext(ctx, "room booked")
		case errors.Is(err, ErrAlreadyBooked):
			logger.WarnContext(ctx, "room already booked", "error_kind", ErrorKind(err))
		default:
			logger.ErrorContext(ctx, "failed to book room", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if vErr := validateIDs(roomID, sessionID); vErr.HasErrors() {
		err = vErr
		return
	}

	room, ok := s.engine.Room(roomID)
	if !ok {
		err = fmt.Errorf("room %s: %w", roomID, ErrNotFound)
		return
	}
	session, ok := s.engine.Session(sessionID)
	if !ok {
		err = fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		return
	}

	outcome, record := s.engine.BookRoom(roomID, sessionID)
	if outcome != booking.Booked {
		err = ErrAlreadyBooked
		return
	}

	s.mu.Lock()
	s.bookedBy[record.ID] = params.Principal
	s.mu.Unlock()

	result = Booking{Record: record, Room: room, Session: session, BookedBy: params.Principal}
	return
}

// ListBookings returns every booking in the order it was made.
func (s *BookingService) ListBookings(ctx context.Context) ([]Booking, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	records := s.engine.Bookings()
	out := make([]Booking, 0, len(records))

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range records {
		entry := Booking{Record: record, BookedBy: s.bookedBy[record.ID]}
		entry.Room, _ = s.engine.Room(record.RoomID)
		entry.Session, _ = s.engine.Session(record.SessionID)
		out = append(out, entry)
	}
	return out, nil
}

func validateIDs(roomID, sessionID string) *ValidationError {
	vErr := &ValidationError{}
	if roomID == "" {
		vErr.add("room_id", "required")
	}
	if sessionID == "" {
		vErr.add("session_id", "required")
	}
	return vErr
}
