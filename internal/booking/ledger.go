package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// BookingResult is the outcome of a booking attempt.
type BookingResult int

const (
	// Booked means the pair was unbooked and is now reserved.
	Booked BookingResult = iota + 1
	// AlreadyBooked means the pair was reserved earlier; nothing changed.
	AlreadyBooked
)

func (r BookingResult) String() string {
	switch r {
	case Booked:
		return "booked"
	case AlreadyBooked:
		return "already_booked"
	default:
		return "unknown"
	}
}

// Record is the fact that a room is reserved for a session.
type Record struct {
	ID        string
	RoomID    string
	SessionID string
	BookedAt  time.Time
}

// Ledger tracks which sessions are booked for each room.
type Ledger struct {
	mu      sync.RWMutex
	booked  map[string]map[string]struct{}
	records []Record

	idGenerator func() string
	now         func() time.Time
}

// NewLedger constructs an empty ledger. Nil generators fall back to random
// UUIDs and time.Now.
func NewLedger(idGenerator func() string, now func() time.Time) *Ledger {
	if idGenerator == nil {
		idGenerator = func() string { return uuid.NewString() }
	}
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		booked:      make(map[string]map[string]struct{}),
		idGenerator: idGenerator,
		now:         now,
	}
}

// IsAvailable reports whether sessionID is not yet booked for roomID. Unknown
// identifiers are available.
func (l *Ledger) IsAvailable(roomID, sessionID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.availableLocked(roomID, sessionID)
}

func (l *Ledger) availableLocked(roomID, sessionID string) bool {
	_, taken := l.booked[roomID][sessionID]
	return !taken
}

// Book reserves sessionID for roomID. A second attempt for the same pair
// returns AlreadyBooked with a zero Record and leaves the ledger untouched.
func (l *Ledger) Book(roomID, sessionID string) (BookingResult, Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sessions, ok := l.booked[roomID]
	if !ok {
		sessions = make(map[string]struct{})
		l.booked[roomID] = sessions
	}
	if _, taken := sessions[sessionID]; taken {
		return AlreadyBooked, Record{}
	}
	sessions[sessionID] = struct{}{}

	record := Record{
		ID:        l.idGenerator(),
		RoomID:    roomID,
		SessionID: sessionID,
		BookedAt:  l.now(),
	}
	l.records = append(l.records, record)
	return Booked, record
}

// Partition splits rooms into those available and those booked for sessionID,
// preserving the input order within each list.
func (l *Ledger) Partition(sessionID string, rooms []Room) (available, unavailable []Room) {
	available = make([]Room, 0, len(rooms))
	unavailable = make([]Room, 0)

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, room := range rooms {
		if l.availableLocked(room.ID, sessionID) {
			available = append(available, room)
		} else {
			unavailable = append(unavailable, room)
		}
	}
	return available, unavailable
}

// Records returns every successful booking in the order it was made.
func (l *Ledger) Records() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// BookedSessions lists the session identifiers booked for roomID in booking
// order.
func (l *Ledger) BookedSessions(roomID string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []string
	for _, record := range l.records {
		if record.RoomID == roomID {
			out = append(out, record.SessionID)
		}
	}
	return out
}
