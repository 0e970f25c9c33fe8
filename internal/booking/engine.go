package booking

import (
	"slices"
	"sync"
	"time"
)

// Engine composes the session catalog, room catalog and ledger behind the
// operations adapters consume.
type Engine struct {
	sessions *SessionCatalog
	rooms    *RoomCatalog
	ledger   *Ledger

	listenersMu sync.RWMutex
	listeners   map[int]func(Record)
	nextID      int
}

// NewEngine wires the components together. A nil ledger is replaced with an
// empty one using default generators.
func NewEngine(sessions *SessionCatalog, rooms *RoomCatalog, ledger *Ledger) *Engine {
	if ledger == nil {
		ledger = NewLedger(nil, nil)
	}
	return &Engine{
		sessions:  sessions,
		rooms:     rooms,
		ledger:    ledger,
		listeners: make(map[int]func(Record)),
	}
}

// ListSessions returns the day's sessions in ascending start order.
func (e *Engine) ListSessions() []Session {
	return e.sessions.All()
}

// DefaultSession returns the current-or-next session for now.
func (e *Engine) DefaultSession(now time.Time) (Session, bool) {
	return e.sessions.CurrentOrNext(now)
}

// Session looks up a session by identifier.
func (e *Engine) Session(id string) (Session, bool) {
	return e.sessions.ByID(id)
}

// ListRooms returns the room inventory in configuration order.
func (e *Engine) ListRooms() []Room {
	return e.rooms.All()
}

// Room looks up a room by identifier.
func (e *Engine) Room(id string) (Room, bool) {
	return e.rooms.ByID(id)
}

// CheckAvailability reports whether roomID is free for sessionID.
func (e *Engine) CheckAvailability(roomID, sessionID string) bool {
	return e.ledger.IsAvailable(roomID, sessionID)
}

// PartitionRooms splits the full room list by availability for sessionID.
func (e *Engine) PartitionRooms(sessionID string) (available, unavailable []Room) {
	return e.ledger.Partition(sessionID, e.rooms.All())
}

// BookRoom books roomID for sessionID. Subscribers are notified after a
// successful booking.
func (e *Engine) BookRoom(roomID, sessionID string) (BookingResult, Record) {
	result, record := e.ledger.Book(roomID, sessionID)
	if result == Booked {
		e.notify(record)
	}
	return result, record
}

// Bookings returns every booking record in the order it was made.
func (e *Engine) Bookings() []Record {
	return e.ledger.Records()
}

// Subscribe registers fn to be called after each successful booking. The
// returned function removes the registration and is safe to call twice.
func (e *Engine) Subscribe(fn func(Record)) func() {
	if fn == nil {
		return func() {}
	}
	e.listenersMu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.listenersMu.Lock()
			delete(e.listeners, id)
			e.listenersMu.Unlock()
		})
	}
}

func (e *Engine) notify(record Record) {
	e.listenersMu.RLock()
	ids := make([]int, 0, len(e.listeners))
	fns := make(map[int]func(Record), len(e.listeners))
	for id, fn := range e.listeners {
		ids = append(ids, id)
		fns[id] = fn
	}
	e.listenersMu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		fns[id](record)
	}
}
