package booking

import (
	"testing"
)

func newTestEngine(t *testing.T, roomIDs ...RoomType) *Engine {
	t.Helper()
	specs := make([]RoomSpec, 0, len(roomIDs))
	for _, id := range roomIDs {
		specs = append(specs, RoomSpec{ID: string(id), Type: id})
	}
	rooms, err := NewRoomCatalog(specs)
	if err != nil {
		t.Fatalf("room catalog: %v", err)
	}
	return NewEngine(NewSessionCatalog(testDay, nil), rooms, NewLedger(sequentialIDs(), fixedNow))
}

func TestEngineEndToEnd(t *testing.T) {
	engine := newTestEngine(t, RoomTypeCR1, RoomTypeCR2)
	s1 := engine.ListSessions()[0].ID

	available, unavailable := engine.PartitionRooms(s1)
	assertRoomIDs(t, "available", available, "CR1", "CR2")
	assertRoomIDs(t, "unavailable", unavailable)

	if result, _ := engine.BookRoom("CR1", s1); result != Booked {
		t.Fatalf("expected Booked, got %s", result)
	}

	available, unavailable = engine.PartitionRooms(s1)
	assertRoomIDs(t, "available", available, "CR2")
	assertRoomIDs(t, "unavailable", unavailable, "CR1")

	if engine.CheckAvailability("CR1", s1) {
		t.Fatalf("expected CR1 to be unavailable")
	}
	if result, _ := engine.BookRoom("CR1", s1); result != AlreadyBooked {
		t.Fatalf("expected AlreadyBooked, got %s", result)
	}
	if got := len(engine.Bookings()); got != 1 {
		t.Fatalf("expected 1 booking, got %d", got)
	}
}

func TestEngineLookups(t *testing.T) {
	engine := newTestEngine(t, RoomTypeCR1, RoomTypeCR5)

	if got := len(engine.ListRooms()); got != 2 {
		t.Fatalf("expected 2 rooms, got %d", got)
	}
	room, ok := engine.Room("CR5")
	if !ok || room.Capacity != 8 {
		t.Fatalf("unexpected room lookup result %+v %v", room, ok)
	}

	session, ok := engine.DefaultSession(at(9, 0))
	if !ok || session.Label() != "08:45 - 09:55" {
		t.Fatalf("unexpected default session %q", session.Label())
	}
	if _, ok := engine.Session(session.ID); !ok {
		t.Fatalf("expected session lookup to succeed")
	}
	if _, ok := engine.Session("nope"); ok {
		t.Fatalf("expected unknown session to be absent")
	}
}

func TestEngineSubscribe(t *testing.T) {
	engine := newTestEngine(t, RoomTypeCR1)
	s1 := engine.ListSessions()[0].ID
	s2 := engine.ListSessions()[1].ID

	var order []string
	var received []Record
	unsubscribe := engine.Subscribe(func(r Record) {
		order = append(order, "first")
		received = append(received, r)
	})
	engine.Subscribe(func(Record) { order = append(order, "second") })

	_, record := engine.BookRoom("CR1", s1)
	engine.BookRoom("CR1", s1)

	if len(received) != 1 || received[0] != record {
		t.Fatalf("expected one notification for the successful booking, got %v", received)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("listeners called out of order: %v", order)
	}

	unsubscribe()
	unsubscribe()
	engine.BookRoom("CR1", s2)
	if len(received) != 1 {
		t.Fatalf("unsubscribed listener was still called")
	}
}

func TestEngineListenerMayQueryEngine(t *testing.T) {
	engine := newTestEngine(t, RoomTypeCR1)
	s1 := engine.ListSessions()[0].ID

	var availableInListener bool
	engine.Subscribe(func(r Record) {
		availableInListener = engine.CheckAvailability(r.RoomID, r.SessionID)
	})
	engine.BookRoom("CR1", s1)

	if availableInListener {
		t.Fatalf("listener must observe the booking")
	}
}
