package booking

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("booking-%d", n.Add(1)) }
}

func fixedNow() time.Time { return at(9, 0) }

func testRooms(ids ...string) []Room {
	rooms := make([]Room, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, Room{ID: id, Name: id, Type: RoomTypeCR1})
	}
	return rooms
}

func TestLedgerAvailableBeforeBooking(t *testing.T) {
	ledger := NewLedger(sequentialIDs(), fixedNow)
	for _, room := range []string{"CR1", "CR2", "unknown"} {
		for _, session := range []string{"S1", "S2", ""} {
			if !ledger.IsAvailable(room, session) {
				t.Fatalf("expected %s/%s to be available", room, session)
			}
		}
	}
}

func TestLedgerBook(t *testing.T) {
	ledger := NewLedger(sequentialIDs(), fixedNow)

	result, record := ledger.Book("CR1", "S1")
	if result != Booked {
		t.Fatalf("expected Booked, got %s", result)
	}
	if record.ID != "booking-1" || record.RoomID != "CR1" || record.SessionID != "S1" {
		t.Fatalf("unexpected record %+v", record)
	}
	if !record.BookedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected booked at %v", record.BookedAt)
	}
	if ledger.IsAvailable("CR1", "S1") {
		t.Fatalf("expected CR1/S1 to be unavailable after booking")
	}
	if !ledger.IsAvailable("CR1", "S2") || !ledger.IsAvailable("CR2", "S1") {
		t.Fatalf("booking must only affect its own pair")
	}
}

func TestLedgerRejectsSecondBooking(t *testing.T) {
	ledger := NewLedger(sequentialIDs(), fixedNow)
	ledger.Book("CR1", "S1")

	for i := 0; i < 3; i++ {
		result, record := ledger.Book("CR1", "S1")
		if result != AlreadyBooked {
			t.Fatalf("attempt %d: expected AlreadyBooked, got %s", i, result)
		}
		if record != (Record{}) {
			t.Fatalf("attempt %d: expected zero record, got %+v", i, record)
		}
	}
	if ledger.IsAvailable("CR1", "S1") {
		t.Fatalf("pair must stay booked")
	}
	if got := len(ledger.Records()); got != 1 {
		t.Fatalf("expected a single record, got %d", got)
	}
}

func TestLedgerPartition(t *testing.T) {
	ledger := NewLedger(sequentialIDs(), fixedNow)
	rooms := testRooms("A", "B", "C", "D", "E")
	ledger.Book("B", "S1")
	ledger.Book("D", "S1")
	ledger.Book("A", "S2")

	available, unavailable := ledger.Partition("S1", rooms)
	assertRoomIDs(t, "available", available, "A", "C", "E")
	assertRoomIDs(t, "unavailable", unavailable, "B", "D")

	available, unavailable = ledger.Partition("S3", rooms)
	assertRoomIDs(t, "available", available, "A", "B", "C", "D", "E")
	assertRoomIDs(t, "unavailable", unavailable)
}

func TestLedgerPartitionEmptyRooms(t *testing.T) {
	ledger := NewLedger(nil, nil)
	available, unavailable := ledger.Partition("S1", nil)
	if len(available) != 0 || len(unavailable) != 0 {
		t.Fatalf("expected empty partition")
	}
}

func TestLedgerRecordsAndBookedSessions(t *testing.T) {
	ledger := NewLedger(sequentialIDs(), fixedNow)
	ledger.Book("CR1", "S2")
	ledger.Book("CR2", "S1")
	ledger.Book("CR1", "S1")
	ledger.Book("CR1", "S2")

	records := ledger.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].SessionID != "S2" || records[2].SessionID != "S1" {
		t.Fatalf("records out of order: %+v", records)
	}

	sessions := ledger.BookedSessions("CR1")
	if len(sessions) != 2 || sessions[0] != "S2" || sessions[1] != "S1" {
		t.Fatalf("unexpected booked sessions %v", sessions)
	}
	if got := ledger.BookedSessions("CR9"); len(got) != 0 {
		t.Fatalf("expected no sessions for unknown room, got %v", got)
	}
}

func TestLedgerConcurrentBookingSingleWinner(t *testing.T) {
	const attempts = 128
	ledger := NewLedger(sequentialIDs(), fixedNow)

	var (
		wg       sync.WaitGroup
		start    = make(chan struct{})
		booked   atomic.Int64
		rejected atomic.Int64
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			switch result, _ := ledger.Book("CR1", "S1"); result {
			case Booked:
				booked.Add(1)
			case AlreadyBooked:
				rejected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if booked.Load() != 1 {
		t.Fatalf("expected exactly one booking, got %d", booked.Load())
	}
	if rejected.Load() != attempts-1 {
		t.Fatalf("expected %d rejections, got %d", attempts-1, rejected.Load())
	}
	if ledger.IsAvailable("CR1", "S1") {
		t.Fatalf("pair must be booked after the race")
	}
}

func TestLedgerConcurrentReadersSeeConsistentState(t *testing.T) {
	ledger := NewLedger(sequentialIDs(), fixedNow)
	rooms := testRooms("A", "B", "C", "D")

	var wg sync.WaitGroup
	for _, room := range rooms {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			ledger.Book(id, "S1")
		}(room.ID)
	}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			available, unavailable := ledger.Partition("S1", rooms)
			if len(available)+len(unavailable) != len(rooms) {
				t.Errorf("partition lost rooms: %d + %d", len(available), len(unavailable))
			}
		}()
	}
	wg.Wait()

	available, unavailable := ledger.Partition("S1", rooms)
	if len(available) != 0 || len(unavailable) != len(rooms) {
		t.Fatalf("expected every room booked, got %d available", len(available))
	}
}

func TestBookingResultString(t *testing.T) {
	if Booked.String() != "booked" || AlreadyBooked.String() != "already_booked" {
		t.Fatalf("unexpected strings %q %q", Booked, AlreadyBooked)
	}
	if BookingResult(0).String() != "unknown" {
		t.Fatalf("expected unknown for zero value")
	}
}

func assertRoomIDs(t *testing.T, label string, rooms []Room, want ...string) {
	t.Helper()
	if len(rooms) != len(want) {
		t.Fatalf("%s: expected %v, got %d rooms", label, want, len(rooms))
	}
	for i, room := range rooms {
		if room.ID != want[i] {
			t.Fatalf("%s[%d] = %s, want %s", label, i, room.ID, want[i])
		}
	}
}
