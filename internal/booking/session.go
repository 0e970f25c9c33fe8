package booking

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// sessionNamespace scopes the name-based identifiers generated for sessions.
var sessionNamespace = uuid.MustParse("6f1c1f9e-4a8e-4c57-9d0b-3b7f4f0c2a11")

// SlotSpec describes one row of the daily session table.
type SlotSpec struct {
	Hour            int
	Minute          int
	DurationMinutes int
}

// DefaultSlots is the built-in daily session table.
var DefaultSlots = []SlotSpec{
	{Hour: 8, Minute: 45, DurationMinutes: 70},
	{Hour: 10, Minute: 0, DurationMinutes: 75},
	{Hour: 11, Minute: 30, DurationMinutes: 90},
	{Hour: 13, Minute: 15, DurationMinutes: 75},
	{Hour: 14, Minute: 45, DurationMinutes: 75},
	{Hour: 16, Minute: 15, DurationMinutes: 105},
}

// Session is a bookable time interval within a day.
type Session struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Duration reports the length of the session.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// DurationMinutes reports the length of the session in whole minutes.
func (s Session) DurationMinutes() int {
	return int(s.Duration() / time.Minute)
}

// Label renders the session as "HH:MM - HH:MM" in its own location.
func (s Session) Label() string {
	return s.Start.Format("15:04") + " - " + s.End.Format("15:04")
}

// ErrInvalidSlots reports a malformed session table.
var ErrInvalidSlots = errors.New("booking: invalid session table")

// ValidateSlots checks a configured session table before it is used.
//
// Slots must have in-range clock fields and a positive duration, appear in
// ascending start order, must not overlap, and must end on the same day.
func ValidateSlots(slots []SlotSpec) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: no slots configured", ErrInvalidSlots)
	}

	prevEnd := -1
	for i, slot := range slots {
		if slot.Hour < 0 || slot.Hour > 23 {
			return fmt.Errorf("%w: slot %d hour %d out of range", ErrInvalidSlots, i+1, slot.Hour)
		}
		if slot.Minute < 0 || slot.Minute > 59 {
			return fmt.Errorf("%w: slot %d minute %d out of range", ErrInvalidSlots, i+1, slot.Minute)
		}
		if slot.DurationMinutes <= 0 {
			return fmt.Errorf("%w: slot %d duration must be positive", ErrInvalidSlots, i+1)
		}

		start := slot.Hour*60 + slot.Minute
		end := start + slot.DurationMinutes
		if end > 24*60 {
			return fmt.Errorf("%w: slot %d ends after midnight", ErrInvalidSlots, i+1)
		}
		if start < prevEnd {
			return fmt.Errorf("%w: slot %d overlaps or precedes slot %d", ErrInvalidSlots, i+1, i)
		}
		prevEnd = end
	}
	return nil
}

// Generate builds the sessions for the calendar day containing day, anchored to
// that day's midnight in day's location. Slots whose timestamps cannot be
// constructed faithfully are skipped.
func Generate(day time.Time, slots []SlotSpec) []Session {
	loc := day.Location()
	y, m, d := day.Date()
	dayKey := day.Format("2006-01-02")

	sessions := make([]Session, 0, len(slots))
	for i, slot := range slots {
		start, ok := slotStart(y, m, d, slot, loc)
		if !ok {
			continue
		}
		name := fmt.Sprintf("%s/%d/%02d:%02d/%d", dayKey, i, slot.Hour, slot.Minute, slot.DurationMinutes)
		sessions = append(sessions, Session{
			ID:    uuid.NewSHA1(sessionNamespace, []byte(name)).String(),
			Start: start,
			End:   start.Add(time.Duration(slot.DurationMinutes) * time.Minute),
		})
	}
	return sessions
}

func slotStart(y int, m time.Month, d int, slot SlotSpec, loc *time.Location) (time.Time, bool) {
	if slot.Hour < 0 || slot.Hour > 23 || slot.Minute < 0 || slot.Minute > 59 || slot.DurationMinutes <= 0 {
		return time.Time{}, false
	}
	start := time.Date(y, m, d, slot.Hour, slot.Minute, 0, 0, loc)
	// time.Date normalizes wall clocks that fall into a DST gap.
	if start.Hour() != slot.Hour || start.Minute() != slot.Minute || start.Day() != d {
		return time.Time{}, false
	}
	return start, true
}

// SessionCatalog owns the immutable session list for one day.
type SessionCatalog struct {
	sessions []Session
	byID     map[string]int
}

// NewSessionCatalog generates the sessions for day from the provided table.
// A nil table selects DefaultSlots.
func NewSessionCatalog(day time.Time, slots []SlotSpec) *SessionCatalog {
	if slots == nil {
		slots = DefaultSlots
	}
	generated := Generate(day, slots)
	sort.SliceStable(generated, func(i, j int) bool {
		return generated[i].Start.Before(generated[j].Start)
	})

	index := make(map[string]int, len(generated))
	for i, session := range generated {
		index[session.ID] = i
	}
	return &SessionCatalog{sessions: generated, byID: index}
}

// All returns the sessions in ascending start order.
func (c *SessionCatalog) All() []Session {
	if c == nil || len(c.sessions) == 0 {
		return nil
	}
	out := make([]Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// Len reports the number of sessions in the catalog.
func (c *SessionCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sessions)
}

// ByID looks up a session by identifier.
func (c *SessionCatalog) ByID(id string) (Session, bool) {
	if c == nil {
		return Session{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Session{}, false
	}
	return c.sessions[idx], true
}

// CurrentOrNext returns the first session that has not ended at now. When every
// session has ended the earliest session is returned instead. The boolean is
// false only when the catalog is empty.
func (c *SessionCatalog) CurrentOrNext(now time.Time) (Session, bool) {
	if c == nil || len(c.sessions) == 0 {
		return Session{}, false
	}
	for _, session := range c.sessions {
		if session.End.After(now) {
			return session, true
		}
	}
	return c.sessions[0], true
}
