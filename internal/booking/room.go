package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RoomType tags a room with one of the collaboration room categories.
type RoomType string

const (
	RoomTypeCR1 RoomType = "CR1"
	RoomTypeCR2 RoomType = "CR2"
	RoomTypeCR3 RoomType = "CR3"
	RoomTypeCR4 RoomType = "CR4"
	RoomTypeCR5 RoomType = "CR5"
	RoomTypeCR6 RoomType = "CR6"
	RoomTypeCR7 RoomType = "CR7"
)

// RoomTypes lists every supported room type in display order.
var RoomTypes = []RoomType{
	RoomTypeCR1, RoomTypeCR2, RoomTypeCR3, RoomTypeCR4, RoomTypeCR5, RoomTypeCR6, RoomTypeCR7,
}

// TypeDefaults holds the attributes a room inherits from its type.
type TypeDefaults struct {
	Capacity int
	Features []string
	Color    string
}

var typeDefaults = map[RoomType]TypeDefaults{
	RoomTypeCR1: {Capacity: 5, Color: "#E06C75"},
	RoomTypeCR2: {Capacity: 6, Features: []string{"Whiteboard"}, Color: "#D19A66"},
	RoomTypeCR3: {Capacity: 12, Features: []string{"TV", "Board"}, Color: "#98C379"},
	RoomTypeCR4: {Capacity: 5, Color: "#7AA2F7"},
	RoomTypeCR5: {Capacity: 8, Features: []string{"TV"}, Color: "#61AFEF"},
	RoomTypeCR6: {Capacity: 10, Features: []string{"TV", "Whiteboard", "Speakerphone"}, Color: "#C678DD"},
	RoomTypeCR7: {Capacity: 4, Features: []string{"Board"}, Color: "#56B6C2"},
}

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	_, ok := typeDefaults[t]
	return ok
}

// DefaultsFor returns the static defaults for a room type.
func DefaultsFor(t RoomType) (TypeDefaults, bool) {
	d, ok := typeDefaults[t]
	if !ok {
		return TypeDefaults{}, false
	}
	d.Features = cloneStrings(d.Features)
	return d, true
}

// Room is a bookable collaboration space.
type Room struct {
	ID       string
	Name     string
	Type     RoomType
	Capacity int
	Color    string
	Features []string
}

// RoomSpec is the configuration used to construct a Room. Nil Capacity and
// Features, and an empty Color, fall back to the type defaults.
type RoomSpec struct {
	ID       string
	Name     string
	Type     RoomType
	Capacity *int
	Color    string
	Features []string
}

// ErrInvalidRoom reports a room specification that cannot be used.
var ErrInvalidRoom = errors.New("booking: invalid room")

// NewRoom constructs a room, applying type defaults once.
func NewRoom(spec RoomSpec) (Room, error) {
	id := strings.TrimSpace(spec.ID)
	if id == "" {
		return Room{}, fmt.Errorf("%w: id is required", ErrInvalidRoom)
	}
	defaults, ok := DefaultsFor(spec.Type)
	if !ok {
		return Room{}, fmt.Errorf("%w: room %s has unknown type %q", ErrInvalidRoom, id, spec.Type)
	}

	room := Room{
		ID:       id,
		Name:     strings.TrimSpace(spec.Name),
		Type:     spec.Type,
		Capacity: defaults.Capacity,
		Color:    defaults.Color,
		Features: defaults.Features,
	}
	if room.Name == "" {
		room.Name = id
	}
	if spec.Capacity != nil {
		if *spec.Capacity <= 0 {
			return Room{}, fmt.Errorf("%w: room %s capacity must be positive", ErrInvalidRoom, id)
		}
		room.Capacity = *spec.Capacity
	}
	if spec.Features != nil {
		room.Features = cloneStrings(spec.Features)
	}
	if c := strings.TrimSpace(spec.Color); c != "" {
		room.Color = c
	}
	return room, nil
}

// DefaultRooms returns the built-in room inventory.
func DefaultRooms() []RoomSpec {
	specs := make([]RoomSpec, 0, len(RoomTypes))
	for i, t := range RoomTypes {
		specs = append(specs, RoomSpec{
			ID:   string(t),
			Name: fmt.Sprintf("Collab Room %d", i+1),
			Type: t,
		})
	}
	return specs
}

// RoomCatalog owns the static room inventory.
type RoomCatalog struct {
	rooms []Room
	byID  map[string]int
}

// NewRoomCatalog builds the catalog from specs, preserving their order. A nil
// slice selects DefaultRooms.
func NewRoomCatalog(specs []RoomSpec) (*RoomCatalog, error) {
	if specs == nil {
		specs = DefaultRooms()
	}
	catalog := &RoomCatalog{
		rooms: make([]Room, 0, len(specs)),
		byID:  make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		room, err := NewRoom(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := catalog.byID[room.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate room id %s", ErrInvalidRoom, room.ID)
		}
		catalog.byID[room.ID] = len(catalog.rooms)
		catalog.rooms = append(catalog.rooms, room)
	}
	return catalog, nil
}

// All returns the rooms in configuration order.
func (c *RoomCatalog) All() []Room {
	if c == nil || len(c.rooms) == 0 {
		return nil
	}
	out := make([]Room, len(c.rooms))
	for i, room := range c.rooms {
		out[i] = cloneRoom(room)
	}
	return out
}

// ByID looks up a room by identifier.
func (c *RoomCatalog) ByID(id string) (Room, bool) {
	if c == nil {
		return Room{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Room{}, false
	}
	return cloneRoom(c.rooms[idx]), true
}

// AvailableBetween returns every room. Rooms are not filtered by time; booked
// state is tracked per session by the Ledger.
func (c *RoomCatalog) AvailableBetween(_, _ time.Time) []Room {
	return c.All()
}

func cloneRoom(room Room) Room {
	room.Features = cloneStrings(room.Features)
	return room
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
