package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/collab-booking/internal/booking"
)

const sampleCatalog = `
version = 1

[[slots]]
hour = 9
minute = 0
duration_minutes = 60

[[slots]]
hour = 10
minute = 30
duration_minutes = 45

[[rooms]]
id = "focus"
name = "Focus Room"
type = "cr4"

[[rooms]]
id = "studio"
name = "Studio"
type = "CR3"
capacity = 20
features = []
color = "#112233"
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}

	if len(catalog.Slots) != 2 || catalog.Slots[1] != (booking.SlotSpec{Hour: 10, Minute: 30, DurationMinutes: 45}) {
		t.Fatalf("unexpected slots %+v", catalog.Slots)
	}
	if len(catalog.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(catalog.Rooms))
	}

	focus := catalog.Rooms[0]
	if focus.Type != booking.RoomTypeCR4 || focus.Capacity != nil || focus.Features != nil {
		t.Fatalf("expected focus room to inherit defaults, got %+v", focus)
	}

	studio := catalog.Rooms[1]
	if studio.Capacity == nil || *studio.Capacity != 20 {
		t.Fatalf("expected capacity override, got %+v", studio.Capacity)
	}
	if studio.Features == nil || len(studio.Features) != 0 {
		t.Fatalf("expected explicit empty feature list, got %#v", studio.Features)
	}

	rooms, err := booking.NewRoomCatalog(catalog.Rooms)
	if err != nil {
		t.Fatalf("catalog rooms should build: %v", err)
	}
	if room, _ := rooms.ByID("focus"); room.Capacity != 5 {
		t.Fatalf("expected CR4 default capacity, got %d", room.Capacity)
	}
}

func TestLoadCatalogDefaults(t *testing.T) {
	catalog, err := LoadCatalog("  ")
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if catalog.Slots != nil || catalog.Rooms != nil {
		t.Fatalf("expected nil slices for defaults, got %+v", catalog)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDecodeCatalogErrors(t *testing.T) {
	cases := map[string]string{
		"future version": "version = 2\n",
		"malformed":      "version = \n",
		"overlapping slots": `
[[slots]]
hour = 9
minute = 0
duration_minutes = 90

[[slots]]
hour = 10
minute = 0
duration_minutes = 30
`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeCatalog([]byte(data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := DecodeCatalog([]byte("[[slots]]\nhour = 30\nminute = 0\nduration_minutes = 10\n"))
	if !errors.Is(err, booking.ErrInvalidSlots) {
		t.Fatalf("expected ErrInvalidSlots, got %v", err)
	}

	_, err = DecodeCatalog([]byte("version = 9\n"))
	if err == nil || !strings.Contains(err.Error(), "unsupported catalog schema version 9") {
		t.Fatalf("unexpected version error %v", err)
	}
}
