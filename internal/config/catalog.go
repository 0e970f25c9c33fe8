package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/example/collab-booking/internal/booking"
)

const currentCatalogVersion = 1

// Catalog is the session table and room inventory loaded at startup. Nil
// slices select the built-in defaults.
type Catalog struct {
	Slots []booking.SlotSpec
	Rooms []booking.RoomSpec
}

type catalogSchema struct {
	Version int          `toml:"version"`
	Slots   []slotSchema `toml:"slots"`
	Rooms   []roomSchema `toml:"rooms"`
}

type slotSchema struct {
	Hour            int `toml:"hour"`
	Minute          int `toml:"minute"`
	DurationMinutes int `toml:"duration_minutes"`
}

type roomSchema struct {
	ID       string    `toml:"id"`
	Name     string    `toml:"name"`
	Type     string    `toml:"type"`
	Capacity *int      `toml:"capacity,omitempty"`
	Features *[]string `toml:"features,omitempty"`
	Color    string    `toml:"color,omitempty"`
}

func (s *catalogSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentCatalogVersion
	}
}

func (s catalogSchema) validateVersion() error {
	if s.Version > currentCatalogVersion {
		return fmt.Errorf("unsupported catalog schema version %d (current %d)", s.Version, currentCatalogVersion)
	}
	return nil
}

// LoadCatalog reads a catalog file. An empty path yields the defaults.
func LoadCatalog(path string) (Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Catalog{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Catalog{}, fmt.Errorf("catalog file %s does not exist", path)
		}
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return DecodeCatalog(data)
}

// DecodeCatalog parses catalog TOML and validates the session table.
func DecodeCatalog(data []byte) (Catalog, error) {
	var file catalogSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog file: %w", err)
	}
	file.applyDefaults()
	if err := file.validateVersion(); err != nil {
		return Catalog{}, err
	}

	var catalog Catalog
	if len(file.Slots) > 0 {
		catalog.Slots = make([]booking.SlotSpec, 0, len(file.Slots))
		for _, slot := range file.Slots {
			catalog.Slots = append(catalog.Slots, booking.SlotSpec{
				Hour:            slot.Hour,
				Minute:          slot.Minute,
				DurationMinutes: slot.DurationMinutes,
			})
		}
		if err := booking.ValidateSlots(catalog.Slots); err != nil {
			return Catalog{}, err
		}
	}

	if len(file.Rooms) > 0 {
		catalog.Rooms = make([]booking.RoomSpec, 0, len(file.Rooms))
		for _, room := range file.Rooms {
			spec := booking.RoomSpec{
				ID:       room.ID,
				Name:     room.Name,
				Type:     booking.RoomType(strings.ToUpper(strings.TrimSpace(room.Type))),
				Capacity: room.Capacity,
				Color:    room.Color,
			}
			if room.Features != nil {
				spec.Features = append([]string{}, (*room.Features)...)
			}
			catalog.Rooms = append(catalog.Rooms, spec)
		}
	}

	return catalog, nil
}
