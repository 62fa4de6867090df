// Package catalog holds the static hotel catalog shipped with the storefront.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
)

//go:embed hotels.json
var hotelsJSON []byte

// Catalog is an immutable ordered list of hotels.
type Catalog struct {
	hotels []domain.Hotel
	byID   map[int]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	var hotels []domain.Hotel
	if err := json.Unmarshal(hotelsJSON, &hotels); err != nil {
		return nil, fmt.Errorf("failed to parse hotel catalog: %w", err)
	}
	return New(hotels)
}

// New validates hotels and indexes them by id.
func New(hotels []domain.Hotel) (*Catalog, error) {
	c := &Catalog{hotels: slices.Clone(hotels), byID: make(map[int]int, len(hotels))}
	for i, h := range c.hotels {
		if _, dup := c.byID[h.ID]; dup {
			return nil, fmt.Errorf("duplicate hotel id %d", h.ID)
		}
		if h.PricePerNight <= 0 {
			return nil, fmt.Errorf("hotel %d: price per night must be positive", h.ID)
		}
		if h.Rating < 0 || h.Rating > 5 {
			return nil, fmt.Errorf("hotel %d: rating out of range", h.ID)
		}
		if _, ok := domain.ParsePropertyType(string(h.Type)); !ok || h.Type == domain.PropertyAll {
			return nil, fmt.Errorf("hotel %d: unknown type %q", h.ID, h.Type)
		}
		c.byID[h.ID] = i
	}
	return c, nil
}

// All returns the hotels in catalog order. Callers must not modify the slice.
func (c *Catalog) All() []domain.Hotel {
	return c.hotels
}

func (c *Catalog) Find(id int) (*domain.Hotel, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	h := c.hotels[i]
	return &h, true
}

func (c *Catalog) Len() int {
	return len(c.hotels)
}
