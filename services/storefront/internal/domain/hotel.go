package domain

import "strings"

type PropertyType string

const (
	PropertyHotel     PropertyType = "Hotel"
	PropertyResort    PropertyType = "Resort"
	PropertyApartment PropertyType = "Apartment"

	// PropertyAll disables the property type filter.
	PropertyAll PropertyType = "All"
)

// ParsePropertyType accepts any casing; "" and "All" mean no filter.
func ParsePropertyType(s string) (PropertyType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return PropertyAll, true
	case "hotel":
		return PropertyHotel, true
	case "resort":
		return PropertyResort, true
	case "apartment":
		return PropertyApartment, true
	default:
		return "", false
	}
}

type Hotel struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	City          string       `json:"city"`
	Location      string       `json:"location"`
	Type          PropertyType `json:"type"`
	PricePerNight int          `json:"pricePerNight"`
	Rating        float64      `json:"rating"`
	Reviews       int          `json:"reviews"`
	Amenities     []string     `json:"amenities"`
	Image         string       `json:"image"`
}

func (h *Hotel) HasAmenity(name string) bool {
	for _, a := range h.Amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}
