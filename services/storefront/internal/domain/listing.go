package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
	SortPriceLow   SortKey = "priceLow"
	SortPriceHigh  SortKey = "priceHigh"
)

// ParseSortKey maps "" to popularity, the storefront default.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case "", SortPopularity:
		return SortPopularity, true
	case SortRating, SortPriceLow, SortPriceHigh:
		return SortKey(s), true
	default:
		return "", false
	}
}

// DefaultPageSize is how many listings each "load more" reveals.
const DefaultPageSize = 9

// Criteria is one listing query. Zero values disable their filter.
type Criteria struct {
	Query     string       `json:"q" url:"q,omitempty"`
	MaxPrice  int          `json:"maxPrice" url:"maxPrice,omitempty"`
	MinRating float64      `json:"minRating" url:"minRating,omitempty"`
	Type      PropertyType `json:"type" url:"type,omitempty"`
	Amenities []string     `json:"amenities" url:"amenities,omitempty,comma"`
	Sort      SortKey      `json:"sort" url:"sort,omitempty"`
}

// Normalize trims the query, canonicalizes type and sort, and dedupes amenities.
func (c Criteria) Normalize() Criteria {
	out := c
	out.Query = strings.TrimSpace(c.Query)
	if t, ok := ParsePropertyType(string(c.Type)); ok {
		out.Type = t
	}
	if s, ok := ParseSortKey(string(c.Sort)); ok {
		out.Sort = s
	}

	out.Amenities = nil
	for _, a := range c.Amenities {
		a = strings.TrimSpace(a)
		if a == "" || slices.ContainsFunc(out.Amenities, func(b string) bool { return strings.EqualFold(a, b) }) {
			continue
		}
		out.Amenities = append(out.Amenities, a)
	}
	return out
}

func (c Criteria) Validate() error {
	if c.MaxPrice < 0 {
		return Invalid("maxPrice", "max price cannot be negative")
	}
	if c.MinRating < 0 || c.MinRating > 5 {
		return Invalid("minRating", "min rating must be between 0 and 5")
	}
	if _, ok := ParsePropertyType(string(c.Type)); !ok {
		return Invalid("type", "unknown property type %q", c.Type)
	}
	if _, ok := ParseSortKey(string(c.Sort)); !ok {
		return Invalid("sort", "unknown sort %q", c.Sort)
	}
	return nil
}

// Key identifies the result set of c, independent of query casing and amenity order.
func (c Criteria) Key() string {
	n := c.Normalize()
	amenities := make([]string, len(n.Amenities))
	for i, a := range n.Amenities {
		amenities[i] = strings.ToLower(a)
	}
	slices.Sort(amenities)
	return fmt.Sprintf("q=%s|max=%d|rating=%g|type=%s|amenities=%s|sort=%s",
		strings.ToLower(n.Query), n.MaxPrice, n.MinRating, n.Type, strings.Join(amenities, ","), n.Sort)
}

// Matches applies every filter of c to h.
func (c Criteria) Matches(h *Hotel) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		if !strings.Contains(strings.ToLower(h.City), q) && !strings.Contains(strings.ToLower(h.Name), q) {
			return false
		}
	}
	if c.MaxPrice > 0 && h.PricePerNight > c.MaxPrice {
		return false
	}
	if h.Rating < c.MinRating {
		return false
	}
	if c.Type != "" && c.Type != PropertyAll && h.Type != c.Type {
		return false
	}
	for _, a := range c.Amenities {
		if !h.HasAmenity(a) {
			return false
		}
	}
	return true
}

// FilterAndSort filters catalog by c, then stable-sorts the survivors by c.Sort.
// The catalog itself is never reordered.
func FilterAndSort(catalog []Hotel, c Criteria) []Hotel {
	c = c.Normalize()

	out := make([]Hotel, 0, len(catalog))
	for i := range catalog {
		if c.Matches(&catalog[i]) {
			out = append(out, catalog[i])
		}
	}

	slices.SortStableFunc(out, compareBy(c.Sort))
	return out
}

func compareBy(key SortKey) func(a, b Hotel) int {
	switch key {
	case SortPriceLow:
		return func(a, b Hotel) int { return cmp.Compare(a.PricePerNight, b.PricePerNight) }
	case SortPriceHigh:
		return func(a, b Hotel) int { return cmp.Compare(b.PricePerNight, a.PricePerNight) }
	case SortRating:
		return func(a, b Hotel) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b Hotel) int { return cmp.Compare(b.Reviews, a.Reviews) }
	}
}

// Browse is the listing view state: the applied criteria and how many
// results are revealed.
type Browse struct {
	Criteria Criteria `json:"criteria"`
	Visible  int      `json:"visible"`
	PageSize int      `json:"pageSize"`
}

func NewBrowse(pageSize int) *Browse {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browse{
		Criteria: Criteria{Type: PropertyAll, Sort: SortPopularity},
		Visible:  pageSize,
		PageSize: pageSize,
	}
}

// Apply swaps in c. Any change to filters or sort resets the reveal to the
// first page; it reports whether anything changed.
func (b *Browse) Apply(c Criteria) bool {
	c = c.Normalize()
	if c.Key() == b.Criteria.Key() {
		return false
	}
	b.Criteria = c
	b.Visible = b.PageSize
	return true
}

func (b *Browse) LoadMore() {
	b.Visible += b.PageSize
}

// Page returns the revealed prefix of results and whether more remain.
func (b *Browse) Page(results []Hotel) ([]Hotel, bool) {
	n := min(b.Visible, len(results))
	return results[:n], n < len(results)
}

// Recommend suggests up to n hotels sharing the city or type of the most
// recently viewed hotel, excluding it. With no usable history it falls back
// to the first n catalog entries.
func Recommend(catalog []Hotel, recentIDs []int, n int) []Hotel {
	n = max(n, 0)
	var ref *Hotel
	if len(recentIDs) > 0 {
		for i := range catalog {
			if catalog[i].ID == recentIDs[0] {
				ref = &catalog[i]
				break
			}
		}
	}

	if ref == nil {
		return slices.Clone(catalog[:min(n, len(catalog))])
	}

	out := make([]Hotel, 0, n)
	for _, h := range catalog {
		if len(out) == n {
			break
		}
		if h.ID != ref.ID && (h.City == ref.City || h.Type == ref.Type) {
			out = append(out, h)
		}
	}
	return out
}
