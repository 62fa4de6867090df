package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Hotel {
	return []Hotel{
		{ID: 1, Name: "Taj Palace", City: "Mumbai", Type: PropertyHotel, PricePerNight: 9000, Rating: 4.8, Reviews: 500, Amenities: []string{"WiFi", "Pool", "AC"}},
		{ID: 2, Name: "Sea Breeze", City: "Goa", Type: PropertyResort, PricePerNight: 6000, Rating: 4.5, Reviews: 300, Amenities: []string{"WiFi", "Pool"}},
		{ID: 3, Name: "City Nest", City: "Mumbai", Type: PropertyApartment, PricePerNight: 3000, Rating: 4.1, Reviews: 300, Amenities: []string{"WiFi", "Parking"}},
		{ID: 4, Name: "Palm Grove", City: "Goa", Type: PropertyHotel, PricePerNight: 4000, Rating: 4.5, Reviews: 120, Amenities: []string{"Pool", "Parking", "AC"}},
		{ID: 5, Name: "Hill View", City: "Shimla", Type: PropertyResort, PricePerNight: 6000, Rating: 3.9, Reviews: 80, Amenities: []string{"Parking"}},
	}
}

func ids(hotels []Hotel) []int {
	out := make([]int, len(hotels))
	for i, h := range hotels {
		out[i] = h.ID
	}
	return out
}

func TestFilterAndSort_Filters(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		criteria Criteria
		expected []int
	}{
		{"no filters keeps everything by popularity", Criteria{}, []int{1, 2, 3, 4, 5}},
		{"query matches city case-insensitively", Criteria{Query: "goa"}, []int{2, 4}},
		{"query matches name", Criteria{Query: "NEST"}, []int{3}},
		{"max price inclusive", Criteria{MaxPrice: 4000}, []int{3, 4}},
		{"min rating inclusive", Criteria{MinRating: 4.5}, []int{1, 2, 4}},
		{"type exact", Criteria{Type: PropertyResort}, []int{2, 5}},
		{"type all is no filter", Criteria{Type: PropertyAll}, []int{1, 2, 3, 4, 5}},
		{"amenities require all", Criteria{Amenities: []string{"pool", "AC"}}, []int{1, 4}},
		{"conjunctive", Criteria{Query: "goa", Amenities: []string{"Parking"}}, []int{4}},
		{"nothing matches", Criteria{Query: "delhi"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(catalog, tt.criteria)
			assert.Equal(t, tt.expected, ids(got))
			for i := range got {
				assert.True(t, tt.criteria.Normalize().Matches(&got[i]))
			}
		})
	}
}

func TestFilterAndSort_StableSorts(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		sort     SortKey
		expected []int
	}{
		// 2 and 3 tie on reviews
		{SortPopularity, []int{1, 2, 3, 4, 5}},
		// 2 and 4 tie on rating
		{SortRating, []int{1, 2, 4, 3, 5}},
		// 2 and 5 tie on price
		{SortPriceLow, []int{3, 4, 2, 5, 1}},
		{SortPriceHigh, []int{1, 2, 5, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(FilterAndSort(catalog, Criteria{Sort: tt.sort})))
		})
	}
}

func TestFilterAndSort_IdempotentAndLeavesCatalogAlone(t *testing.T) {
	catalog := testCatalog()
	c := Criteria{MinRating: 4, Sort: SortPriceLow}

	first := FilterAndSort(catalog, c)
	second := FilterAndSort(catalog, c)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), len(catalog))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(catalog))
}

func TestCriteria_KeyIgnoresCasingAndOrder(t *testing.T) {
	a := Criteria{Query: " Goa ", Amenities: []string{"Pool", "WiFi"}, Type: "resort"}
	b := Criteria{Query: "goa", Amenities: []string{"wifi", "pool", "Pool"}, Type: PropertyResort, Sort: SortPopularity}
	assert.Equal(t, a.Key(), b.Key())

	c := Criteria{Query: "goa", Sort: SortRating}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestCriteria_Validate(t *testing.T) {
	assert.NoError(t, Criteria{}.Validate())
	assert.ErrorIs(t, Criteria{MaxPrice: -1}.Validate(), ErrValidation)
	assert.ErrorIs(t, Criteria{MinRating: 6}.Validate(), ErrValidation)
	assert.ErrorIs(t, Criteria{Type: "Castle"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Criteria{Sort: "name"}.Validate(), ErrValidation)
}

func TestBrowse_Pagination(t *testing.T) {
	results := make([]Hotel, 25)
	for i := range results {
		results[i] = Hotel{ID: i + 1}
	}

	b := NewBrowse(9)
	page, more := b.Page(results)
	assert.Len(t, page, 9)
	assert.True(t, more)

	for n, expected := range []int{18, 25, 25} {
		b.LoadMore()
		page, more = b.Page(results)
		require.Len(t, page, expected, "after %d load-more", n+1)
	}
	assert.False(t, more)

	assert.True(t, b.Apply(Criteria{Query: "goa"}))
	page, _ = b.Page(results)
	assert.Len(t, page, 9)
}

func TestBrowse_ApplySameCriteriaKeepsPage(t *testing.T) {
	b := NewBrowse(9)
	b.Apply(Criteria{Sort: SortRating})
	b.LoadMore()

	assert.False(t, b.Apply(Criteria{Sort: SortRating, Type: PropertyAll}))
	assert.Equal(t, 18, b.Visible)

	assert.True(t, b.Apply(Criteria{Sort: SortPriceLow}))
	assert.Equal(t, 9, b.Visible)
}

func TestRecommend(t *testing.T) {
	catalog := testCatalog()

	t.Run("same city or type excluding itself", func(t *testing.T) {
		// hotel 4: Goa / Hotel -> 1 (Hotel), 2 (Goa)
		assert.Equal(t, []int{1, 2}, ids(Recommend(catalog, []int{4, 1}, 3)))
	})

	t.Run("caps at n in catalog order", func(t *testing.T) {
		// hotel 2: Goa / Resort -> 4 (Goa), 5 (Resort)
		assert.Equal(t, []int{4}, ids(Recommend(catalog, []int{2}, 1)))
	})

	t.Run("no history falls back to first n", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, ids(Recommend(catalog, nil, 3)))
	})

	t.Run("unknown id falls back to first n", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, ids(Recommend(catalog, []int{99}, 3)))
	})

	t.Run("negative n yields nothing", func(t *testing.T) {
		assert.Empty(t, Recommend(catalog, nil, -1))
		assert.Empty(t, Recommend(catalog, []int{4}, -1))
	})
}
