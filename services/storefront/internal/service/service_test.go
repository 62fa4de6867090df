package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/pkg/storage"
	"github.com/diagnosis/luxstay/services/storefront/internal/catalog"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/diagnosis/luxstay/services/storefront/internal/repository"
)

// recordingBus captures published events.
type recordingBus struct {
	events.Discard
	mu        sync.Mutex
	published []published
}

type published struct {
	subject string
	data    interface{}
}

func (b *recordingBus) Publish(_ context.Context, subject string, data interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, published{subject: subject, data: data})
	return nil
}

func (b *recordingBus) subjects() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.published))
	for i, p := range b.published {
		out[i] = p.subject
	}
	return out
}

var fastHash = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type fixture struct {
	store     storage.Store
	bus       *recordingBus
	cfg       *config.Config
	catalog   *catalog.Catalog
	auth      AuthService
	bookings  BookingService
	listing   ListingService
	shortlist ShortlistService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Load()
	cfg.Listing.SearchDebounce = 20 * time.Millisecond

	cat, err := catalog.New(testHotels())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	f := &fixture{
		store:   storage.NewMemoryStore(),
		bus:     &recordingBus{},
		cfg:     cfg,
		catalog: cat,
		now:     time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	ids := NewIDGenerator(clock)

	f.auth = NewAuthService(
		repository.NewUserRepository(f.store),
		repository.NewSessionRepository(f.store),
		f.bus, cfg,
		WithClock(clock), WithIDGenerator(ids), WithHashParams(fastHash),
	)
	f.bookings = NewBookingService(
		repository.NewBookingRepository(f.store),
		cat, f.bus, cfg,
		WithClock(clock), WithIDGenerator(ids),
	)
	f.listing = NewListingService(cat, cfg)
	f.shortlist = NewShortlistService(repository.NewShortlistRepository(f.store), cat, cfg)
	t.Cleanup(f.listing.Close)
	return f
}

func testHotels() []domain.Hotel {
	hotels := []domain.Hotel{
		{ID: 1, Name: "Taj Palace", City: "Mumbai", Location: "Colaba", Type: domain.PropertyHotel, PricePerNight: 9000, Rating: 4.8, Reviews: 500, Amenities: []string{"WiFi", "Pool", "AC"}},
		{ID: 2, Name: "Sea Breeze", City: "Goa", Location: "Baga", Type: domain.PropertyResort, PricePerNight: 6000, Rating: 4.5, Reviews: 300, Amenities: []string{"WiFi", "Pool"}},
		{ID: 3, Name: "City Nest", City: "Mumbai", Location: "Bandra", Type: domain.PropertyApartment, PricePerNight: 3000, Rating: 4.1, Reviews: 290, Amenities: []string{"WiFi", "Parking"}},
		{ID: 4, Name: "Palm Grove", City: "Goa", Location: "Anjuna", Type: domain.PropertyHotel, PricePerNight: 4000, Rating: 4.5, Reviews: 120, Amenities: []string{"Pool", "Parking", "AC"}},
	}
	// filler so pagination has more than one page
	for id := 5; id <= 24; id++ {
		hotels = append(hotels, domain.Hotel{
			ID: id, Name: "Filler Inn", City: "Pune", Type: domain.PropertyApartment,
			PricePerNight: 1000 + id, Rating: 3.5, Reviews: 10, Amenities: []string{"WiFi"},
		})
	}
	return hotels
}
