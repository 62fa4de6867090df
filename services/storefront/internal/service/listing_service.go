package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/karlseguin/ccache/v3"
)

// Catalog is the read-only hotel list the listing pipeline runs over.
type Catalog interface {
	HotelFinder
	All() []domain.Hotel
}

// BrowseView is one rendered page of the listing.
type BrowseView struct {
	Criteria     domain.Criteria `json:"criteria"`
	Hotels       []domain.Hotel  `json:"hotels"`
	Total        int             `json:"total"`
	Visible      int             `json:"visible"`
	HasMore      bool            `json:"hasMore"`
	PendingQuery *string         `json:"pendingQuery,omitempty"`
}

type QuoteResult struct {
	HotelID  int          `json:"hotelId"`
	CheckIn  domain.Date  `json:"checkIn"`
	CheckOut domain.Date  `json:"checkOut"`
	Nights   int          `json:"nights"`
	Price    domain.Quote `json:"price"`
}

type ListingService interface {
	Search(ctx context.Context, criteria domain.Criteria) ([]domain.Hotel, error)
	Hotel(ctx context.Context, id int) (*domain.Hotel, error)
	Quote(ctx context.Context, hotelID int, checkIn, checkOut domain.Date) (*QuoteResult, error)
	Browse(ctx context.Context) (*BrowseView, error)
	UpdateBrowse(ctx context.Context, criteria domain.Criteria) (*BrowseView, error)
	LoadMore(ctx context.Context) (*BrowseView, error)
	Close()
}

type listingService struct {
	catalog   Catalog
	pricing   domain.Pricing
	cache     *ccache.Cache[[]domain.Hotel]
	cacheTTL  time.Duration
	debouncer *Debouncer

	mu           sync.Mutex
	browse       *domain.Browse
	pendingQuery *string
}

func NewListingService(catalog Catalog, cfg *config.Config) ListingService {
	return &listingService{
		catalog:   catalog,
		pricing:   PricingFrom(cfg),
		cache:     ccache.New(ccache.Configure[[]domain.Hotel]().MaxSize(cfg.Listing.CacheSize)),
		cacheTTL:  cfg.Listing.CacheTTL,
		debouncer: NewDebouncer(cfg.Listing.SearchDebounce),
		browse:    domain.NewBrowse(cfg.Listing.PageSize),
	}
}

// Search runs the filter and sort pipeline, memoized per normalized criteria.
// The returned slice is shared; callers must not modify it.
func (s *listingService) Search(ctx context.Context, criteria domain.Criteria) ([]domain.Hotel, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	key := criteria.Key()

	item, err := s.cache.Fetch(key, s.cacheTTL, func() ([]domain.Hotel, error) {
		logger.DebugContext(ctx, "Listing cache miss", "key", key)
		return domain.FilterAndSort(s.catalog.All(), criteria), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	return item.Value(), nil
}

func (s *listingService) Hotel(ctx context.Context, id int) (*domain.Hotel, error) {
	hotel, ok := s.catalog.Find(id)
	if !ok {
		return nil, fmt.Errorf("hotel %d: %w", id, domain.ErrNotFound)
	}
	return hotel, nil
}

// Quote prices a stay. It is recomputed on every call.
func (s *listingService) Quote(ctx context.Context, hotelID int, checkIn, checkOut domain.Date) (*QuoteResult, error) {
	hotel, err := s.Hotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	nights, quote, err := s.pricing.QuoteStay(hotel, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{HotelID: hotelID, CheckIn: checkIn, CheckOut: checkOut, Nights: nights, Price: quote}, nil
}

func (s *listingService) Browse(ctx context.Context) (*BrowseView, error) {
	s.mu.Lock()
	browse := *s.browse
	pending := s.pendingQuery
	s.mu.Unlock()

	results, err := s.Search(ctx, browse.Criteria)
	if err != nil {
		return nil, err
	}
	page, more := browse.Page(results)
	return &BrowseView{
		Criteria:     browse.Criteria,
		Hotels:       page,
		Total:        len(results),
		Visible:      len(page),
		HasMore:      more,
		PendingQuery: pending,
	}, nil
}

// UpdateBrowse applies filter and sort changes at once. A changed search
// query only lands after the debounce quiet period.
func (s *listingService) UpdateBrowse(ctx context.Context, criteria domain.Criteria) (*BrowseView, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	criteria = criteria.Normalize()

	s.mu.Lock()
	immediate := criteria
	immediate.Query = s.browse.Criteria.Query
	s.browse.Apply(immediate)

	queryChanged := criteria.Query != s.browse.Criteria.Query
	if queryChanged {
		q := criteria.Query
		s.pendingQuery = &q
	} else {
		s.pendingQuery = nil
	}
	s.mu.Unlock()

	if queryChanged {
		q := criteria.Query
		s.debouncer.Trigger(func() { s.applyQuery(q) })
	} else {
		s.debouncer.Cancel()
	}

	return s.Browse(ctx)
}

func (s *listingService) applyQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	criteria := s.browse.Criteria
	criteria.Query = q
	s.browse.Apply(criteria)
	if s.pendingQuery != nil && *s.pendingQuery == q {
		s.pendingQuery = nil
	}
	logger.Debug("Applied search query", "query", q)
}

func (s *listingService) LoadMore(ctx context.Context) (*BrowseView, error) {
	s.mu.Lock()
	s.browse.LoadMore()
	s.mu.Unlock()

	return s.Browse(ctx)
}

func (s *listingService) Close() {
	s.debouncer.Cancel()
	s.cache.Stop()
}
