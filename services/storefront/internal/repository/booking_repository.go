package repository

import (
	"context"
	"sync"

	"github.com/diagnosis/luxstay/pkg/storage"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, bool, error)
}

type bookingRepository struct {
	store storage.Store
	mu    sync.Mutex
}

func NewBookingRepository(store storage.Store) BookingRepository {
	return &bookingRepository{store: store}
}

// Create prepends booking so the collection stays newest first.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := storage.LoadList[domain.Booking](ctx, r.store, storage.KeyBookings)
	if err != nil {
		return err
	}
	bookings = append([]domain.Booking{*booking}, bookings...)
	return storage.SetJSON(ctx, r.store, storage.KeyBookings, bookings)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return storage.LoadList[domain.Booking](ctx, r.store, storage.KeyBookings)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.User == owner {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpdateStatus sets the status of booking id in place. It reports whether the
// stored record changed; a nil booking means id is unknown.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := storage.LoadList[domain.Booking](ctx, r.store, storage.KeyBookings)
	if err != nil {
		return nil, false, err
	}
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if bookings[i].Status == status {
			return &bookings[i], false, nil
		}
		bookings[i].Status = status
		if err := storage.SetJSON(ctx, r.store, storage.KeyBookings, bookings); err != nil {
			return nil, false, err
		}
		return &bookings[i], true, nil
	}
	return nil, false, nil
}
