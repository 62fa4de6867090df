package service

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/diagnosis/luxstay/services/storefront/internal/repository"
)

// HotelFinder looks hotels up by id.
type HotelFinder interface {
	Find(id int) (*domain.Hotel, bool)
}

type BookingService interface {
	CreateBooking(ctx context.Context, session *domain.Session, req *domain.CreateBookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*domain.Booking, error)
	CancelOwnBooking(ctx context.Context, session *domain.Session, id int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, session *domain.Session) ([]domain.Booking, error)
	Classify(ctx context.Context, session *domain.Session) (upcoming, past []domain.Booking, err error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	hotels      HotelFinder
	eventBus    events.EventBus
	pricing     domain.Pricing
	ids         *IDGenerator
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	hotels HotelFinder,
	eventBus events.EventBus,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	o := newOptions(opts)
	return &bookingService{
		bookingRepo: bookingRepo,
		hotels:      hotels,
		eventBus:    eventBus,
		pricing:     PricingFrom(cfg),
		ids:         o.ids,
		now:         o.now,
	}
}

// PricingFrom reads the quote policy from configuration.
func PricingFrom(cfg *config.Config) domain.Pricing {
	return domain.Pricing{
		TaxBps:            cfg.Pricing.TaxBps,
		DiscountBps:       cfg.Pricing.DiscountBps,
		DiscountMinNights: cfg.Pricing.DiscountMinNights,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, session *domain.Session, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if session == nil || session.User == nil {
		return nil, domain.Invalid("user", "please log in to book")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hotel, ok := s.hotels.Find(req.HotelID)
	if !ok {
		return nil, fmt.Errorf("hotel %d: %w", req.HotelID, domain.ErrNotFound)
	}

	nights, quote, err := s.pricing.QuoteStay(hotel, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            s.ids.Next(),
		HotelID:       hotel.ID,
		HotelName:     hotel.Name,
		HotelLocation: hotel.Location,
		Image:         hotel.Image,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Guests:        req.Guests,
		Nights:        nights,
		Price:         quote,
		User:          session.User.Identifier(),
		CreatedAt:     s.now().UTC(),
		Status:        domain.StatusConfirmed,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.InfoContext(ctx, "Booking confirmed",
		"booking_id", booking.ID,
		"hotel_id", booking.HotelID,
		"nights", booking.Nights,
		"total", booking.Price.Total.String(),
	)

	event := events.BookingConfirmedEvent{
		BookingID:     booking.ID,
		HotelID:       booking.HotelID,
		HotelName:     booking.HotelName,
		HotelLocation: booking.HotelLocation,
		CheckIn:       booking.CheckIn.String(),
		CheckOut:      booking.CheckOut.String(),
		Nights:        booking.Nights,
		Guests:        booking.Guests,
		Total:         booking.Price.Total.Float(),
		Username:      session.User.Username,
		Email:         session.User.Email,
		CreatedAt:     booking.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingConfirmed, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking confirmed event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

// CancelBooking marks booking id CANCELLED. Cancelling twice is not an error.
func (s *bookingService) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.cancel(ctx, id, "")
}

// CancelOwnBooking cancels only bookings owned by the session user; others
// are reported as not found.
func (s *bookingService) CancelOwnBooking(ctx context.Context, session *domain.Session, id int64) (*domain.Booking, error) {
	if session == nil || session.User == nil {
		return nil, domain.Invalid("user", "please log in to manage bookings")
	}
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwner(session.User) {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return s.cancel(ctx, id, session.User.Email)
}

func (s *bookingService) cancel(ctx context.Context, id int64, email string) (*domain.Booking, error) {
	booking, changed, err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	if !changed {
		logger.DebugContext(ctx, "Booking already cancelled", "booking_id", id)
		return booking, nil
	}

	logger.InfoContext(ctx, "Booking cancelled", "booking_id", id)

	event := events.BookingCancelledEvent{
		BookingID:   booking.ID,
		HotelName:   booking.HotelName,
		Owner:       booking.User,
		Email:       email,
		CancelledAt: s.now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, events.BookingCancelled, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking cancelled event", "error", err, "booking_id", id)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return booking, nil
}

// ListBookings returns the session user's bookings, newest first.
func (s *bookingService) ListBookings(ctx context.Context, session *domain.Session) ([]domain.Booking, error) {
	if session == nil || session.User == nil {
		return nil, domain.Invalid("user", "please log in to view bookings")
	}
	bookings, err := s.bookingRepo.ListByOwner(ctx, session.User.Identifier())
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) Classify(ctx context.Context, session *domain.Session) ([]domain.Booking, []domain.Booking, error) {
	bookings, err := s.ListBookings(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	upcoming, past := domain.Classify(bookings, domain.DateOf(s.now()))
	return upcoming, past, nil
}
