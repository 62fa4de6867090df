package service

import (
	"context"
	"testing"
	"time"

	"github.com/diagnosis/luxstay/pkg/events"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIn(t *testing.T, f *fixture, username string) *domain.Session {
	t.Helper()
	s, err := f.auth.Signup(context.Background(), username, username+"@example.com", "pw")
	require.NoError(t, err)
	return s
}

func stay(hotelID int, in, out domain.Date, guests int) *domain.CreateBookingRequest {
	return &domain.CreateBookingRequest{HotelID: hotelID, CheckIn: in, CheckOut: out, Guests: guests}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := signedIn(t, f, "alice")

	b, err := f.bookings.CreateBooking(ctx, session, stay(4, domain.NewDate(2024, 1, 1), domain.NewDate(2024, 1, 4), 2))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, domain.Rupees(12000), b.Price.BasePrice)
	assert.Equal(t, domain.Rupees(1440), b.Price.Taxes)
	assert.Equal(t, domain.Rupees(600), b.Price.Discount)
	assert.Equal(t, domain.Rupees(12840), b.Price.Total)
	assert.Equal(t, "Palm Grove", b.HotelName)
	assert.Equal(t, "Anjuna", b.HotelLocation)
	assert.Equal(t, "alice", b.User)
	assert.Equal(t, f.now, b.CreatedAt)

	assert.Equal(t, []string{events.UserSignedUp, events.BookingConfirmed}, f.bus.subjects())
	evt := f.bus.published[1].data.(events.BookingConfirmedEvent)
	assert.Equal(t, "2024-01-01", evt.CheckIn)
	assert.Equal(t, 12840.0, evt.Total)
	assert.Equal(t, "alice@example.com", evt.Email)
}

func TestCreateBooking_NewestFirstWithUniqueIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := signedIn(t, f, "alice")

	first, err := f.bookings.CreateBooking(ctx, session, stay(1, domain.NewDate(2024, 7, 1), domain.NewDate(2024, 7, 2), 1))
	require.NoError(t, err)
	second, err := f.bookings.CreateBooking(ctx, session, stay(2, domain.NewDate(2024, 8, 1), domain.NewDate(2024, 8, 2), 1))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := f.bookings.ListBookings(ctx, session)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCreateBooking_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := signedIn(t, f, "alice")
	in, out := domain.NewDate(2024, 1, 1), domain.NewDate(2024, 1, 4)

	_, err := f.bookings.CreateBooking(ctx, nil, stay(1, in, out, 2))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.bookings.CreateBooking(ctx, session, stay(1, domain.Date{}, out, 2))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.bookings.CreateBooking(ctx, session, stay(1, out, in, 2))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.bookings.CreateBooking(ctx, session, stay(1, in, in, 2))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.bookings.CreateBooking(ctx, session, stay(1, in, out, 0))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.bookings.CreateBooking(ctx, session, stay(999, in, out, 2))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.bookings.ListBookings(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCancelBooking_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := signedIn(t, f, "alice")

	b, err := f.bookings.CreateBooking(ctx, session, stay(1, domain.NewDate(2024, 7, 1), domain.NewDate(2024, 7, 3), 2))
	require.NoError(t, err)

	cancelled, err := f.bookings.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	again, err := f.bookings.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)

	stored, err := f.bookings.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	// one cancel event despite two calls
	assert.Equal(t, []string{events.UserSignedUp, events.BookingConfirmed, events.BookingCancelled}, f.bus.subjects())

	_, err = f.bookings.CancelBooking(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelOwnBooking_ChecksOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := signedIn(t, f, "alice")

	b, err := f.bookings.CreateBooking(ctx, alice, stay(1, domain.NewDate(2024, 7, 1), domain.NewDate(2024, 7, 3), 2))
	require.NoError(t, err)

	bob := signedIn(t, f, "bob")
	_, err = f.bookings.CancelOwnBooking(ctx, bob, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := f.bookings.CancelOwnBooking(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	evt := f.bus.published[len(f.bus.published)-1].data.(events.BookingCancelledEvent)
	assert.Equal(t, "alice@example.com", evt.Email)
}

func TestClassifyBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := signedIn(t, f, "alice")

	past, err := f.bookings.CreateBooking(ctx, session, stay(1, domain.NewDate(2024, 4, 28), domain.NewDate(2024, 5, 1), 1))
	require.NoError(t, err)
	upcoming, err := f.bookings.CreateBooking(ctx, session, stay(2, domain.NewDate(2024, 11, 28), domain.NewDate(2024, 12, 1), 1))
	require.NoError(t, err)
	cancelled, err := f.bookings.CreateBooking(ctx, session, stay(3, domain.NewDate(2024, 11, 1), domain.NewDate(2024, 11, 2), 1))
	require.NoError(t, err)
	_, err = f.bookings.CancelBooking(ctx, cancelled.ID)
	require.NoError(t, err)

	up, old, err := f.bookings.Classify(ctx, session)
	require.NoError(t, err)
	require.Len(t, up, 1)
	assert.Equal(t, upcoming.ID, up[0].ID)
	require.Len(t, old, 2)
	assert.Equal(t, cancelled.ID, old[0].ID)
	assert.Equal(t, past.ID, old[1].ID)
}

func TestIDGenerator_MonotonicWithinMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := NewIDGenerator(func() time.Time { return fixed })

	a, b, c := g.Next(), g.Next(), g.Next()
	assert.Equal(t, int64(1700000000000), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, b+1, c)
}
