package domain

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

const (
	MinGuests = 1
	MaxGuests = 10
)

type Booking struct {
	ID            int64         `json:"bookingId"`
	HotelID       int           `json:"hotelId"`
	HotelName     string        `json:"hotelName"`
	HotelLocation string        `json:"hotelLocation"`
	Image         string        `json:"image"`
	CheckIn       Date          `json:"checkIn"`
	CheckOut      Date          `json:"checkOut"`
	Guests        int           `json:"guests"`
	Nights        int           `json:"nights"`
	Price         Quote         `json:"price"`
	User          string        `json:"user"`
	CreatedAt     time.Time     `json:"createdAt"`
	Status        BookingStatus `json:"status"`
}

// IsOwner matches the booking's owner identifier against the session user.
func (b *Booking) IsOwner(u *User) bool {
	return u != nil && b.User != "" && b.User == u.Identifier()
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

type CreateBookingRequest struct {
	HotelID  int  `json:"hotelId"`
	CheckIn  Date `json:"checkIn"`
	CheckOut Date `json:"checkOut"`
	Guests   int  `json:"guests"`
}

func (r *CreateBookingRequest) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return Invalid("dates", "please select both check-in and check-out dates")
	}
	if NightsBetween(r.CheckIn, r.CheckOut) <= 0 {
		return Invalid("checkOut", "check-out date must be after check-in date")
	}
	if r.Guests < MinGuests || r.Guests > MaxGuests {
		return Invalid("guests", "guests must be between %d and %d", MinGuests, MaxGuests)
	}
	return nil
}

// Classify splits bookings into upcoming and past relative to today. A
// booking lands in exactly one bucket; cancelled bookings are always past.
// Input order is preserved within each bucket.
func Classify(bookings []Booking, today Date) (upcoming, past []Booking) {
	upcoming, past = []Booking{}, []Booking{}
	for _, b := range bookings {
		if !b.IsCancelled() && !b.CheckOut.Before(today.Time) {
			upcoming = append(upcoming, b)
		} else {
			past = append(past, b)
		}
	}
	return upcoming, past
}
