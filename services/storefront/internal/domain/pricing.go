package domain

import "time"

// Pricing is the quote policy. Rates are basis points of the base price.
type Pricing struct {
	TaxBps            int64
	DiscountBps       int64
	DiscountMinNights int
}

// DefaultPricing charges 12% tax and takes 5% off the base price of every stay.
func DefaultPricing() Pricing {
	return Pricing{TaxBps: 1200, DiscountBps: 500, DiscountMinNights: 1}
}

type Quote struct {
	BasePrice Amount `json:"basePrice"`
	Taxes     Amount `json:"taxes"`
	Discount  Amount `json:"discount"`
	Total     Amount `json:"total"`
}

// NightsBetween is the whole-day span from checkIn to checkOut, truncated.
// Reversed or equal dates give zero or a negative count.
func NightsBetween(checkIn, checkOut Date) int {
	return int(checkOut.Sub(checkIn.Time) / (24 * time.Hour))
}

// Breakdown prices nights stays at pricePerNight rupees.
func (p Pricing) Breakdown(pricePerNight, nights int) (Quote, error) {
	if pricePerNight <= 0 {
		return Quote{}, Invalid("pricePerNight", "price per night must be positive")
	}
	if nights <= 0 {
		return Quote{}, Invalid("nights", "check-out date must be after check-in date")
	}

	base := Rupees(int64(pricePerNight) * int64(nights))
	q := Quote{
		BasePrice: base,
		Taxes:     base.percentOf(p.TaxBps),
	}
	if nights >= p.DiscountMinNights {
		q.Discount = base.percentOf(p.DiscountBps)
	}
	q.Total = q.BasePrice + q.Taxes - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}
	return q, nil
}

// PriceBreakdown applies DefaultPricing.
func PriceBreakdown(pricePerNight, nights int) (Quote, error) {
	return DefaultPricing().Breakdown(pricePerNight, nights)
}

// QuoteStay validates the date range and prices it for hotel.
func (p Pricing) QuoteStay(hotel *Hotel, checkIn, checkOut Date) (int, Quote, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0, Quote{}, Invalid("dates", "please select both check-in and check-out dates")
	}
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nights, Quote{}, Invalid("checkOut", "check-out date must be after check-in date")
	}
	q, err := p.Breakdown(hotel.PricePerNight, nights)
	return nights, q, err
}
