package handlers

import (
	"fmt"
	"net/http"

	"github.com/diagnosis/luxstay/internal/http/response"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
)

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), getSession(r), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, booking)
}

// ListBookings returns the caller's bookings split into upcoming and past.
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	upcoming, past, err := h.bookingService.Classify(r.Context(), getSession(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"upcoming": upcoming,
		"past":     past,
	})
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if session := getSession(r); session == nil || !booking.IsOwner(session.User) {
		handleError(w, r, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound))
		return
	}
	response.JSON(w, http.StatusOK, booking)
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	booking, err := h.bookingService.CancelOwnBooking(r.Context(), getSession(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, booking)
}
