package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/diagnosis/luxstay/internal/http/response"
	"github.com/diagnosis/luxstay/pkg/config"
	"github.com/diagnosis/luxstay/pkg/logger"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/diagnosis/luxstay/services/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	authService      service.AuthService
	bookingService   service.BookingService
	listingService   service.ListingService
	shortlistService service.ShortlistService
	config           *config.Config
}

func New(
	authService service.AuthService,
	bookingService service.BookingService,
	listingService service.ListingService,
	shortlistService service.ShortlistService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		authService:      authService,
		bookingService:   bookingService,
		listingService:   listingService,
		shortlistService: shortlistService,
		config:           cfg,
	}
}

// Routes mounts the storefront API under /v1.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", h.ListHotels)
			r.Get("/recommended", h.Recommended)
			r.Get("/{id}", h.GetHotel)
			r.Get("/{id}/quote", h.QuoteStay)
		})

		r.Get("/browse", h.GetBrowse)
		r.Patch("/browse", h.UpdateBrowse)
		r.Post("/browse/more", h.LoadMore)

		r.Get("/favorites", h.ListFavorites)
		r.Post("/favorites/{id}", h.ToggleFavorite)
		r.Get("/recent", h.ListRecent)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/session", h.GetSession)
			r.Get("/last-identifier", h.LastIdentifier)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(h.RequireSession)
			r.Post("/", h.CreateBooking)
			r.Get("/", h.ListBookings)
			r.Get("/{id}", h.GetBooking)
			r.Delete("/{id}", h.CancelBooking)
		})
	})
}

type ctxKey string

const sessionKey ctxKey = "session"

// RequireSession admits requests whose bearer token is the active session token.
func (h *Handlers) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(w, "Please log in to continue")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := h.authService.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				logger.ErrorContext(r.Context(), "Failed to authenticate session", "error", err)
			}
			response.Unauthorized(w, "Session expired, please log in again")
			return
		}

		ctx := context.WithValue(r.Context(), logger.UserIDKey, session.User.ID)
		ctx = context.WithValue(ctx, sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSession(r *http.Request) *domain.Session {
	if s, ok := r.Context().Value(sessionKey).(*domain.Session); ok {
		return s
	}
	return nil
}

// handleError maps domain errors onto HTTP responses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		response.WriteErrorWithDetails(w, http.StatusBadRequest, verr.Message, response.CodeInvalidInput, verr.Field)
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.WriteError(w, http.StatusUnauthorized, "Invalid username/email or password", response.CodeInvalidCredentials)
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Conflict(w, "An account with this username or email already exists")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, err.Error())
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		response.InternalError(w, "Something went wrong")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("body", "Invalid JSON format")
	}
	return nil
}

func intParam(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, domain.Invalid(name, "invalid %s", name)
	}
	return n, nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, domain.Invalid(name, "invalid %s", name)
	}
	return n, nil
}
