package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/diagnosis/luxstay/internal/http/response"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
	"github.com/google/go-querystring/query"
)

// listQuery is the /v1/hotels query string.
type listQuery struct {
	domain.Criteria
	Limit int `url:"limit,omitempty"`
}

type hotelsResponse struct {
	Hotels  []domain.Hotel `json:"hotels"`
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
	HasMore bool           `json:"hasMore"`
}

func parseListQuery(r *http.Request, pageSize int) (listQuery, error) {
	q := r.URL.Query()
	lq := listQuery{
		Criteria: domain.Criteria{
			Query: q.Get("q"),
			Type:  domain.PropertyType(q.Get("type")),
			Sort:  domain.SortKey(q.Get("sort")),
		},
		Limit: pageSize,
	}

	if v := q.Get("maxPrice"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return lq, domain.Invalid("maxPrice", "max price must be a whole number")
		}
		lq.MaxPrice = n
	}
	if v := q.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return lq, domain.Invalid("minRating", "min rating must be a number")
		}
		lq.MinRating = f
	}
	if v := q.Get("amenities"); v != "" {
		lq.Amenities = strings.Split(v, ",")
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return lq, domain.Invalid("limit", "limit must be a positive number")
		}
		lq.Limit = n
	}

	if err := lq.Criteria.Validate(); err != nil {
		return lq, err
	}
	lq.Criteria = lq.Criteria.Normalize()
	return lq, nil
}

// ListHotels is the stateless listing: filters and sort come from the query
// string, and limit reveals that many results. A Link header points at the
// next page when more remain.
func (h *Handlers) ListHotels(w http.ResponseWriter, r *http.Request) {
	pageSize := h.config.Listing.PageSize
	lq, err := parseListQuery(r, pageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}

	results, err := h.listingService.Search(r.Context(), lq.Criteria)
	if err != nil {
		handleError(w, r, err)
		return
	}

	visible := min(lq.Limit, len(results))
	hasMore := visible < len(results)
	if hasMore {
		next := lq
		next.Limit = lq.Limit + pageSize
		if v, err := query.Values(next); err == nil {
			w.Header().Set("Link", `<`+r.URL.Path+`?`+v.Encode()+`>; rel="next"`)
		}
	}

	response.JSON(w, http.StatusOK, hotelsResponse{
		Hotels:  results[:visible],
		Total:   len(results),
		Visible: visible,
		HasMore: hasMore,
	})
}

func (h *Handlers) Recommended(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.shortlistService.Recommendations(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"hotels": hotels})
}

// GetHotel returns the hotel details and records the view.
func (h *Handlers) GetHotel(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	hotel, err := h.shortlistService.View(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	favorite, err := h.shortlistService.IsFavorite(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"hotel":    hotel,
		"favorite": favorite,
	})
}

func (h *Handlers) QuoteStay(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	checkIn, err := dateQuery(r, "checkIn")
	if err != nil {
		handleError(w, r, err)
		return
	}
	checkOut, err := dateQuery(r, "checkOut")
	if err != nil {
		handleError(w, r, err)
		return
	}

	quote, err := h.listingService.Quote(r.Context(), id, checkIn, checkOut)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, quote)
}

func dateQuery(r *http.Request, name string) (domain.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		return domain.Date{}, domain.Invalid(name, "%s must be a date like 2024-01-31", name)
	}
	return d, nil
}

func (h *Handlers) GetBrowse(w http.ResponseWriter, r *http.Request) {
	view, err := h.listingService.Browse(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// UpdateBrowse replaces the browse criteria. Search text is debounced, so the
// response may still show the previous query with pendingQuery set.
func (h *Handlers) UpdateBrowse(w http.ResponseWriter, r *http.Request) {
	var criteria domain.Criteria
	if err := decodeJSON(r, &criteria); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := h.listingService.UpdateBrowse(r.Context(), criteria)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

func (h *Handlers) LoadMore(w http.ResponseWriter, r *http.Request) {
	view, err := h.listingService.LoadMore(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	on, err := h.shortlistService.ToggleFavorite(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"hotelId": id, "favorite": on})
}

func (h *Handlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.shortlistService.Favorites(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"hotels": hotels})
}

func (h *Handlers) ListRecent(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.shortlistService.Recent(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"hotels": hotels})
}
