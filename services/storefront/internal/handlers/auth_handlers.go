package handlers

import (
	"net/http"

	"github.com/diagnosis/luxstay/internal/http/response"
	"github.com/diagnosis/luxstay/services/storefront/internal/domain"
)

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.UserInfo `json:"user,omitempty"`
	Token         string           `json:"token,omitempty"`
}

func newSessionResponse(s *domain.Session) sessionResponse {
	if s == nil || s.User == nil {
		return sessionResponse{}
	}
	info := s.User.Public()
	return sessionResponse{Authenticated: true, User: &info, Token: s.Token}
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, newSessionResponse(session))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, newSessionResponse(session))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession restores the persisted session, if any, so a reloaded client can
// pick its token back up.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.RestoreSession(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, newSessionResponse(session))
}

func (h *Handlers) LastIdentifier(w http.ResponseWriter, r *http.Request) {
	id, err := h.authService.LastIdentifier(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"identifier": id})
}
