package handler

import (
	"net/http"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/usecase"
)

type themeRequest struct {
	Theme entity.Theme `json:"theme"`
}

type themeResponse struct {
	Theme entity.Theme `json:"theme"`
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := decodeJSON(r, "auth.login", &input); err != nil {
		h.respondError(w, r, err)
		return
	}
	view, err := h.auth.Login(r.Context(), ClientID(r.Context()), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := decodeJSON(r, "auth.register", &input); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.auth.Register(r.Context(), input); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clientID := ClientID(r.Context())
	if err := h.auth.Logout(r.Context(), clientID); err != nil {
		h.respondError(w, r, err)
		return
	}
	view, err := h.auth.Session(r.Context(), clientID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetSession handles GET /api/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.auth.Session(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetProfile handles GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Profile(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetTheme handles GET /api/preferences/theme
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, themeResponse{Theme: h.prefs.Theme(r.Context(), ClientID(r.Context()))})
}

// SetTheme handles PUT /api/preferences/theme
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, "preferences.theme", &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.prefs.SetTheme(r.Context(), ClientID(r.Context()), req.Theme); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, themeResponse{Theme: req.Theme})
}

// ToggleTheme handles POST /api/preferences/theme/toggle
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.prefs.ToggleTheme(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, themeResponse{Theme: theme})
}
