package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type favoriteRequest struct {
	ProductType entity.ProductType `json:"productType"`
	ProductID   string             `json:"productId"`
}

type favoriteResponse struct {
	Favorite bool `json:"favorite"`
}

// GetCart handles GET /api/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.Cart(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddToCart handles POST /api/cart
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddToCart
	if err := decodeJSON(r, "cart.add", &input); err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.cart.Add(r.Context(), ClientID(r.Context()), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdateCartItem handles PUT /api/cart/{itemId}
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(r, "cart.update", &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.cart.UpdateQuantity(r.Context(), ClientID(r.Context()), mux.Vars(r)["itemId"], req.Quantity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// RemoveCartItem handles DELETE /api/cart/{itemId}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), ClientID(r.Context()), mux.Vars(r)["itemId"]); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFavorites handles GET /api/favorites
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List(r.Context(), ClientID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, favorites)
}

// ToggleFavorite handles POST /api/favorites/toggle
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(r, "favorites.toggle", &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	added, err := h.favorites.Toggle(r.Context(), ClientID(r.Context()), req.ProductType, req.ProductID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, favoriteResponse{Favorite: added})
}

// SubmitOpinion handles POST /api/opinions
func (h *Handler) SubmitOpinion(w http.ResponseWriter, r *http.Request) {
	var input usecase.OpinionInput
	if err := decodeJSON(r, "opinions.submit", &input); err != nil {
		h.respondError(w, r, err)
		return
	}
	opinion, err := h.opinions.Submit(r.Context(), ClientID(r.Context()), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, opinion)
}

// GetReservations handles GET /api/reservations
func (h *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	result, err := h.reservations.Receipts(r.Context(), ClientID(r.Context()), queryPage(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ExportReservations handles GET /api/reservations/export
func (h *Handler) ExportReservations(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.reservations.Export(r.Context(), ClientID(r.Context()), &buf); err != nil {
		h.respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("recibos-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("Failed to stream receipts export", "error", err)
	}
}
