package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

// WayraShoppingRepository covers the authenticated resources of the Wayra API:
// cart, favorites, opinions and reservations
type WayraShoppingRepository struct {
	api *WayraAPI
}

// NewWayraShoppingRepository creates a new shopping repository
func NewWayraShoppingRepository(api *WayraAPI) *WayraShoppingRepository {
	return &WayraShoppingRepository{api: api}
}

var (
	_ repository.CartRepository        = (*WayraShoppingRepository)(nil)
	_ repository.FavoriteRepository    = (*WayraShoppingRepository)(nil)
	_ repository.OpinionRepository     = (*WayraShoppingRepository)(nil)
	_ repository.ReservationRepository = (*WayraShoppingRepository)(nil)
)

func userPath(prefix string, userID int64) string {
	return prefix + "/" + strconv.FormatInt(userID, 10)
}

// GetCart fetches the user's cart lines
func (r *WayraShoppingRepository) GetCart(ctx context.Context, token string, userID int64) ([]entity.CartItem, error) {
	var raw json.RawMessage
	call := apiCall{op: "cart.get", resource: "cart", method: http.MethodGet, path: userPath("/cart", userID), token: token}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeList(r.api, call.op, raw, cartItemDTO.toEntity, "items", "cart", "data")
}

// AddItem adds a product line to the cart
func (r *WayraShoppingRepository) AddItem(ctx context.Context, token string, item entity.CartItem) (*entity.CartItem, error) {
	var raw json.RawMessage
	call := apiCall{
		op:       "cart.add",
		resource: "cart",
		method:   http.MethodPost,
		path:     "/cart",
		token:    token,
		body: cartItemBody{
			UserID:      item.UserID,
			ProductID:   item.ProductID,
			ProductType: string(item.ProductType),
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		},
	}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, cartItemDTO.toEntity, "item", "data")
}

// UpdateQuantity replaces a line's quantity and stored total
func (r *WayraShoppingRepository) UpdateQuantity(ctx context.Context, token, itemID string, quantity int, total float64) (*entity.CartItem, error) {
	var raw json.RawMessage
	call := apiCall{
		op:       "cart.update",
		resource: "cart",
		method:   http.MethodPut,
		path:     "/cart/" + url.PathEscape(itemID),
		token:    token,
		body:     quantityBody{Quantity: quantity, TotalPrice: total},
	}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, cartItemDTO.toEntity, "item", "data")
}

// RemoveItem deletes a cart line
func (r *WayraShoppingRepository) RemoveItem(ctx context.Context, token, itemID string) error {
	call := apiCall{op: "cart.remove", resource: "cart", method: http.MethodDelete, path: "/cart/" + url.PathEscape(itemID), token: token}
	return r.api.do(ctx, call, nil)
}

// ListFavorites fetches the user's favorites
func (r *WayraShoppingRepository) ListFavorites(ctx context.Context, token string, userID int64) ([]entity.Favorite, error) {
	var raw json.RawMessage
	call := apiCall{op: "favorites.list", resource: "favorites", method: http.MethodGet, path: userPath("/favorites", userID), token: token}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeList(r.api, call.op, raw, favoriteDTO.toEntity, "favorites", "data")
}

// AddFavorite marks a product as favorite
func (r *WayraShoppingRepository) AddFavorite(ctx context.Context, token string, favorite entity.Favorite) (*entity.Favorite, error) {
	var raw json.RawMessage
	call := apiCall{
		op:       "favorites.add",
		resource: "favorites",
		method:   http.MethodPost,
		path:     "/favorites",
		token:    token,
		body: favoriteBody{
			UserID:      favorite.UserID,
			ProductType: string(favorite.ProductType),
			ProductID:   favorite.ProductID,
		},
	}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, favoriteDTO.toEntity, "favorite", "data")
}

// RemoveFavorite deletes a favorite by its id
func (r *WayraShoppingRepository) RemoveFavorite(ctx context.Context, token, id string) error {
	call := apiCall{op: "favorites.remove", resource: "favorites", method: http.MethodDelete, path: "/favorites/" + url.PathEscape(id), token: token}
	return r.api.do(ctx, call, nil)
}

// CreateOpinion publishes a review. The backend answer is echoed back when it
// carries the stored document, otherwise the submitted opinion is returned.
func (r *WayraShoppingRepository) CreateOpinion(ctx context.Context, token string, opinion entity.Opinion) (*entity.Opinion, error) {
	var raw json.RawMessage
	call := apiCall{
		op:       "opinions.create",
		resource: "opinions",
		method:   http.MethodPost,
		path:     "/opinions",
		token:    token,
		body: opinionBody{
			UserID:      opinion.UserID,
			Type:        string(opinion.Type),
			ReferenceID: opinion.ReferenceID,
			Rating:      opinion.Rating,
			Comment:     opinion.Comment,
		},
	}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	if stored, err := decodeOne(r.api, call.op, raw, opinionDTO.toEntity, "opinion", "data"); err == nil && stored.ID != "" {
		return stored, nil
	}
	return &opinion, nil
}

// ListReservations fetches the user's confirmed bookings
func (r *WayraShoppingRepository) ListReservations(ctx context.Context, token string, userID int64) ([]entity.Reservation, error) {
	var raw json.RawMessage
	call := apiCall{op: "reservations.list", resource: "reservations", method: http.MethodGet, path: userPath("/reservations", userID), token: token}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeList(r.api, call.op, raw, reservationDTO.toEntity, "reservations", "data")
}
