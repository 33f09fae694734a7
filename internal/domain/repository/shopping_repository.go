package repository

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// CartRepository mutates a user's cart on the Wayra API
type CartRepository interface {
	GetCart(ctx context.Context, token string, userID int64) ([]entity.CartItem, error)
	AddItem(ctx context.Context, token string, item entity.CartItem) (*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, token, itemID string, quantity int, total float64) (*entity.CartItem, error)
	RemoveItem(ctx context.Context, token, itemID string) error
}

// FavoriteRepository toggles favorites on the Wayra API
type FavoriteRepository interface {
	ListFavorites(ctx context.Context, token string, userID int64) ([]entity.Favorite, error)
	AddFavorite(ctx context.Context, token string, favorite entity.Favorite) (*entity.Favorite, error)
	RemoveFavorite(ctx context.Context, token, id string) error
}

// OpinionRepository publishes reviews on the Wayra API
type OpinionRepository interface {
	CreateOpinion(ctx context.Context, token string, opinion entity.Opinion) (*entity.Opinion, error)
}

// ReservationRepository reads confirmed bookings from the Wayra API
type ReservationRepository interface {
	ListReservations(ctx context.Context, token string, userID int64) ([]entity.Reservation, error)
}
