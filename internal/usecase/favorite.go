package usecase

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

// FavoriteUsecase manages the logged in user's favorites
type FavoriteUsecase struct {
	favorites repository.FavoriteRepository
	sessions  SessionProvider
	logger    logger.Logger
}

// NewFavoriteUsecase creates a new favorite usecase
func NewFavoriteUsecase(favorites repository.FavoriteRepository, sessions SessionProvider, logger logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		favorites: favorites,
		sessions:  sessions,
		logger:    logger,
	}
}

// List returns the user's favorites
func (f *FavoriteUsecase) List(ctx context.Context, clientID string) ([]entity.Favorite, error) {
	state, err := f.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return f.favorites.ListFavorites(ctx, state.Token, state.UserID)
}

// Toggle removes the product from favorites when it is there and adds it
// otherwise. It reports whether the product ended up as a favorite.
func (f *FavoriteUsecase) Toggle(ctx context.Context, clientID string, productType entity.ProductType, productID string) (bool, error) {
	if !productType.Valid() {
		return false, apperror.Validation("favorites.toggle", "productType must be one of: hotel flight bus")
	}
	if productID == "" {
		return false, apperror.Validation("favorites.toggle", "productId is required")
	}
	state, err := f.sessions.RequireSession(ctx, clientID)
	if err != nil {
		return false, err
	}

	current, err := f.favorites.ListFavorites(ctx, state.Token, state.UserID)
	if err != nil {
		return false, err
	}
	for _, fav := range current {
		if fav.ProductType == productType && fav.ProductID == productID {
			if err := f.favorites.RemoveFavorite(ctx, state.Token, fav.ID); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	_, err = f.favorites.AddFavorite(ctx, state.Token, entity.Favorite{
		UserID:      state.UserID,
		ProductType: productType,
		ProductID:   productID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
