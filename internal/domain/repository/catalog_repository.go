package repository

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// CatalogRepository reads the public catalog from the Wayra API
type CatalogRepository interface {
	ListHotels(ctx context.Context) ([]entity.Hotel, error)
	GetHotel(ctx context.Context, id string) (*entity.Hotel, error)

	ListBuses(ctx context.Context) ([]entity.Bus, error)
	GetBus(ctx context.Context, id string) (*entity.Bus, error)
	BusesByOrigin(ctx context.Context, origin string) ([]entity.Bus, error)
	BusesByDestination(ctx context.Context, destination string) ([]entity.Bus, error)
	BusesByPriceRange(ctx context.Context, min, max float64) ([]entity.Bus, error)
	BusesByDepartureDate(ctx context.Context, date string) ([]entity.Bus, error)
	BusesByType(ctx context.Context, busType string) ([]entity.Bus, error)

	SearchFlights(ctx context.Context, search entity.FlightSearch) (*entity.FlightResults, error)
}
