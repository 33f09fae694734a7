package repository

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// RouteDurationRepository looks up known travel times for a directed pair
type RouteDurationRepository interface {
	Find(ctx context.Context, origin, destination string) (*entity.RouteDuration, error)
}
