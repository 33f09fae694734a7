package repository

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// AirportRepository resolves airport and terminal codes
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
