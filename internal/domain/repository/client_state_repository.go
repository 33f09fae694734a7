package repository

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// ClientStateRepository persists per-browser session and theme. Writes are last-write-wins.
type ClientStateRepository interface {
	Get(ctx context.Context, clientID string) (*entity.ClientState, error)
	Save(ctx context.Context, state *entity.ClientState) error
	ClearSession(ctx context.Context, clientID string) error
	ListAuthenticated(ctx context.Context) ([]*entity.ClientState, error)
}
