package repository

import (
	"context"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// AccountRepository handles authentication and profiles on the Wayra API
type AccountRepository interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
	GetUser(ctx context.Context, token string, id int64) (*entity.User, error)
}
