package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

// WayraAccountRepository handles login, registration and profiles
type WayraAccountRepository struct {
	api *WayraAPI
}

// NewWayraAccountRepository creates a new account repository
func NewWayraAccountRepository(api *WayraAPI) repository.AccountRepository {
	return &WayraAccountRepository{api: api}
}

// Login exchanges credentials for a session token
func (r *WayraAccountRepository) Login(ctx context.Context, email, password string) (string, error) {
	var dto loginDTO
	call := apiCall{
		op:       "auth.login",
		resource: "auth",
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     credentialsBody{Email: email, Password: password},
	}
	if err := r.api.do(ctx, call, &dto); err != nil {
		return "", err
	}
	if err := r.api.check(call.op, &dto); err != nil {
		return "", err
	}
	return dto.Token, nil
}

// Register creates an account; the caller logs in afterwards
func (r *WayraAccountRepository) Register(ctx context.Context, name, email, password string) error {
	call := apiCall{
		op:       "auth.register",
		resource: "auth",
		method:   http.MethodPost,
		path:     "/auth/register",
		body:     credentialsBody{Name: name, Email: email, Password: password},
	}
	return r.api.do(ctx, call, nil)
}

// GetUser fetches the profile of the session's user
func (r *WayraAccountRepository) GetUser(ctx context.Context, token string, id int64) (*entity.User, error) {
	var raw json.RawMessage
	call := apiCall{
		op:       "users.get",
		resource: "users",
		method:   http.MethodGet,
		path:     "/users/" + strconv.FormatInt(id, 10),
		token:    token,
	}
	if err := r.api.do(ctx, call, &raw); err != nil {
		return nil, err
	}
	return decodeOne(r.api, call.op, raw, userDTO.toEntity, "user", "data")
}
