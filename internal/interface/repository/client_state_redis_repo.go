package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

const authenticatedClientsKey = "clients:authenticated"

// RedisClientStateRepository implements ClientStateRepository on Redis.
// Each browser is a hash under client:{id}; authenticated ids are kept in a set.
type RedisClientStateRepository struct {
	client *redis.Client
	logger logger.Logger
	now    func() time.Time
}

// NewRedisClientStateRepository creates a new client state repository
func NewRedisClientStateRepository(client *redis.Client, logger logger.Logger) repository.ClientStateRepository {
	return &RedisClientStateRepository{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func clientKey(clientID string) string {
	return "client:" + clientID
}

// Get reads the state of one browser
func (r *RedisClientStateRepository) Get(ctx context.Context, clientID string) (*entity.ClientState, error) {
	fields, err := r.client.HGetAll(ctx, clientKey(clientID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client state: %w", err)
	}
	if len(fields) == 0 {
		return nil, repository.ErrNotFound
	}

	state := &entity.ClientState{
		ClientID: clientID,
		Token:    fields["token"],
		Theme:    entity.Theme(fields["theme"]),
	}
	if raw := fields["userId"]; raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			state.UserID = id
		}
	}
	if raw := fields["updatedAt"]; raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			state.UpdatedAt = t
		}
	}
	return state, nil
}

// Save writes the state of one browser and keeps the authenticated set in step
func (r *RedisClientStateRepository) Save(ctx context.Context, state *entity.ClientState) error {
	state.UpdatedAt = r.now()
	key := clientKey(state.ClientID)

	err := r.client.HSet(ctx, key,
		"token", state.Token,
		"userId", strconv.FormatInt(state.UserID, 10),
		"theme", string(state.Theme),
		"updatedAt", state.UpdatedAt.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save client state: %w", err)
	}

	if state.Authenticated() {
		err = r.client.SAdd(ctx, authenticatedClientsKey, state.ClientID).Err()
	} else {
		err = r.client.SRem(ctx, authenticatedClientsKey, state.ClientID).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to index client state: %w", err)
	}
	return nil
}

// ClearSession drops the token and user id but keeps the theme
func (r *RedisClientStateRepository) ClearSession(ctx context.Context, clientID string) error {
	key := clientKey(clientID)
	if err := r.client.HDel(ctx, key, "token", "userId").Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := r.client.HSet(ctx, key, "updatedAt", r.now().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := r.client.SRem(ctx, authenticatedClientsKey, clientID).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ListAuthenticated returns every browser currently holding a token. Ids whose
// hash vanished or lost its token are pruned from the set.
func (r *RedisClientStateRepository) ListAuthenticated(ctx context.Context) ([]*entity.ClientState, error) {
	ids, err := r.client.SMembers(ctx, authenticatedClientsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list authenticated clients: %w", err)
	}

	states := make([]*entity.ClientState, 0, len(ids))
	for _, id := range ids {
		state, err := r.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && !state.Authenticated()) {
			if err := r.client.SRem(ctx, authenticatedClientsKey, id).Err(); err != nil {
				r.logger.Warn("Failed to prune stale authenticated client", "clientId", id, "error", err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}
