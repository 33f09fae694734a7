package mocks

import (
	"context"
	"sync"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

// MemoryClientStateRepository is an in-memory ClientStateRepository for tests
type MemoryClientStateRepository struct {
	mu     sync.Mutex
	states map[string]entity.ClientState
}

// NewMemoryClientStateRepository creates an empty store
func NewMemoryClientStateRepository() *MemoryClientStateRepository {
	return &MemoryClientStateRepository{states: make(map[string]entity.ClientState)}
}

func (m *MemoryClientStateRepository) Get(ctx context.Context, clientID string) (*entity.ClientState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[clientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &state, nil
}

func (m *MemoryClientStateRepository) Save(ctx context.Context, state *entity.ClientState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.ClientID] = *state
	return nil
}

func (m *MemoryClientStateRepository) ClearSession(ctx context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[clientID]
	if !ok {
		return nil
	}
	state.Token = ""
	state.UserID = 0
	m.states[clientID] = state
	return nil
}

func (m *MemoryClientStateRepository) ListAuthenticated(ctx context.Context) ([]*entity.ClientState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ClientState
	for _, state := range m.states {
		if state.Token != "" {
			s := state
			out = append(out, &s)
		}
	}
	return out, nil
}
