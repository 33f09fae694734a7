package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

// Defaults are the process-wide settings a browser starts with
type Defaults struct {
	Theme entity.Theme
}

// Preferences reads and persists per-browser settings
type Preferences struct {
	states   repository.ClientStateRepository
	defaults Defaults
	logger   logger.Logger
}

// NewPreferences creates a new preferences usecase
func NewPreferences(states repository.ClientStateRepository, defaults Defaults, logger logger.Logger) *Preferences {
	if !defaults.Theme.Valid() {
		defaults.Theme = entity.ThemeLight
	}
	return &Preferences{
		states:   states,
		defaults: defaults,
		logger:   logger,
	}
}

// State loads the stored state of a browser, or a fresh one carrying the defaults
func (p *Preferences) State(ctx context.Context, clientID string) (*entity.ClientState, error) {
	state, err := p.states.Get(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return &entity.ClientState{ClientID: clientID, Theme: p.defaults.Theme}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client state: %w", err)
	}
	if !state.Theme.Valid() {
		state.Theme = p.defaults.Theme
	}
	return state, nil
}

// Theme returns the browser's theme. Store failures fall back to the default.
func (p *Preferences) Theme(ctx context.Context, clientID string) entity.Theme {
	state, err := p.State(ctx, clientID)
	if err != nil {
		p.logger.Warn("Falling back to default theme", "clientId", clientID, "error", err)
		return p.defaults.Theme
	}
	return state.Theme
}

// SetTheme stores a new theme for the browser
func (p *Preferences) SetTheme(ctx context.Context, clientID string, theme entity.Theme) error {
	if !theme.Valid() {
		return apperror.Validation("preferences.theme", fmt.Sprintf("unknown theme %q, use light or dark", theme))
	}
	state, err := p.State(ctx, clientID)
	if err != nil {
		return err
	}
	state.Theme = theme
	if err := p.states.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips light and dark and returns the new theme
func (p *Preferences) ToggleTheme(ctx context.Context, clientID string) (entity.Theme, error) {
	state, err := p.State(ctx, clientID)
	if err != nil {
		return "", err
	}
	next := state.Theme.Toggle()
	if err := p.SetTheme(ctx, clientID, next); err != nil {
		return "", err
	}
	return next, nil
}
