package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/apperror"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
)

// LoginInput are the credentials sent by the login form
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the registration form
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionView is what the storefront needs to know about the current browser
type SessionView struct {
	Status        SessionStatus `json:"status"`
	Authenticated bool          `json:"authenticated"`
	UserID        int64         `json:"userId,omitempty"`
	ExpiresAt     *time.Time    `json:"expiresAt,omitempty"`
	Theme         entity.Theme  `json:"theme"`
	Redirect      string        `json:"redirect,omitempty"`
}

// SessionProvider hands out the session of a browser to usecases that call
// authenticated endpoints
type SessionProvider interface {
	RequireSession(ctx context.Context, clientID string) (*entity.ClientState, error)
}

// AuthUsecase logs browsers in and out
type AuthUsecase struct {
	accounts repository.AccountRepository
	states   repository.ClientStateRepository
	prefs    *Preferences
	watcher  *SessionWatcher
	decode   TokenDecoder
	logger   logger.Logger
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	accounts repository.AccountRepository,
	states repository.ClientStateRepository,
	prefs *Preferences,
	watcher *SessionWatcher,
	decode TokenDecoder,
	logger logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		accounts: accounts,
		states:   states,
		prefs:    prefs,
		watcher:  watcher,
		decode:   decode,
		logger:   logger,
	}
}

// Login checks the credentials with the backend, stores the session on the
// browser's state and arms the expiry watcher
func (a *AuthUsecase) Login(ctx context.Context, clientID string, input LoginInput) (*SessionView, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput("auth.login", input); err != nil {
		return nil, err
	}

	token, err := a.accounts.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	claims, err := a.decode(token)
	if err != nil {
		return nil, err
	}

	state, err := a.prefs.State(ctx, clientID)
	if err != nil {
		return nil, err
	}
	state.Token = token
	state.UserID = claims.UserID
	if err := a.states.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	a.logger.Info("User logged in", "clientId", clientID, "userId", claims.UserID)

	return a.Session(ctx, clientID)
}

// Register creates an account. The browser still has to log in afterwards.
func (a *AuthUsecase) Register(ctx context.Context, input RegisterInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput("auth.register", input); err != nil {
		return err
	}
	if err := a.accounts.Register(ctx, input.Name, input.Email, input.Password); err != nil {
		return err
	}
	a.logger.Info("Account registered", "email", input.Email)
	return nil
}

// Logout forgets the browser's session and its pending expiry
func (a *AuthUsecase) Logout(ctx context.Context, clientID string) error {
	a.watcher.Cancel(clientID)
	if err := a.states.ClearSession(ctx, clientID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Session runs the expiry check and reports the browser's session
func (a *AuthUsecase) Session(ctx context.Context, clientID string) (*SessionView, error) {
	status, err := a.watcher.Check(ctx, clientID)
	if err != nil {
		return nil, err
	}
	state, err := a.prefs.State(ctx, clientID)
	if err != nil {
		return nil, err
	}

	view := &SessionView{
		Status: status,
		Theme:  state.Theme,
	}
	if status.Redirects() {
		view.Redirect = LoginPath
	}
	if status == SessionValid {
		view.Authenticated = true
		view.UserID = state.UserID
		if claims, err := a.decode(state.Token); err == nil {
			exp := claims.ExpiresAt
			view.ExpiresAt = &exp
		}
	}
	return view, nil
}

// RequireSession returns the browser's state when it holds a token
func (a *AuthUsecase) RequireSession(ctx context.Context, clientID string) (*entity.ClientState, error) {
	state, err := a.prefs.State(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !state.Authenticated() {
		return nil, apperror.Auth("session.required", "please log in to continue")
	}
	return state, nil
}

// Profile fetches the logged in user's profile
func (a *AuthUsecase) Profile(ctx context.Context, clientID string) (*entity.User, error) {
	state, err := a.RequireSession(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return a.accounts.GetUser(ctx, state.Token, state.UserID)
}
