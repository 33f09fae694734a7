package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
)

// SessionStatus is the outcome of checking a browser's session
type SessionStatus string

const (
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionValid           SessionStatus = "valid"
	SessionExpired         SessionStatus = "expired"
	SessionMalformed       SessionStatus = "malformed"
)

// Redirects reports whether the browser must be sent to the login page
func (s SessionStatus) Redirects() bool {
	return s == SessionExpired || s == SessionMalformed
}

const (
	LoginPath             = "/login"
	SessionExpiredMessage = "Tu sesión ha expirado. Por favor inicia sesión nuevamente."
)

// Timer is a pending deferred action
type Timer interface {
	Stop() bool
}

// Clock is the time source of the watcher
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// NewRealClock returns the wall clock
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SessionNotifier tells a browser its session ended. An empty message means
// redirect only.
type SessionNotifier interface {
	NotifySessionExpired(clientID, message, redirect string)
}

// TokenDecoder reads the claims of a session token
type TokenDecoder func(raw string) (entity.SessionClaims, error)

type sessionTimer struct {
	timer Timer
	token string
}

// SessionWatcher ends sessions when their token expires. It keeps at most one
// pending timer per browser.
type SessionWatcher struct {
	states   repository.ClientStateRepository
	decode   TokenDecoder
	notifier SessionNotifier
	clock    Clock
	metrics  *metrics.Metrics
	logger   logger.Logger

	mu     sync.Mutex
	timers map[string]*sessionTimer
}

// NewSessionWatcher creates a new session watcher
func NewSessionWatcher(
	states repository.ClientStateRepository,
	decode TokenDecoder,
	notifier SessionNotifier,
	clock Clock,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *SessionWatcher {
	if clock == nil {
		clock = NewRealClock()
	}
	return &SessionWatcher{
		states:   states,
		decode:   decode,
		notifier: notifier,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
		timers:   make(map[string]*sessionTimer),
	}
}

// Check inspects the browser's token and acts on it: nothing without a token,
// an immediate logout when it is expired or unreadable, otherwise one timer
// set to fire at its expiry.
func (w *SessionWatcher) Check(ctx context.Context, clientID string) (SessionStatus, error) {
	state, err := w.states.Get(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !state.Authenticated()) {
		w.Cancel(clientID)
		return SessionUnauthenticated, nil
	}
	if err != nil {
		return "", err
	}

	claims, err := w.decode(state.Token)
	if err != nil {
		w.logger.Warn("Unreadable session token", "clientId", clientID, "error", err)
		return SessionMalformed, w.expireNow(ctx, clientID, "malformed")
	}

	now := w.clock.Now()
	if claims.Expired(now) {
		return SessionExpired, w.expireNow(ctx, clientID, "expired")
	}

	w.arm(clientID, state.Token, claims.ExpiresAt.Sub(now))
	return SessionValid, nil
}

// Cancel drops the pending timer of a browser, if any
func (w *SessionWatcher) Cancel(clientID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if pending, ok := w.timers[clientID]; ok {
		pending.timer.Stop()
		delete(w.timers, clientID)
		w.updateGauge()
	}
}

// Stop cancels every pending timer
func (w *SessionWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, pending := range w.timers {
		pending.timer.Stop()
		delete(w.timers, id)
	}
	w.updateGauge()
}

// Restore re-checks every browser that holds a token, re-arming timers after a restart
func (w *SessionWatcher) Restore(ctx context.Context) error {
	states, err := w.states.ListAuthenticated(ctx)
	if err != nil {
		return err
	}
	for _, state := range states {
		status, err := w.Check(ctx, state.ClientID)
		if err != nil {
			w.logger.Error("Failed to restore session", "clientId", state.ClientID, "error", err)
			continue
		}
		w.logger.Debug("Session restored", "clientId", state.ClientID, "status", status)
	}
	w.logger.Info("Session watcher restored", "sessions", len(states), "timers", w.Pending())
	return nil
}

// Pending returns how many timers are armed
func (w *SessionWatcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *SessionWatcher) arm(clientID, token string, delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if previous, ok := w.timers[clientID]; ok {
		previous.timer.Stop()
	}
	pending := &sessionTimer{token: token}
	pending.timer = w.clock.AfterFunc(delay, func() { w.fire(clientID, pending) })
	w.timers[clientID] = pending
	w.updateGauge()
}

func (w *SessionWatcher) fire(clientID string, pending *sessionTimer) {
	w.mu.Lock()
	if w.timers[clientID] != pending {
		w.mu.Unlock()
		return
	}
	delete(w.timers, clientID)
	w.updateGauge()
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// A new login may have replaced the token since the timer was armed.
	if state, err := w.states.Get(ctx, clientID); err == nil && state.Token != pending.token {
		return
	}
	if err := w.states.ClearSession(ctx, clientID); err != nil {
		w.logger.Error("Failed to clear expired session", "clientId", clientID, "error", err)
	}
	w.countExpired("timer")
	w.logger.Info("Session expired", "clientId", clientID)
	if w.notifier != nil {
		w.notifier.NotifySessionExpired(clientID, SessionExpiredMessage, LoginPath)
	}
}

func (w *SessionWatcher) expireNow(ctx context.Context, clientID, reason string) error {
	w.Cancel(clientID)
	if err := w.states.ClearSession(ctx, clientID); err != nil {
		return err
	}
	w.countExpired(reason)
	if w.notifier != nil {
		w.notifier.NotifySessionExpired(clientID, "", LoginPath)
	}
	return nil
}

func (w *SessionWatcher) countExpired(reason string) {
	if w.metrics != nil {
		w.metrics.SessionsExpired.WithLabelValues(reason).Inc()
	}
}

// updateGauge must be called with mu held
func (w *SessionWatcher) updateGauge() {
	if w.metrics != nil {
		w.metrics.SessionTimers.Set(float64(len(w.timers)))
	}
}
