// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/observable"
)

// Navigator performs client-side route transitions after auth outcomes.
type Navigator interface {
	Navigate(path string)
}

// Notifier is the slice of the notification center the manager fires.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
	Info(title, message string)
}

// Session is the slice of the session store the manager orchestrates.
type Session interface {
	Login(ctx context.Context, email, password string) (*users.AuthUser, error)
	Register(ctx context.Context, input users.CreateRequest) (*users.AuthUser, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*gateway.AuthSession, error)
	ChangePassword(ctx context.Context, input gateway.ChangePasswordRequest) error
	ConsumeRedirectURL() (string, bool)
}

// Intent names used by the exhaust guard.
const (
	intentLogin          = "login"
	intentRegister       = "register"
	intentLogout         = "logout"
	intentRefresh        = "refreshToken"
	intentChangePassword = "changePassword"
)

// Manager orchestrates auth side effects and folds their outcomes into the
// observable state.
//
// Every intent uses exhaust semantics: a second identical intent issued
// while one is in flight is dropped, not queued. This is what makes a
// double-submitted login form harmless.
type Manager struct {
	session   Session
	notifier  Notifier
	navigator Navigator
	logger    *slog.Logger

	state *observable.Value[State]

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewManager builds the manager with the initial signed-out state.
func NewManager(session Session, notifier Notifier, navigator Navigator, logger *slog.Logger) *Manager {
	return &Manager{
		session:   session,
		notifier:  notifier,
		navigator: navigator,
		logger:    logger,
		state:     observable.New(InitialState()),
		inFlight:  make(map[string]bool),
	}
}

// State exposes the auth state as an observable.
func (manager *Manager) State() *observable.Value[State] {
	return manager.state
}

// dispatch folds an event through the pure reducer.
func (manager *Manager) dispatch(event Event) {
	manager.state.Update(func(current State) State {
		return Reduce(current, event)
	})
}

// begin claims the exhaust guard for an intent. It reports false when the
// same intent is already in flight, in which case the caller drops.
func (manager *Manager) begin(intent string) bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.inFlight[intent] {
		return false
	}
	manager.inFlight[intent] = true
	return true
}

func (manager *Manager) end(intent string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	delete(manager.inFlight, intent)
}

// ── 1. Intents ──

// Login performs the login flow. On success it notifies, replays the stored
// intended URL (at most once) or falls back to the dashboard.
func (manager *Manager) Login(ctx context.Context, email, password string) {
	if !manager.begin(intentLogin) {
		return
	}
	defer manager.end(intentLogin)

	manager.dispatch(Event{Kind: EventLoginRequested})

	user, err := manager.session.Login(ctx, email, password)
	if err != nil {
		message := apperr.Message(err)
		manager.dispatch(Event{Kind: EventLoginFailed, Error: message})
		manager.notifier.Error("Login Failed", message)
		return
	}

	manager.dispatch(Event{Kind: EventLoginSucceeded, User: user})
	manager.notifier.Success("Welcome!", "You have successfully logged in.")

	destination, ok := manager.session.ConsumeRedirectURL()
	if !ok {
		destination = constants.DashboardPath
	}
	manager.navigator.Navigate(destination)
}

// Register enrolls a new account and signs it in.
func (manager *Manager) Register(ctx context.Context, input users.CreateRequest) {
	if !manager.begin(intentRegister) {
		return
	}
	defer manager.end(intentRegister)

	manager.dispatch(Event{Kind: EventRegisterRequested})

	user, err := manager.session.Register(ctx, input)
	if err != nil {
		message := apperr.Message(err)
		manager.dispatch(Event{Kind: EventRegisterFailed, Error: message})
		manager.notifier.Error("Registration Failed", message)
		return
	}

	manager.dispatch(Event{Kind: EventRegisterSucceeded, User: user})
	manager.notifier.Success("Registration Successful!", "Welcome to the platform!")
	manager.navigator.Navigate(constants.DashboardPath)
}

// Logout signs the user out. The session store guarantees local state is
// cleared whatever the gateway does, so the outcome is always success.
func (manager *Manager) Logout(ctx context.Context) {
	if !manager.begin(intentLogout) {
		return
	}
	defer manager.end(intentLogout)

	manager.dispatch(Event{Kind: EventLogoutRequested})

	_ = manager.session.Logout(ctx)

	manager.dispatch(Event{Kind: EventLogoutSucceeded})
	manager.notifier.Info("Logged Out", "You have been successfully logged out.")
	manager.navigator.Navigate(constants.LoginPath)
}

// RefreshToken exchanges the stored refresh token for a fresh session.
func (manager *Manager) RefreshToken(ctx context.Context) {
	if !manager.begin(intentRefresh) {
		return
	}
	defer manager.end(intentRefresh)

	manager.dispatch(Event{Kind: EventRefreshRequested})

	session, err := manager.session.Refresh(ctx)
	if err != nil {
		manager.dispatch(Event{Kind: EventRefreshFailed, Error: apperr.Message(err)})
		return
	}

	user := session.User
	manager.dispatch(Event{Kind: EventRefreshSucceeded, User: &user})
}

// ChangePassword rotates the password without touching the signed-in state.
func (manager *Manager) ChangePassword(ctx context.Context, input gateway.ChangePasswordRequest) {
	if !manager.begin(intentChangePassword) {
		return
	}
	defer manager.end(intentChangePassword)

	manager.dispatch(Event{Kind: EventChangePasswordRequested})

	if err := manager.session.ChangePassword(ctx, input); err != nil {
		message := apperr.Message(err)
		manager.dispatch(Event{Kind: EventChangePasswordFailed, Error: message})
		manager.notifier.Error("Password Change Failed", message)
		return
	}

	manager.dispatch(Event{Kind: EventChangePasswordSucceeded})
	manager.notifier.Success("Password Changed", "Your password has been successfully updated.")
}

// ── 2. Synchronous Updates ──

// UpdateUser folds a modified identity into state without a network call.
func (manager *Manager) UpdateUser(user users.AuthUser) {
	manager.dispatch(Event{Kind: EventUserUpdated, User: &user})
}

// ClearError dismisses the last failure message.
func (manager *Manager) ClearError() {
	manager.dispatch(Event{Kind: EventErrorCleared})
}
