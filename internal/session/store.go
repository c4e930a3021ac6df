// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package session owns the client's authentication lifecycle: who is signed
in, the persisted token pair, the idle-logout countdown, and the
cross-context logout signal.

# Session Record

The record is persisted under four independent storage keys: access_token,
refresh_token, user_data (JSON), and expires_at (epoch-milliseconds string).
A non-expired access token means authenticated; absence or expiry means not.

# Lifecycle

The record is created by a successful login, register, or refresh, replaced
in place by refresh, and destroyed by logout, refresh failure, or another
context removing the access token. Destruction always hard-redirects to the
login entry point so no in-memory state survives into the next session.

Consumers observe the store through [Store.User] and [Store.Authenticated];
the HTTP transport and route guards read it synchronously.

The store also runs without durable storage (the server-side rendering
case): every read then degrades to "not authenticated" without failing.
*/
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/observable"
)

// Redirector performs the hard navigation that follows session destruction.
// A full redirect (not a client-side route change) guarantees the next
// session starts from a clean slate. A nil Redirector skips the step.
type Redirector interface {
	HardRedirect(path string)
}

// Store is the single source of truth for the signed-in identity.
//
// Construct exactly one per application run with [NewStore] and Close it on
// shutdown.
type Store struct {
	storage    Storage
	gateway    gateway.Gateway
	redirector Redirector
	logger     *slog.Logger

	idleTimeout time.Duration
	now         func() time.Time

	user          *observable.Value[*users.AuthUser]
	authenticated *observable.Value[bool]

	mu        sync.Mutex
	idleTimer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// Option customises a [Store].
type Option func(*Store)

// WithIdleTimeout overrides the idle-logout countdown. Zero disables it.
func WithIdleTimeout(d time.Duration) Option {
	return func(store *Store) { store.idleTimeout = d }
}

// WithClock replaces the wall clock, letting tests pin expiry arithmetic.
func WithClock(now func() time.Time) Option {
	return func(store *Store) { store.now = now }
}

// NewStore builds the session store, seeds its observables from whatever
// survives in storage, and begins watching for cross-context changes.
func NewStore(storage Storage, gw gateway.Gateway, redirector Redirector, logger *slog.Logger, opts ...Option) *Store {
	store := &Store{
		storage:     storage,
		gateway:     gw,
		redirector:  redirector,
		logger:      logger,
		idleTimeout: constants.SessionIdleTimeout,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(store)
	}

	store.user = observable.New(store.CurrentUser())
	store.authenticated = observable.New(store.hasValidToken())

	if store.hasValidToken() {
		store.startIdleTimer()
	}
	if storage != nil {
		go store.watchExternalChanges()
	}
	return store
}

// Close tears down the cross-context watcher and the idle timer.
func (store *Store) Close() {
	store.closeOnce.Do(func() { close(store.done) })
	store.stopIdleTimer()
}

// User exposes the signed-in identity as an observable.
func (store *Store) User() *observable.Value[*users.AuthUser] {
	return store.user
}

// Authenticated exposes the authentication flag as an observable.
func (store *Store) Authenticated() *observable.Value[bool] {
	return store.authenticated
}

// ── 1. Auth Operations ──

// Login exchanges credentials for a session and persists it.
func (store *Store) Login(ctx context.Context, email, password string) (*users.AuthUser, error) {
	session, err := store.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	store.setSession(session)
	return &session.User, nil
}

// Register enrolls a new account and opens its first session.
func (store *Store) Register(ctx context.Context, input users.CreateRequest) (*users.AuthUser, error) {
	session, err := store.gateway.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	store.setSession(session)
	return &session.User, nil
}

// Logout destroys the session. The server notification is best effort: a
// failing gateway never blocks local logout.
func (store *Store) Logout(ctx context.Context) error {
	refreshToken := store.RefreshTokenValue()
	if store.gateway != nil {
		if err := store.gateway.Logout(ctx, refreshToken); err != nil {
			store.logger.Warn("logout notification failed, clearing session anyway",
				slog.Any("error", err),
			)
		}
	}

	store.clearSession()
	return nil
}

// Refresh exchanges the stored refresh token for a fresh session.
//
// A missing token or a rejected exchange destroys the session before the
// error propagates, so callers never retry against dead credentials.
func (store *Store) Refresh(ctx context.Context) (*gateway.AuthSession, error) {
	refreshToken := store.RefreshTokenValue()
	if refreshToken == "" {
		store.clearSession()
		return nil, apperr.NoRefreshToken()
	}

	session, err := store.gateway.Refresh(ctx, refreshToken)
	if err != nil {
		store.clearSession()
		return nil, err
	}

	store.setSession(session)
	return session, nil
}

// ChangePassword rotates the password of the signed-in user.
func (store *Store) ChangePassword(ctx context.Context, input gateway.ChangePasswordRequest) error {
	return store.gateway.ChangePassword(ctx, input)
}

// ForgotPassword starts the password-recovery flow.
func (store *Store) ForgotPassword(ctx context.Context, email string) error {
	return store.gateway.ForgotPassword(ctx, email)
}

// ResetPassword completes password recovery.
func (store *Store) ResetPassword(ctx context.Context, input gateway.ResetPasswordRequest) error {
	return store.gateway.ResetPassword(ctx, input)
}

// ── 2. Synchronous Reads ──

// IsAuthenticated reports whether a non-expired access token is stored.
func (store *Store) IsAuthenticated() bool {
	return store.hasValidToken()
}

// AccessToken returns the stored access token, or "" when absent.
func (store *Store) AccessToken() string {
	if store.storage == nil {
		return ""
	}
	token, _ := store.storage.Get(constants.StorageKeyAccessToken)
	return token
}

// RefreshTokenValue returns the stored refresh token, or "" when absent.
func (store *Store) RefreshTokenValue() string {
	if store.storage == nil {
		return ""
	}
	token, _ := store.storage.Get(constants.StorageKeyRefreshToken)
	return token
}

// CurrentUser returns the persisted identity. Corrupt JSON reads as absent.
func (store *Store) CurrentUser() *users.AuthUser {
	if store.storage == nil {
		return nil
	}

	raw, ok := store.storage.Get(constants.StorageKeyUserData)
	if !ok {
		return nil
	}

	var user users.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// UpdateCurrentUser persists a modified identity and republishes it.
func (store *Store) UpdateCurrentUser(user users.AuthUser) {
	if store.storage != nil {
		if data, err := json.Marshal(user); err == nil {
			store.storage.Set(constants.StorageKeyUserData, string(data))
		}
	}
	store.user.Set(&user)
}

func (store *Store) hasValidToken() bool {
	if store.storage == nil {
		return false
	}

	token, ok := store.storage.Get(constants.StorageKeyAccessToken)
	if !ok || token == "" {
		return false
	}
	rawExpiry, ok := store.storage.Get(constants.StorageKeyExpiresAt)
	if !ok {
		return false
	}

	expiresAt, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return false
	}
	return store.now().UnixMilli() < expiresAt
}

// ── 3. Redirect URL ──

// SetRedirectURL records the destination a guard intercepted, to be replayed
// once after the next successful login.
func (store *Store) SetRedirectURL(path string) {
	if store.storage != nil {
		store.storage.Set(constants.StorageKeyRedirectURL, path)
	}
}

// ConsumeRedirectURL returns the stored post-login destination and removes
// it, so it is used at most once.
func (store *Store) ConsumeRedirectURL() (string, bool) {
	if store.storage == nil {
		return "", false
	}

	path, ok := store.storage.Get(constants.StorageKeyRedirectURL)
	if !ok || path == "" {
		return "", false
	}
	store.storage.Remove(constants.StorageKeyRedirectURL)
	return path, true
}

// ── 4. Idle Timer ──

// Activity resets the idle-logout countdown. Call it for every user-activity
// signal (pointer, key, scroll, touch). Signals while signed out are ignored.
func (store *Store) Activity() {
	if store.hasValidToken() {
		store.startIdleTimer()
	}
}

func (store *Store) startIdleTimer() {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.idleTimer != nil {
		store.idleTimer.Stop()
	}
	if store.idleTimeout <= 0 {
		return
	}
	store.idleTimer = time.AfterFunc(store.idleTimeout, store.idleLogout)
}

func (store *Store) stopIdleTimer() {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.idleTimer != nil {
		store.idleTimer.Stop()
		store.idleTimer = nil
	}
}

func (store *Store) idleLogout() {
	store.logger.Info("idle timeout reached, logging out")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = store.Logout(ctx)
}

// ── 5. Session Record ──

// setSession persists the record and publishes the new identity. The expiry
// is now + expiresIn seconds, stored as epoch milliseconds.
func (store *Store) setSession(session *gateway.AuthSession) {
	expiresAt := store.now().UnixMilli() + session.ExpiresIn*1000

	if store.storage != nil {
		store.storage.Set(constants.StorageKeyAccessToken, session.AccessToken)
		store.storage.Set(constants.StorageKeyRefreshToken, session.RefreshToken)
		if data, err := json.Marshal(session.User); err == nil {
			store.storage.Set(constants.StorageKeyUserData, string(data))
		}
		store.storage.Set(constants.StorageKeyExpiresAt, strconv.FormatInt(expiresAt, 10))
	}

	user := session.User
	store.user.Set(&user)
	store.authenticated.Set(true)
	store.startIdleTimer()
}

// clearSession destroys the record, publishes signed-out state, and forces
// the hard redirect to the login entry point.
func (store *Store) clearSession() {
	if store.storage != nil {
		store.storage.Remove(constants.StorageKeyAccessToken)
		store.storage.Remove(constants.StorageKeyRefreshToken)
		store.storage.Remove(constants.StorageKeyUserData)
		store.storage.Remove(constants.StorageKeyExpiresAt)
	}

	store.user.Set(nil)
	store.authenticated.Set(false)
	store.stopIdleTimer()

	if store.redirector != nil {
		store.redirector.HardRedirect(constants.LoginPath)
	}
}

// ── 6. Cross-Context Watch ──

// watchExternalChanges reacts to storage changes made by other contexts.
// Removal of the access token elsewhere signs this context out locally,
// with no network call.
func (store *Store) watchExternalChanges() {
	for {
		select {
		case <-store.done:
			return
		case change, ok := <-store.storage.Watch():
			if !ok {
				return
			}
			if change.Key == constants.StorageKeyAccessToken && change.NewValue == nil {
				store.logger.Info("access token removed by another context, clearing session")
				store.clearSession()
			}
		}
	}
}
