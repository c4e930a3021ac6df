// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/session"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

// fakeGateway overrides only the auth slice; everything else panics through
// the embedded nil interface if touched.
type fakeGateway struct {
	gateway.Gateway

	mu           sync.Mutex
	logoutCalls  int
	logoutErr    error
	refreshErr   error
	refreshToken string
}

func sessionFor(email string) *gateway.AuthSession {
	return &gateway.AuthSession{
		AccessToken:  "access-token-1",
		RefreshToken: "refresh-token-1",
		ExpiresIn:    3600,
		User: users.AuthUser{
			ID:        "1",
			Email:     email,
			FirstName: "Admin",
			LastName:  "User",
		},
	}
}

func (g *fakeGateway) Login(ctx context.Context, email, password string) (*gateway.AuthSession, error) {
	return sessionFor(email), nil
}

func (g *fakeGateway) Register(ctx context.Context, input users.CreateRequest) (*gateway.AuthSession, error) {
	return sessionFor(input.Email), nil
}

func (g *fakeGateway) Logout(ctx context.Context, refreshToken string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logoutCalls++
	return g.logoutErr
}

func (g *fakeGateway) Refresh(ctx context.Context, refreshToken string) (*gateway.AuthSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refreshToken = refreshToken
	if g.refreshErr != nil {
		return nil, g.refreshErr
	}
	fresh := sessionFor("admin@company.com")
	fresh.AccessToken = "access-token-2"
	fresh.RefreshToken = "refresh-token-2"
	return fresh, nil
}

type fakeRedirector struct {
	mu    sync.Mutex
	paths []string
}

func (r *fakeRedirector) HardRedirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *fakeRedirector) redirects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestStore_LoginPersistsSession verifies that login writes all four storage
keys with the expected expiry arithmetic and publishes the new identity.
*/
func TestStore_LoginPersistsSession(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, &fakeGateway{}, nil, testLogger(),
		session.WithClock(func() time.Time { return fixed }),
	)
	defer store.Close()

	user, err := store.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "admin@company.com", user.Email)

	token, ok := storage.Get(constants.StorageKeyAccessToken)
	require.True(t, ok)
	assert.Equal(t, "access-token-1", token)

	refresh, _ := storage.Get(constants.StorageKeyRefreshToken)
	assert.Equal(t, "refresh-token-1", refresh)

	rawExpiry, ok := storage.Get(constants.StorageKeyExpiresAt)
	require.True(t, ok)
	wantExpiry := fixed.UnixMilli() + 3600*1000
	assert.Equal(t, strconv.FormatInt(wantExpiry, 10), rawExpiry)

	_, ok = storage.Get(constants.StorageKeyUserData)
	assert.True(t, ok)

	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.Authenticated().Get())
	require.NotNil(t, store.User().Get())
	assert.Equal(t, "admin@company.com", store.User().Get().Email)
}

/*
TestStore_ExpiredTokenReadsSignedOut verifies that an expired expiry stamp
means not authenticated even though a token is present.
*/
func TestStore_ExpiredTokenReadsSignedOut(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}

	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, &fakeGateway{}, nil, testLogger(),
		session.WithClock(now),
		session.WithIdleTimeout(0),
	)
	defer store.Close()

	_, err := store.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)
	assert.True(t, store.IsAuthenticated())

	mu.Lock()
	clock = clock.Add(2 * time.Hour)
	mu.Unlock()

	assert.False(t, store.IsAuthenticated())
}

/*
TestStore_LogoutClearsEverything verifies logout removes the whole record
and hard-redirects to login, even when the gateway call fails.
*/
func TestStore_LogoutClearsEverything(t *testing.T) {
	gw := &fakeGateway{logoutErr: errors.New("gateway unreachable")}
	redirector := &fakeRedirector{}
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, gw, redirector, testLogger())
	defer store.Close()

	_, err := store.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)

	require.NoError(t, store.Logout(context.Background()))

	for _, key := range []string{
		constants.StorageKeyAccessToken,
		constants.StorageKeyRefreshToken,
		constants.StorageKeyUserData,
		constants.StorageKeyExpiresAt,
	} {
		_, ok := storage.Get(key)
		assert.False(t, ok, key)
	}
	assert.False(t, store.Authenticated().Get())
	assert.Nil(t, store.User().Get())
	assert.Equal(t, []string{constants.LoginPath}, redirector.redirects())
}

/*
TestStore_RefreshWithoutToken verifies that a refresh attempt with no
stored token fails fast and destroys whatever partial record exists.
*/
func TestStore_RefreshWithoutToken(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), &fakeGateway{}, nil, testLogger())
	defer store.Close()

	_, err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoRefreshToken))
}

/*
TestStore_RefreshRotatesTokens verifies the happy path swaps in the new
token pair, and the failure path signs out before propagating.
*/
func TestStore_RefreshRotatesTokens(t *testing.T) {
	gw := &fakeGateway{}
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, gw, nil, testLogger())
	defer store.Close()

	_, err := store.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)

	fresh, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-token-2", fresh.AccessToken)
	assert.Equal(t, "refresh-token-1", gw.refreshToken)
	assert.Equal(t, "access-token-2", store.AccessToken())

	gw.refreshErr = apperr.SessionExpired()
	_, err = store.Refresh(context.Background())
	require.Error(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.AccessToken())
}

/*
TestStore_CrossContextLogout verifies the storage-event path: removing the
access token in one context signs out the other without a network call.
*/
func TestStore_CrossContextLogout(t *testing.T) {
	broadcaster := session.NewBroadcaster()
	first := broadcaster.Context()
	second := broadcaster.Context()

	gw := &fakeGateway{}
	redirector := &fakeRedirector{}
	store := session.NewStore(first, gw, redirector, testLogger())
	defer store.Close()

	_, err := store.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)

	// The other tab logs out.
	second.Remove(constants.StorageKeyAccessToken)

	assert.Eventually(t, func() bool {
		return !store.Authenticated().Get()
	}, time.Second, 5*time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Zero(t, gw.logoutCalls)
}

/*
TestStore_CorruptUserData verifies that unreadable persisted identity
degrades to signed-out reads instead of failing.
*/
func TestStore_CorruptUserData(t *testing.T) {
	storage := session.NewMemoryStorage()
	storage.Set(constants.StorageKeyUserData, "{not json")

	store := session.NewStore(storage, &fakeGateway{}, nil, testLogger())
	defer store.Close()

	assert.Nil(t, store.CurrentUser())
	assert.Nil(t, store.User().Get())
}

/*
TestStore_RedirectURLIsOneShot verifies the stored intended URL is consumed
exactly once.
*/
func TestStore_RedirectURLIsOneShot(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), &fakeGateway{}, nil, testLogger())
	defer store.Close()

	_, ok := store.ConsumeRedirectURL()
	assert.False(t, ok)

	store.SetRedirectURL("/documents/doc-1")

	path, ok := store.ConsumeRedirectURL()
	require.True(t, ok)
	assert.Equal(t, "/documents/doc-1", path)

	_, ok = store.ConsumeRedirectURL()
	assert.False(t, ok)
}

/*
TestStore_IdleTimeoutLogsOut verifies the idle countdown forces a logout
when no activity arrives.
*/
func TestStore_IdleTimeoutLogsOut(t *testing.T) {
	gw := &fakeGateway{}
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, gw, nil, testLogger(),
		session.WithIdleTimeout(20*time.Millisecond),
	)
	defer store.Close()

	_, err := store.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return !store.IsAuthenticated()
	}, time.Second, 5*time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 1, gw.logoutCalls)
}

/*
TestStore_SeedsFromStorage verifies a new store picks up a surviving
session record.
*/
func TestStore_SeedsFromStorage(t *testing.T) {
	storage := session.NewMemoryStorage()

	first := session.NewStore(storage, &fakeGateway{}, nil, testLogger())
	_, err := first.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)
	first.Close()

	second := session.NewStore(storage, &fakeGateway{}, nil, testLogger())
	defer second.Close()

	assert.True(t, second.IsAuthenticated())
	require.NotNil(t, second.User().Get())
	assert.Equal(t, "admin@company.com", second.User().Get().Email)
}
