// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/api"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway/httpapi"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/mockapi"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/config"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/transport"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) AccessToken() string { return s.token }

func (s *staticTokens) Refresh(ctx context.Context) (*gateway.AuthSession, error) {
	return nil, apperr.SessionExpired()
}

func (s *staticTokens) Logout(ctx context.Context) error { return nil }

func documentFilters() document.SearchFilters { return document.SearchFilters{} }

func documentPage() pagination.Request { return pagination.Request{Page: 1, Limit: 10} }

// newTestServer stands up the full server stack behind httptest and returns
// an HTTP gateway client bound to it.
func newTestServer(t *testing.T, tokens transport.SessionTokens) *httpapi.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenService := sec.NewTokenService("integration-test-secret", constants.AuthIssuer)

	cfg := &config.ServerConfig{ServerPort: "0", SessionSecret: "integration-test-secret"}
	service := mockapi.NewService(tokenService, logger)
	handler := mockapi.NewHandler(context.Background(), service)
	server := api.NewServer(context.Background(), cfg, logger, tokenService, handler)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	var roundTripper http.RoundTripper
	if tokens != nil {
		roundTripper = transport.New(nil, tokens, logger)
	}
	return httpapi.NewClient(ts.URL+"/api", roundTripper, 5*time.Second, logger)
}

/*
TestServer_HealthEndpoints verifies the unauthenticated probes answer
outside the /api subtree.
*/
func TestServer_HealthEndpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenService := sec.NewTokenService("integration-test-secret", constants.AuthIssuer)
	cfg := &config.ServerConfig{ServerPort: "0", SessionSecret: "integration-test-secret"}
	service := mockapi.NewService(tokenService, logger)
	server := api.NewServer(context.Background(), cfg, logger, tokenService,
		mockapi.NewHandler(context.Background(), service))

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	for _, path := range []string{"/health", "/ready"} {
		response, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		response.Body.Close()
		assert.Equal(t, http.StatusOK, response.StatusCode, path)
	}
}

/*
TestServer_LoginThenListDocuments drives the full middleware chain: login
issues a token the document routes then accept.
*/
func TestServer_LoginThenListDocuments(t *testing.T) {
	anonymous := newTestServer(t, nil)

	session, err := anonymous.Login(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)

	authed := newTestServer(t, &staticTokens{token: session.AccessToken})

	// Token was signed with the same secret, so the second server trusts it.
	result, err := authed.GetDocuments(context.Background(),
		documentFilters(), documentPage())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Documents)
}

/*
TestServer_DocumentsRequireAuth verifies protected routes reject requests
without a bearer token.
*/
func TestServer_DocumentsRequireAuth(t *testing.T) {
	client := newTestServer(t, nil)

	_, err := client.GetDocuments(context.Background(), documentFilters(), documentPage())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}

/*
TestServer_RejectsForgedToken verifies a token signed with another secret
is refused.
*/
func TestServer_RejectsForgedToken(t *testing.T) {
	forger := sec.NewTokenService("other-secret", constants.AuthIssuer)
	forged, err := forger.GenerateAccessToken("1", "admin@company.com", string(sec.RoleAdmin), time.Hour)
	require.NoError(t, err)

	client := newTestServer(t, &staticTokens{token: forged})

	_, err = client.GetDocuments(context.Background(), documentFilters(), documentPage())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}
