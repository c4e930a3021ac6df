// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package transport decorates an [http.RoundTripper] with bearer-token
handling: it attaches the current access token to outgoing requests and
transparently survives token expiry.

# 401 Coordination

When a response comes back 401, the decorator refreshes the session and
retries the original request once with the new token. The refresh is
single-flight: however many requests observe 401 concurrently, exactly one
refresh call reaches the gateway and every waiter retries with its result.
A failed refresh propagates the original 401 and forces logout.

Auth endpoints (login, register, refresh, password flows) are never
decorated, which prevents recursive refresh loops.
*/
package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
)

// refreshKey is the singleflight key: one logical refresh per client.
const refreshKey = "refresh"

// SessionTokens is the slice of the session store the transport needs.
type SessionTokens interface {
	AccessToken() string
	Refresh(ctx context.Context) (*gateway.AuthSession, error)
	Logout(ctx context.Context) error
}

// authExemptSuffixes lists endpoint paths that must never carry a bearer
// token and never trigger a refresh.
var authExemptSuffixes = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh",
	"/auth/forgot-password",
	"/auth/reset-password",
}

// isAuthExempt reports whether the request targets a credential-exchange
// endpoint.
func isAuthExempt(request *http.Request) bool {
	path := request.URL.Path
	for _, suffix := range authExemptSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// AuthTransport is the bearer-token [http.RoundTripper] decorator.
type AuthTransport struct {
	base    http.RoundTripper
	session SessionTokens
	logger  *slog.Logger

	refreshGroup singleflight.Group
}

// New wraps base with bearer handling. A nil base uses
// [http.DefaultTransport].
func New(base http.RoundTripper, session SessionTokens, logger *slog.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{
		base:    base,
		session: session,
		logger:  logger,
	}
}

// RoundTrip implements [http.RoundTripper].
func (transport *AuthTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	if isAuthExempt(request) {
		return transport.base.RoundTrip(request)
	}

	token := transport.session.AccessToken()
	response, err := transport.base.RoundTrip(withBearer(request, token))
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusUnauthorized {
		return response, nil
	}

	newToken, refreshErr := transport.sharedRefresh(request.Context())
	if refreshErr != nil {
		// The original 401 is the caller's error; the refresh failure has
		// already torn the session down.
		return response, nil
	}

	retry := withBearer(request, newToken)
	if request.Body != nil {
		if request.GetBody == nil {
			// The body was consumed and cannot be replayed.
			return response, nil
		}
		body, bodyErr := request.GetBody()
		if bodyErr != nil {
			return response, nil
		}
		retry.Body = body
	}

	// Retry exactly once with the refreshed token.
	response.Body.Close()
	return transport.base.RoundTrip(retry)
}

// sharedRefresh funnels concurrent 401s into one refresh call. Every caller
// observing the window shares the resulting token or failure.
func (transport *AuthTransport) sharedRefresh(ctx context.Context) (string, error) {
	result, err, _ := transport.refreshGroup.Do(refreshKey, func() (interface{}, error) {
		session, refreshErr := transport.session.Refresh(ctx)
		if refreshErr != nil {
			transport.logger.Warn("token refresh failed, forcing logout",
				slog.Any("error", refreshErr),
			)
			logoutCtx := context.WithoutCancel(ctx)
			_ = transport.session.Logout(logoutCtx)
			return nil, refreshErr
		}
		return session.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// withBearer returns a shallow clone carrying the Authorization header. An
// empty token leaves the request untouched.
func withBearer(request *http.Request, token string) *http.Request {
	if token == "" {
		return request
	}

	cloned := request.Clone(request.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return cloned
}
