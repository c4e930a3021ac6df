// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines the durable storage layout, auth endpoint paths, default timeouts,
and cross-cutting keys that are shared between different layers of the system.

Categories:

  - Storage Layout: localStorage-equivalent keys for the session record.
  - Session Timing: idle timeout, token lifetime.
  - Routing: entry points used by guards and process managers.
  - Server Timing: timeouts for the mock gateway HTTP server.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "filemanage-client"
	AppVersion = "0.1.0-dev"
)

// # Durable Storage Layout
//
// The session record is deliberately split across four independent keys so a
// cross-context removal of the access token alone is observable as a logout.

const (
	// StorageKeyAccessToken holds the bearer access token.
	StorageKeyAccessToken = "access_token"

	// StorageKeyRefreshToken holds the opaque refresh token.
	StorageKeyRefreshToken = "refresh_token"

	// StorageKeyUserData holds the JSON-encoded authenticated user record.
	StorageKeyUserData = "user_data"

	// StorageKeyExpiresAt holds the access token expiry as an epoch-ms decimal string.
	StorageKeyExpiresAt = "expires_at"

	// StorageKeyRedirectURL holds the one-shot post-login destination.
	StorageKeyRedirectURL = "redirectUrl"
)

// # Session Timing

const (
	// SessionIdleTimeout is how long a session survives without user activity.
	SessionIdleTimeout = 30 * time.Minute

	// AccessTokenTTLSeconds is the expiresIn the mock gateway issues.
	AccessTokenTTLSeconds = 3600
)

// # Routing Entry Points

const (
	// LoginPath is where logged-out users land (hard redirect on session clear).
	LoginPath = "/auth/login"

	// DashboardPath is the default post-login destination.
	DashboardPath = "/dashboard"
)

// # Gateway Endpoints

const (
	AuthPath      = "/auth"
	DocumentsPath = "/documents"
	TagsPath      = "/tags"
	AIPath        = "/ai"
	UploadPath    = "/upload"
)

// # Notifications

const (
	// NotificationDefaultDuration is the auto-dismiss delay for non-error notices.
	NotificationDefaultDuration = 5 * time.Second
)

// # Derived View Limits

const (
	// RankedDocumentsLimit caps top-rated and most-viewed rankings.
	RankedDocumentsLimit = 10
)

// # Server Timing (mock gateway)

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting (mock gateway)

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// LoginRateLimitRPS throttles credential-guessing on the login endpoint.
	LoginRateLimitRPS = 1.0

	// LoginRateLimitBurst allows a small burst of login attempts per IP.
	LoginRateLimitBurst = 5

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs the mock gateway signs.
	AuthIssuer = "filemanage.local"

	// HeaderXRequestID is the correlation header echoed by the mock gateway.
	HeaderXRequestID = "X-Request-ID"

	// HeaderOrigin is inspected by the CORS middleware.
	HeaderOrigin = "Origin"
)
