// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package mockapi implements an in-memory backend for the knowledge platform.

It is a full [gateway.Gateway] implementation seeded with fixture accounts,
documents, and tags, so the client state layer runs end-to-end without a real
backend. The same service is also exposed over HTTP through [Handler], which
lets integration tests exercise the bearer-token transport against real 401s.

Architecture:

  - Service: Fixture store plus business rules (filtering, rating, comments).
  - Tokens: Real HS256 JWTs for access, opaque rotating refresh tokens.
  - Handler: chi routes mirroring the production API surface.

All mutating state lives behind one mutex; the service is safe for concurrent
use, which the exhaust and switch-latest tests depend on.
*/
package mockapi

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/ctxutil"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

// Service is the in-memory backend. It implements [gateway.Gateway].
type Service struct {
	mu            sync.Mutex
	users         []users.User
	passwords     map[string]string // user ID -> bcrypt hash
	documents     []document.Document
	comments      map[string][]document.Comment // document ID -> thread
	tags          []tag.Tag
	refreshTokens map[string]string // refresh token -> user ID
	resetTokens   map[string]string // reset token -> user ID
	files         map[string]document.UploadResult

	tokens  *sec.TokenService
	logger  *slog.Logger
	latency time.Duration
	now     func() time.Time
}

var _ gateway.Gateway = (*Service)(nil)

// Option customises a [Service].
type Option func(*Service)

// WithLatency makes every operation pause for d before responding, roughly
// simulating network conditions. Zero disables the pause (the test default).
func WithLatency(d time.Duration) Option {
	return func(service *Service) { service.latency = d }
}

// WithClock replaces the wall clock, letting tests pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService builds a Service seeded with the fixture data set.
func NewService(tokens *sec.TokenService, logger *slog.Logger, opts ...Option) *Service {
	accounts, passwords := seedUsers()

	service := &Service{
		users:         accounts,
		passwords:     passwords,
		documents:     seedDocuments(),
		comments:      make(map[string][]document.Comment),
		tags:          seedTags(),
		refreshTokens: make(map[string]string),
		resetTokens:   make(map[string]string),
		files:         make(map[string]document.UploadResult),
		tokens:        tokens,
		logger:        logger,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// simulate applies the configured latency while honouring cancellation.
func (service *Service) simulate(ctx context.Context) error {
	if service.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(service.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// currentUser resolves the acting account from the request context.
//
// Over HTTP the Authenticate middleware provides the claims. In-process
// callers without claims fall back to the first fixture account, mirroring
// how the seeded data attributes authorship.
func (service *Service) currentUser(ctx context.Context) users.User {
	if claims := ctxutil.GetAuthUser(ctx); claims != nil {
		for _, account := range service.users {
			if account.ID == claims.UserID {
				return account
			}
		}
	}
	return service.users[0]
}

func (service *Service) findUserByEmail(email string) (users.User, bool) {
	for _, account := range service.users {
		if account.Email == email {
			return account, true
		}
	}
	return users.User{}, false
}

func authUserOf(account users.User, lastLogin *time.Time) users.AuthUser {
	return users.AuthUser{
		ID:         account.ID,
		Email:      account.Email,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		Role:       account.Role,
		Department: account.Department,
		Avatar:     account.Avatar,
		CreatedAt:  &account.CreatedAt,
		LastLogin:  lastLogin,
	}
}

func authorRefOf(account users.User) document.AuthorRef {
	return document.AuthorRef{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Avatar:    account.Avatar,
	}
}
