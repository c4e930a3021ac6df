// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/state/auth"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

func signedInState() auth.State {
	return auth.State{
		User:            &users.AuthUser{ID: "1", Email: "admin@company.com"},
		IsAuthenticated: true,
	}
}

/*
TestReduce_Requests verifies the two request families: credential intents
clear a stale error, logout and refresh leave it visible.
*/
func TestReduce_Requests(t *testing.T) {
	tests := []struct {
		name          string
		kind          auth.EventKind
		wantErrorKept bool
	}{
		{"login_clears_error", auth.EventLoginRequested, false},
		{"register_clears_error", auth.EventRegisterRequested, false},
		{"change_password_clears_error", auth.EventChangePasswordRequested, false},
		{"logout_keeps_error", auth.EventLogoutRequested, true},
		{"refresh_keeps_error", auth.EventRefreshRequested, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := auth.State{Error: "stale failure"}

			next := auth.Reduce(state, auth.Event{Kind: tt.kind})

			assert.True(t, next.Loading)
			if tt.wantErrorKept {
				assert.Equal(t, "stale failure", next.Error)
			} else {
				assert.Empty(t, next.Error)
			}
		})
	}
}

/*
TestReduce_SuccessOutcomes verifies login, register and refresh successes
install the identity.
*/
func TestReduce_SuccessOutcomes(t *testing.T) {
	user := &users.AuthUser{ID: "1", Email: "admin@company.com"}

	for _, kind := range []auth.EventKind{
		auth.EventLoginSucceeded,
		auth.EventRegisterSucceeded,
		auth.EventRefreshSucceeded,
	} {
		next := auth.Reduce(auth.State{Loading: true, Error: "old"}, auth.Event{Kind: kind, User: user})

		require.NotNil(t, next.User)
		assert.True(t, next.IsAuthenticated)
		assert.False(t, next.Loading)
		assert.Empty(t, next.Error)
	}
}

/*
TestReduce_FailureOutcomes verifies credential failures sign the state out
while change-password failure keeps the session.
*/
func TestReduce_FailureOutcomes(t *testing.T) {
	for _, kind := range []auth.EventKind{
		auth.EventLoginFailed,
		auth.EventRegisterFailed,
		auth.EventRefreshFailed,
	} {
		next := auth.Reduce(signedInState(), auth.Event{Kind: kind, Error: "Invalid email or password"})

		assert.Nil(t, next.User)
		assert.False(t, next.IsAuthenticated)
		assert.False(t, next.Loading)
		assert.Equal(t, "Invalid email or password", next.Error)
	}

	next := auth.Reduce(signedInState(), auth.Event{Kind: auth.EventChangePasswordFailed, Error: "Current password is incorrect"})
	assert.NotNil(t, next.User)
	assert.True(t, next.IsAuthenticated)
	assert.Equal(t, "Current password is incorrect", next.Error)
}

/*
TestReduce_LogoutAndUpdates verifies logout clears everything and the
synchronous events touch only their field.
*/
func TestReduce_LogoutAndUpdates(t *testing.T) {
	next := auth.Reduce(signedInState(), auth.Event{Kind: auth.EventLogoutSucceeded})
	assert.Nil(t, next.User)
	assert.False(t, next.IsAuthenticated)
	assert.Empty(t, next.Error)

	renamed := &users.AuthUser{ID: "1", FirstName: "Renamed"}
	next = auth.Reduce(signedInState(), auth.Event{Kind: auth.EventUserUpdated, User: renamed})
	assert.Equal(t, "Renamed", next.User.FirstName)
	assert.True(t, next.IsAuthenticated)

	next = auth.Reduce(auth.State{Error: "boom"}, auth.Event{Kind: auth.EventErrorCleared})
	assert.Empty(t, next.Error)

	next = auth.Reduce(auth.State{Loading: true}, auth.Event{Kind: auth.EventChangePasswordSucceeded})
	assert.False(t, next.Loading)
	assert.Empty(t, next.Error)
}
