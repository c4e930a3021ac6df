// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package auth holds the authentication state pipeline: an immutable state
record, the outcome events that mutate it, a pure reducer folding events
into state, and the process manager that performs the side effects.

The flow mirrors the rest of the client state layer: an intent method on the
[Manager] performs the network call and emits success/failure events; the
reducer is the only place state transitions happen; selectors derive what
the UI renders.
*/
package auth

import "github.com/NguyenDinhVu2003/FileManageSystem/internal/users"

// State is the immutable auth state record.
type State struct {
	User            *users.AuthUser
	IsAuthenticated bool
	Loading         bool

	// Error is the last failure message, "" when none.
	Error string
}

// InitialState is the process-start state: signed out, idle, no error.
func InitialState() State {
	return State{}
}

// EventKind discriminates auth events.
type EventKind int

const (
	EventLoginRequested EventKind = iota
	EventLoginSucceeded
	EventLoginFailed
	EventRegisterRequested
	EventRegisterSucceeded
	EventRegisterFailed
	EventLogoutRequested
	EventLogoutSucceeded
	EventLogoutFailed
	EventRefreshRequested
	EventRefreshSucceeded
	EventRefreshFailed
	EventChangePasswordRequested
	EventChangePasswordSucceeded
	EventChangePasswordFailed
	EventUserUpdated
	EventErrorCleared
)

// Event is one intent or outcome in the auth pipeline. User is set on
// success outcomes and user updates; Error on failure outcomes.
type Event struct {
	Kind  EventKind
	User  *users.AuthUser
	Error string
}

// Reduce folds an event into the state. It is pure: no I/O, no clock, no
// mutation of the input.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventLoginRequested, EventRegisterRequested, EventChangePasswordRequested:
		state.Loading = true
		state.Error = ""

	case EventLogoutRequested, EventRefreshRequested:
		state.Loading = true

	case EventLoginSucceeded, EventRegisterSucceeded, EventRefreshSucceeded:
		state.User = event.User
		state.IsAuthenticated = true
		state.Loading = false
		state.Error = ""

	case EventLoginFailed, EventRegisterFailed, EventRefreshFailed:
		state.User = nil
		state.IsAuthenticated = false
		state.Loading = false
		state.Error = event.Error

	case EventLogoutSucceeded:
		state.User = nil
		state.IsAuthenticated = false
		state.Loading = false
		state.Error = ""

	case EventLogoutFailed, EventChangePasswordFailed:
		state.Loading = false
		state.Error = event.Error

	case EventChangePasswordSucceeded:
		state.Loading = false
		state.Error = ""

	case EventUserUpdated:
		state.User = event.User

	case EventErrorCleared:
		state.Error = ""
	}

	return state
}
