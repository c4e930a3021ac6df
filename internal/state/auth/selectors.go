// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package auth

import (
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

// Selectors are pure functions over [State]. They exist so view code never
// reaches into the record's fields directly.

// CurrentUser returns the signed-in identity, nil when signed out.
func CurrentUser(state State) *users.AuthUser { return state.User }

// IsAuthenticated reports the projection's authentication flag.
func IsAuthenticated(state State) bool { return state.IsAuthenticated }

// Loading reports whether an auth intent is in flight.
func Loading(state State) bool { return state.Loading }

// Error returns the last failure message, "" when none.
func Error(state State) string { return state.Error }

// Role returns the signed-in user's role, "" when signed out.
func Role(state State) sec.UserRole {
	if state.User == nil {
		return ""
	}
	return state.User.Role
}

// Department returns the signed-in user's department, "" when signed out.
func Department(state State) string {
	if state.User == nil {
		return ""
	}
	return state.User.Department
}

// FullName returns the display name, "" when signed out.
func FullName(state State) string {
	if state.User == nil {
		return ""
	}
	return state.User.FullName()
}

// Initials returns the uppercased initials, "" when signed out.
func Initials(state State) string {
	if state.User == nil {
		return ""
	}
	return state.User.Initials()
}

// IsAdmin reports whether the signed-in user is an administrator.
func IsAdmin(state State) bool {
	return Role(state) == sec.RoleAdmin
}

// IsManager reports manager-or-above: an admin counts as a manager.
func IsManager(state State) bool {
	role := Role(state)
	return role == sec.RoleManager || role == sec.RoleAdmin
}
