// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package guard implements route activation checks for the client shell.

Three guards cover the routing policy:

  - [Auth] protects signed-in areas. A signed-out visit records the
    intended URL and redirects to login, so a later successful login can
    resume where the visitor was headed.
  - [NoAuth] keeps signed-in users out of the auth pages.
  - [Role] restricts routes to specific roles on top of [Auth].

Guards only read session state; they never trigger network calls.
*/
package guard

import (
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

// deniedPath is where a role check failure lands, carrying an error marker
// the dashboard surfaces.
const deniedPath = constants.DashboardPath + "?error=insufficient-permissions"

// Session is the slice of the session store guards consult.
type Session interface {
	IsAuthenticated() bool
	CurrentUser() *users.AuthUser
	SetRedirectURL(path string)
}

// Navigator performs the redirect when a guard denies activation.
type Navigator interface {
	Navigate(path string)
}

// Auth denies signed-out visitors and remembers where they were headed.
type Auth struct {
	session   Session
	navigator Navigator
}

// NewAuth builds the signed-in-only guard.
func NewAuth(session Session, navigator Navigator) *Auth {
	return &Auth{session: session, navigator: navigator}
}

// CanActivate reports whether the route at targetURL may activate. On
// denial it stores targetURL as the post-login destination and redirects
// to the login page.
func (guard *Auth) CanActivate(targetURL string) bool {
	if guard.session.IsAuthenticated() {
		return true
	}

	guard.session.SetRedirectURL(targetURL)
	guard.navigator.Navigate(constants.LoginPath)
	return false
}

// NoAuth denies signed-in visitors, bouncing them to the dashboard. It
// keeps the login and registration pages out of reach once signed in.
type NoAuth struct {
	session   Session
	navigator Navigator
}

// NewNoAuth builds the signed-out-only guard.
func NewNoAuth(session Session, navigator Navigator) *NoAuth {
	return &NoAuth{session: session, navigator: navigator}
}

// CanActivate reports whether an auth page may activate.
func (guard *NoAuth) CanActivate() bool {
	if !guard.session.IsAuthenticated() {
		return true
	}

	guard.navigator.Navigate(constants.DashboardPath)
	return false
}

// Role restricts a route to the given roles.
type Role struct {
	session   Session
	navigator Navigator
}

// NewRole builds the role guard.
func NewRole(session Session, navigator Navigator) *Role {
	return &Role{session: session, navigator: navigator}
}

// CanActivate reports whether the current user holds one of the required
// roles. With no required roles the route is open. A signed-out visitor is
// sent to login; a signed-in visitor lacking the role is sent to the
// dashboard with a permission error marker.
func (guard *Role) CanActivate(required ...sec.UserRole) bool {
	if len(required) == 0 {
		return true
	}

	user := guard.session.CurrentUser()
	if user == nil {
		guard.navigator.Navigate(constants.LoginPath)
		return false
	}

	for _, role := range required {
		if user.Role == role {
			return true
		}
	}

	guard.navigator.Navigate(deniedPath)
	return false
}
