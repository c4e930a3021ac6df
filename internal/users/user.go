// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package users defines the identity entities of the knowledge platform.

It models registered members, their profile extensions, and the compact
authenticated-user projection persisted in the session record.
*/
package users

import (
	"strings"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
)

// User is a registered member of the platform.
type User struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Avatar     *string      `json:"avatar,omitempty"`
	Role       sec.UserRole `json:"role"`
	Department string       `json:"department"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	IsActive   bool         `json:"isActive"`
}

// AuthUser is the compact identity stored alongside the session tokens.
// It is what the client keeps under the "user_data" storage key.
type AuthUser struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Role       sec.UserRole `json:"role"`
	Department string       `json:"department"`
	Avatar     *string      `json:"avatar,omitempty"`
	CreatedAt  *time.Time   `json:"createdAt,omitempty"`
	LastLogin  *time.Time   `json:"lastLogin,omitempty"`
}

// FullName joins the first and last name with a single space.
func (u AuthUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the uppercased first letters of the first and last name.
func (u AuthUser) Initials() string {
	var b strings.Builder
	if u.FirstName != "" {
		b.WriteString(strings.ToUpper(u.FirstName[:1]))
	}
	if u.LastName != "" {
		b.WriteString(strings.ToUpper(u.LastName[:1]))
	}
	return b.String()
}

// CreateRequest registers a new member account.
type CreateRequest struct {
	Email      string       `json:"email"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Password   string       `json:"password"`
	Department string       `json:"department"`
	Role       sec.UserRole `json:"role,omitempty"`
}
