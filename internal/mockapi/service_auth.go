// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/validate"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

// # Session Issuance

// issueSession signs an access token and registers a rotating refresh token
// for the account. Callers must hold the service mutex.
func (service *Service) issueSession(account users.User, lastLogin *time.Time) (*gateway.AuthSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		account.ID,
		account.Email,
		string(account.Role),
		constants.AccessTokenTTLSeconds*time.Second,
	)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign access token: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("generate refresh token: %w", err))
	}
	service.refreshTokens[refreshToken] = account.ID

	return &gateway.AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         authUserOf(account, lastLogin),
		ExpiresIn:    constants.AccessTokenTTLSeconds,
	}, nil
}

// Login verifies the credential pair and opens a new session.
func (service *Service) Login(ctx context.Context, email, password string) (*gateway.AuthSession, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		Required("email", email).
		Email("email", email).
		Required("password", password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	account, found := service.findUserByEmail(email)
	if !found || !account.IsActive || !sec.CheckPasswordHash(password, service.passwords[account.ID]) {
		return nil, apperr.InvalidCredentials()
	}

	lastLogin := service.now()
	return service.issueSession(account, &lastLogin)
}

// Register enrolls a new account and opens its first session.
func (service *Service) Register(ctx context.Context, input users.CreateRequest) (*gateway.AuthSession, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		Required("email", input.Email).
		Email("email", input.Email).
		Required("firstName", input.FirstName).
		Required("lastName", input.LastName).
		MinLen("password", input.Password, 8).
		Required("department", input.Department)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if _, exists := service.findUserByEmail(input.Email); exists {
		return nil, apperr.Conflict("Email is already registered")
	}

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	now := service.now()
	account := users.User{
		ID:         fmt.Sprintf("%d", len(service.users)+1),
		Email:      input.Email,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Role:       role,
		Department: input.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
		IsActive:   true,
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.users = append(service.users, account)
	service.passwords[account.ID] = hash

	return service.issueSession(account, &now)
}

// Logout revokes the refresh token. It never fails: revoking an unknown
// token is a no-op so a half-cleared client can always finish logging out.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	delete(service.refreshTokens, refreshToken)
	return nil
}

// Refresh rotates the token pair. An unknown or revoked refresh token yields
// SESSION_EXPIRED so the client tears its session down.
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*gateway.AuthSession, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	userID, ok := service.refreshTokens[refreshToken]
	if !ok {
		return nil, apperr.SessionExpired()
	}
	delete(service.refreshTokens, refreshToken)

	for _, account := range service.users {
		if account.ID == userID {
			return service.issueSession(account, nil)
		}
	}
	return nil, apperr.SessionExpired()
}

// ChangePassword rotates the signed-in user's password.
func (service *Service) ChangePassword(ctx context.Context, input gateway.ChangePasswordRequest) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.
		Required("currentPassword", input.CurrentPassword).
		MinLen("newPassword", input.NewPassword, 8).
		Match("confirmPassword", input.ConfirmPassword, input.NewPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	account := service.currentUser(ctx)
	if !sec.CheckPasswordHash(input.CurrentPassword, service.passwords[account.ID]) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	service.passwords[account.ID] = hash
	return nil
}

// ForgotPassword starts the recovery flow. The response is identical whether
// or not the address has an account, to avoid leaking membership.
func (service *Service) ForgotPassword(ctx context.Context, email string) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required("email", email).Email("email", email)
	if err := validator.Err(); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	account, found := service.findUserByEmail(email)
	if !found {
		return nil
	}

	token, err := sec.GenerateSecureToken(24)
	if err != nil {
		return apperr.Internal(err)
	}
	service.resetTokens[token] = account.ID

	// There is no mailer here; surface the token in the log so a developer
	// can complete the flow manually.
	service.logger.Info("password reset token issued",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}

// ResetPassword completes recovery with the token from ForgotPassword.
func (service *Service) ResetPassword(ctx context.Context, input gateway.ResetPasswordRequest) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.
		Required("token", input.Token).
		MinLen("newPassword", input.NewPassword, 8).
		Match("confirmPassword", input.ConfirmPassword, input.NewPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	userID, ok := service.resetTokens[input.Token]
	if !ok {
		return apperr.Unauthorized("Invalid or expired reset token")
	}
	delete(service.resetTokens, input.Token)

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	service.passwords[userID] = hash
	return nil
}
