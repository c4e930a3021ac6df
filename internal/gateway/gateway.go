// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package gateway defines the contract between the client state layer and the
knowledge API backend.

It has three parts:

  - The [Gateway] interface: every operation the client can perform, from
    credential exchange to document mutation to AI assistance.
  - The response [Envelope]: the uniform JSON wrapper every backend reply
    uses, with a generic [Decode] helper for unwrapping payloads.
  - The auth wire types ([AuthSession] and the password-flow requests).

Two implementations exist: the in-process mock service (internal/mockapi) and
the HTTP client (internal/gateway/httpapi). The composition root selects one
at start-up; everything above this interface is implementation-agnostic.
*/
package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

// # Auth Wire Types

// AuthSession is the credential bundle returned by login, register, and
// refresh. ExpiresIn is the access-token lifetime in seconds.
type AuthSession struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         users.AuthUser `json:"user"`
	ExpiresIn    int64          `json:"expiresIn"`
}

// ExpiresAt converts the relative lifetime into an absolute deadline
// measured from now.
func (s *AuthSession) ExpiresAt(now time.Time) time.Time {
	return now.Add(time.Duration(s.ExpiresIn) * time.Second)
}

// LoginRequest carries the credential pair for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a fresh session.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest rotates the password of the signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgotPasswordRequest starts the password-recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes password recovery with an emailed token.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// # Gateway Interface

// Gateway is the full backend surface consumed by the client state layer.
//
// All methods honour context cancellation; a cancelled load must return
// ctx.Err() promptly so switch-latest supersession works.
type Gateway interface {
	// # Auth
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	Register(ctx context.Context, input users.CreateRequest) (*AuthSession, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*AuthSession, error)
	ChangePassword(ctx context.Context, input ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordRequest) error

	// # Documents
	GetDocuments(ctx context.Context, filters document.SearchFilters, page pagination.Request) (*document.SearchResult, error)
	GetDocument(ctx context.Context, id string) (*document.Document, error)
	CreateDocument(ctx context.Context, input document.CreateRequest) (*document.Document, error)
	UpdateDocument(ctx context.Context, id string, input document.UpdateRequest) (*document.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	RateDocument(ctx context.Context, input document.RateRequest) (*document.Document, error)
	GetComments(ctx context.Context, documentID string) ([]document.Comment, error)
	AddComment(ctx context.Context, input document.AddCommentRequest) (*document.Comment, error)
	IncrementView(ctx context.Context, id string) error
	IncrementDownload(ctx context.Context, id string) error
	UploadFile(ctx context.Context, fileName string, data []byte) (*document.UploadResult, error)

	// # Tags
	GetTags(ctx context.Context) ([]tag.Tag, error)

	// # AI
	GenerateSummary(ctx context.Context, input ai.GenerateSummaryRequest) (*ai.GenerateSummaryResponse, error)
	SuggestTags(ctx context.Context, input ai.SuggestTagsRequest) (*ai.SuggestTagsResponse, error)
	ExtractKeywords(ctx context.Context, input ai.ExtractKeywordsRequest) (*ai.ExtractKeywordsResponse, error)
	AnalyzeDocument(ctx context.Context, input ai.AnalyzeDocumentRequest) (*ai.AnalyzeDocumentResponse, error)
	SearchWithAI(ctx context.Context, input ai.SearchRequest) (*ai.SearchResponse, error)
}

// # Response Envelope

// Envelope is the uniform wrapper on every backend response.
//
// Success replies carry Data and optionally Message and Pagination. Failure
// replies carry Error and optionally field-level Errors; Data is absent.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       json.RawMessage     `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Error      string              `json:"error,omitempty"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
	Pagination *pagination.Info    `json:"pagination,omitempty"`
}

// Err converts a failure envelope into an [apperr.AppError] carrying the
// transport status code. It returns nil for success envelopes.
func (e *Envelope) Err(httpStatus int) error {
	if e.Success {
		return nil
	}

	message := e.Error
	if message == "" {
		message = e.Message
	}
	if message == "" {
		message = "request failed"
	}

	return &apperr.AppError{
		Code:       codeForStatus(httpStatus),
		Message:    message,
		HTTPStatus: httpStatus,
		Details:    e.Errors,
	}
}

// Decode unwraps the payload of an envelope into T.
//
// A failure envelope yields the mapped error and the zero value; a success
// envelope with absent data yields the zero value and no error, so callers
// of data-less operations (logout, delete) can share this path.
func Decode[T any](e *Envelope, httpStatus int) (T, error) {
	var out T

	if err := e.Err(httpStatus); err != nil {
		return out, err
	}
	if len(e.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(e.Data, &out); err != nil {
		return out, apperr.Internal(err)
	}
	return out, nil
}

// codeForStatus maps a transport status to the client error taxonomy.
// Status 0 means the request never produced a response (network failure).
func codeForStatus(status int) string {
	switch status {
	case 0:
		return apperr.CodeNetworkError
	case 400:
		return apperr.CodeValidation
	case 401:
		return apperr.CodeUnauthorized
	case 403:
		return apperr.CodeForbidden
	case 404:
		return apperr.CodeNotFound
	case 409:
		return apperr.CodeConflict
	case 429:
		return apperr.CodeRateLimited
	default:
		return apperr.CodeInternal
	}
}
