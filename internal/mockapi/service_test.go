// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/mockapi"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

func newService() (*mockapi.Service, *sec.TokenService) {
	tokens := sec.NewTokenService("test-secret", constants.AuthIssuer)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mockapi.NewService(tokens, logger), tokens
}

/*
TestService_Login verifies the fixture accounts sign in with the shared
password and wrong credentials are rejected uniformly.
*/
func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantRole sec.UserRole
		wantErr  string
	}{
		{"admin_account", "admin@company.com", mockapi.FixturePassword, sec.RoleAdmin, ""},
		{"manager_account", "manager@company.com", mockapi.FixturePassword, sec.RoleManager, ""},
		{"regular_account", "user@company.com", mockapi.FixturePassword, sec.RoleUser, ""},
		{"wrong_password", "admin@company.com", "nope12345", "", apperr.CodeInvalidCredentials},
		{"unknown_account", "ghost@company.com", mockapi.FixturePassword, "", apperr.CodeInvalidCredentials},
		{"malformed_email", "not-an-email", mockapi.FixturePassword, "", apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, tokens := newService()
			session, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperr.IsCode(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			assert.Equal(t, int64(constants.AccessTokenTTLSeconds), session.ExpiresIn)
			assert.Equal(t, tt.wantRole, session.User.Role)

			// The issued access token must verify as a real JWT.
			claims, err := tokens.VerifyToken(session.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, session.User.ID, claims.UserID)
		})
	}
}

/*
TestService_RegisterAndConflict verifies enrollment opens a session and a
duplicate email is rejected.
*/
func TestService_RegisterAndConflict(t *testing.T) {
	service, _ := newService()
	input := users.CreateRequest{
		Email:      "new.hire@company.com",
		Password:   "password123",
		FirstName:  "New",
		LastName:   "Hire",
		Department: "QA",
	}

	session, err := service.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "new.hire@company.com", session.User.Email)
	assert.Equal(t, sec.RoleUser, session.User.Role)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	_, err = service.Register(context.Background(), users.CreateRequest{
		Email:     "short.pw@company.com",
		Password:  "short",
		FirstName: "Short",
		LastName:  "Password",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestService_RefreshRotation verifies the refresh token is single use: the
old one dies when a new pair is issued.
*/
func TestService_RefreshRotation(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	session, err := service.Login(ctx, "admin@company.com", mockapi.FixturePassword)
	require.NoError(t, err)

	fresh, err := service.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, fresh.RefreshToken)

	// The consumed token is gone.
	_, err = service.Refresh(ctx, session.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeSessionExpired))

	// Logout is best effort and never fails.
	assert.NoError(t, service.Logout(ctx, fresh.RefreshToken))
	assert.NoError(t, service.Logout(ctx, "unknown-token"))
}

/*
TestService_ChangePassword verifies the current password is checked before
the rotation takes effect.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	err := service.ChangePassword(ctx, gateway.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	require.NoError(t, service.ChangePassword(ctx, gateway.ChangePasswordRequest{
		CurrentPassword: mockapi.FixturePassword,
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	}))

	// Old password no longer works.
	_, err = service.Login(ctx, "admin@company.com", mockapi.FixturePassword)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))

	_, err = service.Login(ctx, "admin@company.com", "newpassword1")
	assert.NoError(t, err)
}

/*
TestService_GetDocuments verifies the filter chain and the pagination
bookkeeping over the two fixture documents.
*/
func TestService_GetDocuments(t *testing.T) {
	tests := []struct {
		name      string
		filters   document.SearchFilters
		wantTotal int
		wantFirst string
	}{
		{"all_newest_first", document.SearchFilters{}, 2, "React vs Angular Comparison"},
		{"category_guide", document.SearchFilters{Category: document.CategoryGuide}, 1, "Angular Best Practices Guide"},
		{"query_matches_title", document.SearchFilters{Query: "react"}, 1, "React vs Angular Comparison"},
		{"query_matches_tag", document.SearchFilters{Query: "typescript"}, 1, "Angular Best Practices Guide"},
		{"tag_any_match", document.SearchFilters{Tags: []string{"react", "nosuch"}}, 1, "React vs Angular Comparison"},
		{"min_rating", document.SearchFilters{MinRating: 4.4}, 1, "Angular Best Practices Guide"},
		{"no_match", document.SearchFilters{Query: "kubernetes"}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService()
			result, err := service.GetDocuments(context.Background(), tt.filters, pagination.Request{})
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, result.Total)
			assert.False(t, result.HasNext)
			assert.False(t, result.HasPrevious)
			if tt.wantFirst != "" {
				require.NotEmpty(t, result.Documents)
				assert.Equal(t, tt.wantFirst, result.Documents[0].Title)
			}
		})
	}
}

/*
TestService_GetDocumentsPaging verifies slice paging with limit 1.
*/
func TestService_GetDocumentsPaging(t *testing.T) {
	service, _ := newService()

	first, err := service.GetDocuments(context.Background(), document.SearchFilters{}, pagination.Request{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, first.Documents, 1)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	second, err := service.GetDocuments(context.Background(), document.SearchFilters{}, pagination.Request{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, second.Documents, 1)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.NotEqual(t, first.Documents[0].ID, second.Documents[0].ID)
}

/*
TestService_TagNormalization verifies tag names are slugified on create
and update: case, spaces, and diacritics fold onto one canonical entry.
*/
func TestService_TagNormalization(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.CreateDocument(ctx, document.CreateRequest{
		Title:       "Café Operations",
		Description: "Notes",
		Category:    document.CategoryGuide,
		Privacy:     document.PrivacyPublic,
		Tags:        []string{"Best Practices", "best-practices", "Café Culture", "  "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"best-practices", "cafe-culture"}, created.Tags)

	// The counter lands on the seeded entry, not a cased duplicate.
	tags, err := service.GetTags(ctx)
	require.NoError(t, err)
	byName := map[string]int{}
	for _, tg := range tags {
		byName[tg.Name] = tg.UsageCount
	}
	assert.Equal(t, 26, byName["best-practices"])
	assert.Equal(t, 1, byName["cafe-culture"])
	assert.NotContains(t, byName, "Best Practices")

	raw := []string{"Front End"}
	updated, err := service.UpdateDocument(ctx, created.ID, document.UpdateRequest{Tags: &raw})
	require.NoError(t, err)
	assert.Equal(t, []string{"front-end"}, updated.Tags)
}

/*
TestService_DocumentLifecycle verifies create, update, rate, delete and the
tag usage bump along the way.
*/
func TestService_DocumentLifecycle(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.CreateDocument(ctx, document.CreateRequest{
		Title:       "Testing Strategies",
		Description: "How we test services",
		Category:    document.CategoryTutorial,
		Privacy:     document.PrivacyPublic,
		Tags:        []string{"testing", "brand-new-tag"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, "1", created.AuthorID) // in-process fallback author

	// Usage counters: existing tag bumped, unknown tag added.
	tags, err := service.GetTags(ctx)
	require.NoError(t, err)
	byName := map[string]int{}
	for _, tg := range tags {
		byName[tg.Name] = tg.UsageCount
	}
	assert.Equal(t, 23, byName["testing"])
	assert.Equal(t, 1, byName["brand-new-tag"])

	newTitle := "Testing Strategies, Revised"
	updated, err := service.UpdateDocument(ctx, created.ID, document.UpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "How we test services", updated.Description)

	rated, err := service.RateDocument(ctx, document.RateRequest{DocumentID: created.ID, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, rated.Rating.Count)
	assert.InDelta(t, 4.0, rated.Rating.Average, 0.001)
	assert.Equal(t, 1, rated.Rating.Distribution[4])

	_, err = service.RateDocument(ctx, document.RateRequest{DocumentID: created.ID, Rating: 9})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	require.NoError(t, service.DeleteDocument(ctx, created.ID))
	_, err = service.GetDocument(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

/*
TestService_RatingMath verifies the running average over the fixture
distribution: one more 5-star vote moves 4.5 towards 4.52.
*/
func TestService_RatingMath(t *testing.T) {
	service, _ := newService()

	rated, err := service.RateDocument(context.Background(), document.RateRequest{DocumentID: "1", Rating: 5})
	require.NoError(t, err)

	assert.Equal(t, 26, rated.Rating.Count)
	assert.Equal(t, 12, rated.Rating.Distribution[5])
	// (1*1 + 2*2 + 3*3 + 8*4 + 12*5) / 26
	assert.InDelta(t, 4.077, rated.Rating.Average, 0.01)
}

/*
TestService_Comments verifies the thread operations including one-level
reply nesting.
*/
func TestService_Comments(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	comment, err := service.AddComment(ctx, document.AddCommentRequest{
		DocumentID: "1",
		Content:    "Very useful, thanks.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)

	reply, err := service.AddComment(ctx, document.AddCommentRequest{
		DocumentID: "1",
		Content:    "Agreed.",
		ParentID:   &comment.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, comment.ID, *reply.ParentID)

	thread, err := service.GetComments(ctx, "1")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "Agreed.", thread[0].Replies[0].Content)

	missing := "no-such-comment"
	_, err = service.AddComment(ctx, document.AddCommentRequest{
		DocumentID: "1",
		Content:    "Orphan",
		ParentID:   &missing,
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

/*
TestService_Counters verifies the fire-and-forget counters tolerate unknown
ids and bump the stored document.
*/
func TestService_Counters(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.IncrementView(ctx, "1"))
	require.NoError(t, service.IncrementDownload(ctx, "1"))
	require.NoError(t, service.IncrementView(ctx, "no-such-document"))

	doc, err := service.GetDocument(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(301), doc.ViewCount)
	assert.Equal(t, int64(151), doc.DownloadCount)
}
