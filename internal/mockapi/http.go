// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/middleware"
	requestutil "github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/request"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/respond"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

// maxUploadBytes caps multipart uploads at 25 MiB.
const maxUploadBytes = 25 << 20

// Handler exposes the mock service over the same HTTP surface the
// production API uses.
type Handler struct {
	service      *Service
	loginLimiter func(http.Handler) http.Handler
}

// NewHandler builds the HTTP facade. The context bounds the lifetime of the
// login rate limiter's cleanup goroutine.
func NewHandler(ctx context.Context, service *Service) *Handler {
	return &Handler{
		service:      service,
		loginLimiter: middleware.RateLimit(ctx, constants.LoginRateLimitRPS, constants.LoginRateLimitBurst),
	}
}

// RegisterRoutes mounts all API routes. The caller is expected to have
// installed the Authenticate middleware so protected groups can rely on
// RequireAuth.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/auth", func(authRouter chi.Router) {
		authRouter.With(handler.loginLimiter).Post("/login", handler.login)
		authRouter.Post("/register", handler.register)
		authRouter.Post("/refresh", handler.refresh)
		authRouter.Post("/logout", handler.logout)
		authRouter.Post("/forgot-password", handler.forgotPassword)
		authRouter.Post("/reset-password", handler.resetPassword)
		authRouter.With(middleware.RequireAuth).Post("/change-password", handler.changePassword)
	})

	router.Route("/documents", func(docRouter chi.Router) {
		docRouter.Use(middleware.RequireAuth)
		docRouter.Get("/", handler.listDocuments)
		docRouter.Post("/", handler.createDocument)
		docRouter.Get("/{id}", handler.getDocument)
		docRouter.Put("/{id}", handler.updateDocument)
		docRouter.Delete("/{id}", handler.deleteDocument)
		docRouter.Post("/{id}/rate", handler.rateDocument)
		docRouter.Get("/{id}/comments", handler.listComments)
		docRouter.Post("/{id}/comments", handler.addComment)
		docRouter.Post("/{id}/view", handler.incrementView)
		docRouter.Post("/{id}/download", handler.incrementDownload)
	})

	router.With(middleware.RequireAuth).Get("/tags", handler.listTags)
	router.With(middleware.RequireAuth).Post("/upload", handler.uploadFile)

	router.Route("/ai", func(aiRouter chi.Router) {
		aiRouter.Use(middleware.RequireAuth)
		aiRouter.Post("/summarize", handler.generateSummary)
		aiRouter.Post("/suggest-tags", handler.suggestTags)
		aiRouter.Post("/extract-keywords", handler.extractKeywords)
		aiRouter.Post("/analyze", handler.analyzeDocument)
		aiRouter.Post("/search", handler.searchWithAI)
	})
}

// ── 1. Auth ──

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input gateway.LoginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input users.CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session, "Account created successfully")
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input gateway.RefreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input gateway.RefreshRequest
	// A missing or malformed body still logs out; revocation is best effort.
	_ = requestutil.DecodeJSON(request, &input)

	if err := handler.service.Logout(request.Context(), input.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Logged out successfully")
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	var input gateway.ChangePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Password changed successfully")
}

func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input gateway.ForgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "If the address exists, a reset link has been sent")
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input gateway.ResetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Password reset successfully")
}

// ── 2. Documents ──

// searchFiltersFromQuery maps list query parameters onto search filters.
func searchFiltersFromQuery(request *http.Request) document.SearchFilters {
	query := request.URL.Query()

	filters := document.SearchFilters{
		Query:    query.Get("query"),
		Category: document.Category(query.Get("category")),
		Privacy:  document.Privacy(query.Get("privacy")),
		AuthorID: query.Get("authorId"),
	}

	if raw := query.Get("tags"); raw != "" {
		filters.Tags = strings.Split(raw, ",")
	}
	if raw := query.Get("minRating"); raw != "" {
		if minRating, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinRating = minRating
		}
	}
	if raw := query.Get("dateFrom"); raw != "" {
		if from, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.DateFrom = &from
		}
	}
	if raw := query.Get("dateTo"); raw != "" {
		if to, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.DateTo = &to
		}
	}
	return filters
}

func (handler *Handler) listDocuments(writer http.ResponseWriter, request *http.Request) {
	filters := searchFiltersFromQuery(request)
	page := pagination.FromRequest(request)

	result, err := handler.service.GetDocuments(request.Context(), filters, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, result, pagination.NewInfo(result.Page, result.Limit, result.Total))
}

func (handler *Handler) getDocument(writer http.ResponseWriter, request *http.Request) {
	doc, err := handler.service.GetDocument(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

func (handler *Handler) createDocument(writer http.ResponseWriter, request *http.Request) {
	var input document.CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.CreateDocument(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, doc, "Document created successfully")
}

func (handler *Handler) updateDocument(writer http.ResponseWriter, request *http.Request) {
	var input document.UpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	doc, err := handler.service.UpdateDocument(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

func (handler *Handler) deleteDocument(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteDocument(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Document deleted successfully")
}

func (handler *Handler) rateDocument(writer http.ResponseWriter, request *http.Request) {
	var input document.RateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.DocumentID = requestutil.ID(request, "id")

	doc, err := handler.service.RateDocument(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, doc)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.GetComments(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	var input document.AddCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.DocumentID = requestutil.ID(request, "id")

	comment, err := handler.service.AddComment(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment, "Comment added successfully")
}

func (handler *Handler) incrementView(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.IncrementView(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "View recorded")
}

func (handler *Handler) incrementDownload(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.IncrementDownload(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Download recorded")
}

// ── 3. Tags & Upload ──

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.GetTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) uploadFile(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.Validation("Invalid multipart form"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.Validation("Missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	result, err := handler.service.UploadFile(request.Context(), header.Filename, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result, "File uploaded successfully")
}

// ── 4. AI ──

func (handler *Handler) generateSummary(writer http.ResponseWriter, request *http.Request) {
	var input ai.GenerateSummaryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GenerateSummary(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) suggestTags(writer http.ResponseWriter, request *http.Request) {
	var input ai.SuggestTagsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SuggestTags(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) extractKeywords(writer http.ResponseWriter, request *http.Request) {
	var input ai.ExtractKeywordsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ExtractKeywords(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) analyzeDocument(writer http.ResponseWriter, request *http.Request) {
	var input ai.AnalyzeDocumentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.AnalyzeDocument(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) searchWithAI(writer http.ResponseWriter, request *http.Request) {
	var input ai.SearchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SearchWithAI(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
