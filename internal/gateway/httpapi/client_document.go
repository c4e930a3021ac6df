// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

// listQuery flattens search filters and pagination into URL parameters.
func listQuery(filters document.SearchFilters, page pagination.Request) url.Values {
	query := url.Values{}

	page = page.Normalize()
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("limit", strconv.Itoa(page.Limit))
	if page.SortBy != "" {
		query.Set("sortBy", page.SortBy)
	}
	if page.SortOrder != "" {
		query.Set("sortOrder", page.SortOrder)
	}

	if filters.Query != "" {
		query.Set("query", filters.Query)
	}
	if len(filters.Tags) > 0 {
		query.Set("tags", strings.Join(filters.Tags, ","))
	}
	if filters.Category != "" {
		query.Set("category", string(filters.Category))
	}
	if filters.Privacy != "" {
		query.Set("privacy", string(filters.Privacy))
	}
	if filters.AuthorID != "" {
		query.Set("authorId", filters.AuthorID)
	}
	if filters.MinRating > 0 {
		query.Set("minRating", strconv.FormatFloat(filters.MinRating, 'f', -1, 64))
	}
	if filters.DateFrom != nil {
		query.Set("dateFrom", filters.DateFrom.Format(time.RFC3339))
	}
	if filters.DateTo != nil {
		query.Set("dateTo", filters.DateTo.Format(time.RFC3339))
	}
	return query
}

func (client *Client) GetDocuments(ctx context.Context, filters document.SearchFilters, page pagination.Request) (*document.SearchResult, error) {
	return call[*document.SearchResult](client, ctx, http.MethodGet, "/documents", listQuery(filters, page), nil)
}

func (client *Client) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	return call[*document.Document](client, ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, nil)
}

func (client *Client) CreateDocument(ctx context.Context, input document.CreateRequest) (*document.Document, error) {
	return call[*document.Document](client, ctx, http.MethodPost, "/documents", nil, input)
}

func (client *Client) UpdateDocument(ctx context.Context, id string, input document.UpdateRequest) (*document.Document, error) {
	return call[*document.Document](client, ctx, http.MethodPut, "/documents/"+url.PathEscape(id), nil, input)
}

func (client *Client) DeleteDocument(ctx context.Context, id string) error {
	return client.exec(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil)
}

func (client *Client) RateDocument(ctx context.Context, input document.RateRequest) (*document.Document, error) {
	return call[*document.Document](client, ctx, http.MethodPost,
		"/documents/"+url.PathEscape(input.DocumentID)+"/rate", nil, input)
}

func (client *Client) GetComments(ctx context.Context, documentID string) ([]document.Comment, error) {
	return call[[]document.Comment](client, ctx, http.MethodGet,
		"/documents/"+url.PathEscape(documentID)+"/comments", nil, nil)
}

func (client *Client) AddComment(ctx context.Context, input document.AddCommentRequest) (*document.Comment, error) {
	return call[*document.Comment](client, ctx, http.MethodPost,
		"/documents/"+url.PathEscape(input.DocumentID)+"/comments", nil, input)
}

func (client *Client) IncrementView(ctx context.Context, id string) error {
	return client.exec(ctx, http.MethodPost, "/documents/"+url.PathEscape(id)+"/view", nil)
}

func (client *Client) IncrementDownload(ctx context.Context, id string) error {
	return client.exec(ctx, http.MethodPost, "/documents/"+url.PathEscape(id)+"/download", nil)
}

func (client *Client) GetTags(ctx context.Context) ([]tag.Tag, error) {
	return call[[]tag.Tag](client, ctx, http.MethodGet, "/tags", nil, nil)
}
