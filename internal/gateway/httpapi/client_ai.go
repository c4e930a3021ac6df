// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package httpapi

import (
	"context"
	"net/http"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
)

func (client *Client) GenerateSummary(ctx context.Context, input ai.GenerateSummaryRequest) (*ai.GenerateSummaryResponse, error) {
	return call[*ai.GenerateSummaryResponse](client, ctx, http.MethodPost, "/ai/summarize", nil, input)
}

func (client *Client) SuggestTags(ctx context.Context, input ai.SuggestTagsRequest) (*ai.SuggestTagsResponse, error) {
	return call[*ai.SuggestTagsResponse](client, ctx, http.MethodPost, "/ai/suggest-tags", nil, input)
}

func (client *Client) ExtractKeywords(ctx context.Context, input ai.ExtractKeywordsRequest) (*ai.ExtractKeywordsResponse, error) {
	return call[*ai.ExtractKeywordsResponse](client, ctx, http.MethodPost, "/ai/extract-keywords", nil, input)
}

func (client *Client) AnalyzeDocument(ctx context.Context, input ai.AnalyzeDocumentRequest) (*ai.AnalyzeDocumentResponse, error) {
	return call[*ai.AnalyzeDocumentResponse](client, ctx, http.MethodPost, "/ai/analyze", nil, input)
}

func (client *Client) SearchWithAI(ctx context.Context, input ai.SearchRequest) (*ai.SearchResponse, error) {
	return call[*ai.SearchResponse](client, ctx, http.MethodPost, "/ai/search", nil, input)
}
