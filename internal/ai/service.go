// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package ai

import (
	"context"
	"log/slog"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/validate"
)

// Assistant is the AI slice of the gateway the service delegates to.
type Assistant interface {
	GenerateSummary(ctx context.Context, input GenerateSummaryRequest) (*GenerateSummaryResponse, error)
	SuggestTags(ctx context.Context, input SuggestTagsRequest) (*SuggestTagsResponse, error)
	ExtractKeywords(ctx context.Context, input ExtractKeywordsRequest) (*ExtractKeywordsResponse, error)
	AnalyzeDocument(ctx context.Context, input AnalyzeDocumentRequest) (*AnalyzeDocumentResponse, error)
	SearchWithAI(ctx context.Context, input SearchRequest) (*SearchResponse, error)
}

// Service fronts the AI assistance features. It validates inputs before
// they reach the gateway so malformed requests fail locally.
type Service struct {
	assistant Assistant
	logger    *slog.Logger
}

// NewService builds the AI service.
func NewService(assistant Assistant, logger *slog.Logger) *Service {
	return &Service{assistant: assistant, logger: logger}
}

// GenerateSummary produces a short summary of the given content.
func (service *Service) GenerateSummary(ctx context.Context, input GenerateSummaryRequest) (*GenerateSummaryResponse, error) {
	v := &validate.Validator{}
	v.Required("content", input.Content)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.assistant.GenerateSummary(ctx, input)
}

// SuggestTags proposes tags for the given content.
func (service *Service) SuggestTags(ctx context.Context, input SuggestTagsRequest) (*SuggestTagsResponse, error) {
	v := &validate.Validator{}
	v.Required("content", input.Content)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.assistant.SuggestTags(ctx, input)
}

// ExtractKeywords pulls the significant terms out of the given content.
func (service *Service) ExtractKeywords(ctx context.Context, input ExtractKeywordsRequest) (*ExtractKeywordsResponse, error) {
	v := &validate.Validator{}
	v.Required("content", input.Content)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.assistant.ExtractKeywords(ctx, input)
}

// AnalyzeDocument runs the combined analysis: summary, tags, keywords,
// category guess, complexity and estimated read time.
func (service *Service) AnalyzeDocument(ctx context.Context, input AnalyzeDocumentRequest) (*AnalyzeDocumentResponse, error) {
	v := &validate.Validator{}
	v.Required("content", input.Content)
	if err := v.Err(); err != nil {
		return nil, err
	}

	service.logger.Debug("running document analysis", "title", input.Title)
	return service.assistant.AnalyzeDocument(ctx, input)
}

// Search runs a relevance-ranked search over the document corpus.
func (service *Service) Search(ctx context.Context, input SearchRequest) (*SearchResponse, error) {
	v := &validate.Validator{}
	v.Required("query", input.Query)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.assistant.SearchWithAI(ctx, input)
}
