// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package ai_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
)

// fakeAssistant records calls and replies with canned payloads.
type fakeAssistant struct {
	summaryCalls int
	tagCalls     int
	keywordCalls int
	analyzeCalls int
	searchCalls  int
	lastContent  string
	lastQuery    string
}

func (f *fakeAssistant) GenerateSummary(ctx context.Context, input ai.GenerateSummaryRequest) (*ai.GenerateSummaryResponse, error) {
	f.summaryCalls++
	f.lastContent = input.Content
	return &ai.GenerateSummaryResponse{Summary: "summary", Confidence: 0.9}, nil
}

func (f *fakeAssistant) SuggestTags(ctx context.Context, input ai.SuggestTagsRequest) (*ai.SuggestTagsResponse, error) {
	f.tagCalls++
	f.lastContent = input.Content
	return &ai.SuggestTagsResponse{Tags: []string{"go"}}, nil
}

func (f *fakeAssistant) ExtractKeywords(ctx context.Context, input ai.ExtractKeywordsRequest) (*ai.ExtractKeywordsResponse, error) {
	f.keywordCalls++
	f.lastContent = input.Content
	return &ai.ExtractKeywordsResponse{Keywords: []string{"keyword"}}, nil
}

func (f *fakeAssistant) AnalyzeDocument(ctx context.Context, input ai.AnalyzeDocumentRequest) (*ai.AnalyzeDocumentResponse, error) {
	f.analyzeCalls++
	f.lastContent = input.Content
	return &ai.AnalyzeDocumentResponse{Complexity: ai.ComplexityBeginner}, nil
}

func (f *fakeAssistant) SearchWithAI(ctx context.Context, input ai.SearchRequest) (*ai.SearchResponse, error) {
	f.searchCalls++
	f.lastQuery = input.Query
	return &ai.SearchResponse{Results: []ai.SearchResult{{DocumentID: "1"}}}, nil
}

func newTestService() (*ai.Service, *fakeAssistant) {
	assistant := &fakeAssistant{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ai.NewService(assistant, logger), assistant
}

/*
TestService_DelegatesValidInput verifies each operation passes its input
through to the assistant untouched.
*/
func TestService_DelegatesValidInput(t *testing.T) {
	service, assistant := newTestService()
	ctx := context.Background()

	summary, err := service.GenerateSummary(ctx, ai.GenerateSummaryRequest{Content: "article body"})
	require.NoError(t, err)
	assert.Equal(t, "summary", summary.Summary)
	assert.Equal(t, "article body", assistant.lastContent)

	tags, err := service.SuggestTags(ctx, ai.SuggestTagsRequest{Content: "article body"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tags.Tags)

	keywords, err := service.ExtractKeywords(ctx, ai.ExtractKeywordsRequest{Content: "article body"})
	require.NoError(t, err)
	assert.Equal(t, []string{"keyword"}, keywords.Keywords)

	analysis, err := service.AnalyzeDocument(ctx, ai.AnalyzeDocumentRequest{Title: "t", Content: "article body"})
	require.NoError(t, err)
	assert.Equal(t, ai.ComplexityBeginner, analysis.Complexity)

	search, err := service.Search(ctx, ai.SearchRequest{Query: "deadlocks"})
	require.NoError(t, err)
	require.Len(t, search.Results, 1)
	assert.Equal(t, "deadlocks", assistant.lastQuery)

	assert.Equal(t, 1, assistant.summaryCalls)
	assert.Equal(t, 1, assistant.tagCalls)
	assert.Equal(t, 1, assistant.keywordCalls)
	assert.Equal(t, 1, assistant.analyzeCalls)
	assert.Equal(t, 1, assistant.searchCalls)
}

/*
TestService_RejectsEmptyInput verifies malformed requests fail locally
with a validation error and never reach the assistant.
*/
func TestService_RejectsEmptyInput(t *testing.T) {
	service, assistant := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"summary", func() error {
			_, err := service.GenerateSummary(ctx, ai.GenerateSummaryRequest{})
			return err
		}},
		{"tags", func() error {
			_, err := service.SuggestTags(ctx, ai.SuggestTagsRequest{})
			return err
		}},
		{"keywords", func() error {
			_, err := service.ExtractKeywords(ctx, ai.ExtractKeywordsRequest{})
			return err
		}},
		{"analyze", func() error {
			_, err := service.AnalyzeDocument(ctx, ai.AnalyzeDocumentRequest{Title: "title only"})
			return err
		}},
		{"search", func() error {
			_, err := service.Search(ctx, ai.SearchRequest{})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
		})
	}

	assert.Zero(t, assistant.summaryCalls)
	assert.Zero(t, assistant.tagCalls)
	assert.Zero(t, assistant.keywordCalls)
	assert.Zero(t, assistant.analyzeCalls)
	assert.Zero(t, assistant.searchCalls)
}
