// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
)

/*
TestService_GenerateSummary verifies the deterministic summary, the
MaxLength truncation, and the empty-content rejection.
*/
func TestService_GenerateSummary(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	full, err := service.GenerateSummary(ctx, ai.GenerateSummaryRequest{Content: "some long article"})
	require.NoError(t, err)
	assert.NotEmpty(t, full.Summary)
	assert.Len(t, full.KeyPoints, 3)
	assert.InDelta(t, 0.85, full.Confidence, 0.001)

	truncated, err := service.GenerateSummary(ctx, ai.GenerateSummaryRequest{Content: "some long article", MaxLength: 20})
	require.NoError(t, err)
	assert.Len(t, truncated.Summary, 20)
	assert.Equal(t, full.Summary[:20], truncated.Summary)

	_, err = service.GenerateSummary(ctx, ai.GenerateSummaryRequest{})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestService_SuggestTags verifies the pool cap and the MaxTags limit.
*/
func TestService_SuggestTags(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	all, err := service.SuggestTags(ctx, ai.SuggestTagsRequest{Content: "angular content"})
	require.NoError(t, err)
	assert.Len(t, all.Tags, 5)
	assert.InDelta(t, 0.78, all.Confidence, 0.001)

	limited, err := service.SuggestTags(ctx, ai.SuggestTagsRequest{Content: "angular content", MaxTags: 2})
	require.NoError(t, err)
	assert.Equal(t, all.Tags[:2], limited.Tags)
}

/*
TestService_ExtractKeywords verifies distinct words longer than four
characters come back in first-appearance order, capped by MaxKeywords.
*/
func TestService_ExtractKeywords(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	content := "Testing concurrent systems: testing, again testing! Short word web, deadlock analysis."
	response, err := service.ExtractKeywords(ctx, ai.ExtractKeywordsRequest{Content: content})
	require.NoError(t, err)
	assert.Equal(t, []string{"testing", "concurrent", "systems", "again", "short", "deadlock", "analysis"}, response.Keywords)

	capped, err := service.ExtractKeywords(ctx, ai.ExtractKeywordsRequest{Content: content, MaxKeywords: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"testing", "concurrent", "systems"}, capped.Keywords)
}

/*
TestService_AnalyzeDocument verifies the complexity thresholds, the
reading-time estimate, and the category guess.
*/
func TestService_AnalyzeDocument(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name       string
		words      int
		complexity ai.Complexity
	}{
		{"short_is_beginner", 100, ai.ComplexityBeginner},
		{"medium_is_intermediate", 400, ai.ComplexityIntermediate},
		{"long_is_advanced", 1600, ai.ComplexityAdvanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tt.words))
			response, err := service.AnalyzeDocument(ctx, ai.AnalyzeDocumentRequest{
				Title:   "Deployment Tutorial",
				Content: content,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.complexity, response.Complexity)
			assert.Equal(t, tt.words/200+1, response.EstimatedReadTime)
			assert.Equal(t, "tutorial", response.Category)
			assert.Len(t, response.Tags, 3)
		})
	}
}

/*
TestService_SearchWithAI verifies term-overlap ranking against the seeded
catalogue: both seeded documents mention angular, only one mentions react.
*/
func TestService_SearchWithAI(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	response, err := service.SearchWithAI(ctx, ai.SearchRequest{Query: "react angular"})
	require.NoError(t, err)
	require.Len(t, response.Results, 2)

	// Document "2" matches both terms, document "1" only angular.
	assert.Equal(t, "2", response.Results[0].DocumentID)
	assert.InDelta(t, 1.0, response.Results[0].Relevance, 0.001)
	assert.Equal(t, "1", response.Results[1].DocumentID)
	assert.InDelta(t, 0.5, response.Results[1].Relevance, 0.001)
	assert.ElementsMatch(t, []string{"react", "angular"}, response.Results[0].Highlights)
	assert.NotEmpty(t, response.Suggestions)

	empty, err := service.SearchWithAI(ctx, ai.SearchRequest{Query: "zzzzunmatched"})
	require.NoError(t, err)
	assert.Empty(t, empty.Results)

	_, err = service.SearchWithAI(ctx, ai.SearchRequest{})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}
