// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi

import (
	"context"
	"sort"
	"strings"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/ai"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/validate"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/slug"
)

// The AI endpoints return deterministic canned analysis so client flows and
// tests behave identically run to run. Confidence scores are fixed per
// operation.

const cannedSummary = "This is a mock AI-generated summary of the provided content. " +
	"The content covers key topics and important points that users should be aware of."

var cannedKeyPoints = []string{
	"Key point 1 extracted from content",
	"Key point 2 identified by AI",
	"Key point 3 highlighting important information",
}

var cannedTagPool = []string{"angular", "typescript", "frontend", "development", "best-practices"}

var cannedSuggestions = []string{
	"angular best practices",
	"react comparison",
	"frontend performance",
}

// GenerateSummary produces the canned summary, truncated to MaxLength when
// one is given.
func (service *Service) GenerateSummary(ctx context.Context, input ai.GenerateSummaryRequest) (*ai.GenerateSummaryResponse, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	summary := cannedSummary
	if input.MaxLength > 0 && len(summary) > input.MaxLength {
		summary = summary[:input.MaxLength]
	}

	return &ai.GenerateSummaryResponse{
		Summary:    summary,
		KeyPoints:  append([]string(nil), cannedKeyPoints...),
		Confidence: 0.85,
	}, nil
}

// SuggestTags returns up to MaxTags entries from the canned pool.
func (service *Service) SuggestTags(ctx context.Context, input ai.SuggestTagsRequest) (*ai.SuggestTagsResponse, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	count := len(cannedTagPool)
	if input.MaxTags > 0 && input.MaxTags < count {
		count = input.MaxTags
	}

	return &ai.SuggestTagsResponse{
		Tags:       append([]string(nil), cannedTagPool[:count]...),
		Confidence: 0.78,
	}, nil
}

// ExtractKeywords picks distinct words longer than four characters from the
// content, in order of first appearance.
func (service *Service) ExtractKeywords(ctx context.Context, input ai.ExtractKeywordsRequest) (*ai.ExtractKeywordsResponse, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	limit := input.MaxKeywords
	if limit <= 0 {
		limit = 10
	}

	return &ai.ExtractKeywordsResponse{
		Keywords:   extractKeywords(input.Content, limit),
		Confidence: 0.7,
	}, nil
}

func extractKeywords(content string, limit int) []string {
	seen := make(map[string]bool)
	keywords := []string{}

	for _, word := range strings.Fields(slug.Fold(content)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) <= 4 || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == limit {
			break
		}
	}
	return keywords
}

// AnalyzeDocument bundles the summary, tag, and keyword operations with a
// complexity and reading-time estimate derived from the content length.
func (service *Service) AnalyzeDocument(ctx context.Context, input ai.AnalyzeDocumentRequest) (*ai.AnalyzeDocumentResponse, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	words := len(strings.Fields(input.Content))

	complexity := ai.ComplexityBeginner
	switch {
	case words > 1500:
		complexity = ai.ComplexityAdvanced
	case words > 300:
		complexity = ai.ComplexityIntermediate
	}

	return &ai.AnalyzeDocumentResponse{
		Summary:           cannedSummary,
		Tags:              append([]string(nil), cannedTagPool[:3]...),
		Keywords:          extractKeywords(input.Content, 10),
		Category:          guessCategory(input.Title, input.Content),
		Complexity:        complexity,
		EstimatedReadTime: words/200 + 1,
		Confidence:        0.8,
	}, nil
}

func guessCategory(title, content string) string {
	haystack := slug.Fold(title + " " + content)
	switch {
	case strings.Contains(haystack, "tutorial"):
		return "tutorial"
	case strings.Contains(haystack, "guide"):
		return "guide"
	case strings.Contains(haystack, "template"):
		return "template"
	case strings.Contains(haystack, "comparison"), strings.Contains(haystack, "case study"):
		return "case_study"
	default:
		return "other"
	}
}

// SearchWithAI ranks the stored documents by how many query terms they
// contain across title, description, and tags.
func (service *Service) SearchWithAI(ctx context.Context, input ai.SearchRequest) (*ai.SearchResponse, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("query", input.Query)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	terms := strings.Fields(slug.Fold(input.Query))
	results := []ai.SearchResult{}

	for _, doc := range service.documents {
		if !doc.IsActive {
			continue
		}

		haystack := slug.Fold(doc.Title + " " + doc.Description + " " + strings.Join(doc.Tags, " "))
		var highlights []string
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				highlights = append(highlights, term)
			}
		}
		if len(highlights) == 0 {
			continue
		}

		results = append(results, ai.SearchResult{
			DocumentID:  doc.ID,
			Title:       doc.Title,
			Description: doc.Description,
			Relevance:   float64(len(highlights)) / float64(len(terms)),
			Highlights:  highlights,
			Tags:        append([]string(nil), doc.Tags...),
		})
	}

	// Strongest matches first.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	return &ai.SearchResponse{
		Results:     results,
		Suggestions: append([]string(nil), cannedSuggestions...),
		Confidence:  0.75,
	}, nil
}
