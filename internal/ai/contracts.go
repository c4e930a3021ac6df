// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package ai defines the contracts for the document-intelligence features:
summary generation, tag suggestion, keyword extraction, document analysis,
and semantic search.

Every response carries a confidence score in [0, 1] so callers can decide
whether to surface a result or fall back to manual input.
*/
package ai

import "time"

// # Summaries

// GenerateSummaryRequest asks for a condensed version of document content.
type GenerateSummaryRequest struct {
	Content   string `json:"content"`
	MaxLength int    `json:"maxLength,omitempty"`
	Language  string `json:"language,omitempty"`
}

// GenerateSummaryResponse is the produced summary with its key points.
type GenerateSummaryResponse struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	Confidence float64  `json:"confidence"`
}

// # Tags and Keywords

// SuggestTagsRequest asks for tag suggestions based on document text.
type SuggestTagsRequest struct {
	Content     string `json:"content"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	MaxTags     int    `json:"maxTags,omitempty"`
}

// SuggestTagsResponse lists the suggested tags.
type SuggestTagsResponse struct {
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

// ExtractKeywordsRequest asks for the most salient terms in a text.
type ExtractKeywordsRequest struct {
	Content     string `json:"content"`
	MaxKeywords int    `json:"maxKeywords,omitempty"`
}

// ExtractKeywordsResponse lists the extracted keywords.
type ExtractKeywordsResponse struct {
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
}

// # Document Analysis

// Complexity grades how advanced a document's content is.
type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// AnalyzeDocumentRequest asks for a combined analysis of a document.
type AnalyzeDocumentRequest struct {
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

// AnalyzeDocumentResponse bundles summary, tags, keywords, and a category
// recommendation into a single result.
type AnalyzeDocumentResponse struct {
	Summary           string     `json:"summary"`
	Tags              []string   `json:"tags"`
	Keywords          []string   `json:"keywords"`
	Category          string     `json:"category"`
	Complexity        Complexity `json:"complexity"`
	EstimatedReadTime int        `json:"estimatedReadTime"` // minutes
	Confidence        float64    `json:"confidence"`
}

// # Semantic Search

// SearchRequest is a natural-language query over the document corpus.
type SearchRequest struct {
	Query   string         `json:"query"`
	Context string         `json:"context,omitempty"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// SearchFilters narrows a semantic search.
type SearchFilters struct {
	Category  string     `json:"category,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	DateRange *DateRange `json:"dateRange,omitempty"`
}

// DateRange bounds a search to a creation window.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SearchResponse carries ranked matches plus follow-up query suggestions.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	Suggestions []string       `json:"suggestions"`
	Confidence  float64        `json:"confidence"`
}

// SearchResult is a single semantic match.
type SearchResult struct {
	DocumentID  string   `json:"documentId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Relevance   float64  `json:"relevance"`
	Highlights  []string `json:"highlights"`
	Tags        []string `json:"tags"`
}
