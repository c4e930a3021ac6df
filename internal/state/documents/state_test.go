// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package documents_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/state/documents"
)

func sampleDocument(id, title string) document.Document {
	return document.Document{
		ID:       id,
		Title:    title,
		Category: document.CategoryGuide,
		Privacy:  document.PrivacyPublic,
		Tags:     []string{"angular"},
		IsActive: true,
	}
}

/*
TestReduce_Requests verifies that every request event enters the loading
state and clears a stale error.
*/
func TestReduce_Requests(t *testing.T) {
	tests := []struct {
		name string
		kind documents.EventKind
	}{
		{"list", documents.EventListRequested},
		{"detail", documents.EventDetailRequested},
		{"create", documents.EventCreateRequested},
		{"update", documents.EventUpdateRequested},
		{"delete", documents.EventDeleteRequested},
		{"rate", documents.EventRateRequested},
		{"comments", documents.EventCommentsRequested},
		{"add_comment", documents.EventCommentAddRequested},
		{"popular", documents.EventPopularRequested},
		{"recent", documents.EventRecentRequested},
		{"user_docs", documents.EventUserDocsRequested},
		{"tags", documents.EventTagsRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := documents.InitialState()
			state.Error = "previous failure"

			next := documents.Reduce(state, documents.Event{Kind: tt.kind})

			assert.True(t, next.Loading)
			assert.Empty(t, next.Error)
		})
	}
}

/*
TestReduce_Failures verifies that failure events stop loading and record
the message without rolling back collections.
*/
func TestReduce_Failures(t *testing.T) {
	state := documents.InitialState()
	state.Documents = []document.Document{sampleDocument("doc-1", "Kept")}
	state.Loading = true

	next := documents.Reduce(state, documents.Event{
		Kind:  documents.EventListFailed,
		Error: "network unreachable",
	})

	assert.False(t, next.Loading)
	assert.Equal(t, "network unreachable", next.Error)
	assert.Len(t, next.Documents, 1)
}

/*
TestReduce_DetailFailureClearsSelection verifies that a failed detail load
drops the current selection.
*/
func TestReduce_DetailFailureClearsSelection(t *testing.T) {
	selected := sampleDocument("doc-1", "Selected")
	state := documents.InitialState()
	state.SelectedDocument = &selected

	next := documents.Reduce(state, documents.Event{
		Kind:  documents.EventDetailFailed,
		Error: "Document not found",
	})

	assert.Nil(t, next.SelectedDocument)
	assert.Equal(t, "Document not found", next.Error)
}

/*
TestReduce_CreatePrependsAndSelects verifies that a created document lands
at the head of the list and becomes the selection.
*/
func TestReduce_CreatePrependsAndSelects(t *testing.T) {
	existing := sampleDocument("doc-1", "Older")
	created := sampleDocument("doc-2", "Newest")

	state := documents.InitialState()
	state.Documents = []document.Document{existing}

	next := documents.Reduce(state, documents.Event{
		Kind:     documents.EventCreateSucceeded,
		Document: &created,
	})

	require.Len(t, next.Documents, 2)
	assert.Equal(t, "doc-2", next.Documents[0].ID)
	assert.Equal(t, "doc-1", next.Documents[1].ID)
	require.NotNil(t, next.SelectedDocument)
	assert.Equal(t, "doc-2", next.SelectedDocument.ID)

	// The previous snapshot keeps its own list.
	assert.Len(t, state.Documents, 1)
}

/*
TestReduce_UpdateReplacesListAndSelection verifies that an update lands in
the list and in the selection atomically when the same document is selected.
*/
func TestReduce_UpdateReplacesListAndSelection(t *testing.T) {
	original := sampleDocument("doc-1", "Before")
	updated := sampleDocument("doc-1", "After")

	state := documents.InitialState()
	state.Documents = []document.Document{original, sampleDocument("doc-2", "Other")}
	state.SelectedDocument = &original

	next := documents.Reduce(state, documents.Event{
		Kind:     documents.EventUpdateSucceeded,
		Document: &updated,
	})

	assert.Equal(t, "After", next.Documents[0].Title)
	assert.Equal(t, "Other", next.Documents[1].Title)
	require.NotNil(t, next.SelectedDocument)
	assert.Equal(t, "After", next.SelectedDocument.Title)
}

/*
TestReduce_UpdateLeavesUnrelatedSelection verifies that updating one
document does not disturb a different selection.
*/
func TestReduce_UpdateLeavesUnrelatedSelection(t *testing.T) {
	selected := sampleDocument("doc-1", "Selected")
	updated := sampleDocument("doc-2", "Edited")

	state := documents.InitialState()
	state.Documents = []document.Document{selected, sampleDocument("doc-2", "Other")}
	state.SelectedDocument = &selected

	next := documents.Reduce(state, documents.Event{
		Kind:     documents.EventUpdateSucceeded,
		Document: &updated,
	})

	require.NotNil(t, next.SelectedDocument)
	assert.Equal(t, "doc-1", next.SelectedDocument.ID)
	assert.Equal(t, "Edited", next.Documents[1].Title)
}

/*
TestReduce_DeleteRemovesAndDeselects verifies that deleting the selected
document removes it from the list and clears the selection, while deleting
another document leaves the selection alone.
*/
func TestReduce_DeleteRemovesAndDeselects(t *testing.T) {
	tests := []struct {
		name          string
		deleteID      string
		wantSelection bool
	}{
		{"delete_selected", "doc-1", false},
		{"delete_other", "doc-2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := sampleDocument("doc-1", "Selected")
			state := documents.InitialState()
			state.Documents = []document.Document{selected, sampleDocument("doc-2", "Other")}
			state.SelectedDocument = &selected

			next := documents.Reduce(state, documents.Event{
				Kind: documents.EventDeleteSucceeded,
				ID:   tt.deleteID,
			})

			assert.Len(t, next.Documents, 1)
			assert.NotEqual(t, tt.deleteID, next.Documents[0].ID)
			if tt.wantSelection {
				assert.NotNil(t, next.SelectedDocument)
			} else {
				assert.Nil(t, next.SelectedDocument)
			}
		})
	}
}

/*
TestReduce_SearchLifecycle verifies the query bookkeeping: the request
records the query immediately, success records the completed query, and
clearing resets everything.
*/
func TestReduce_SearchLifecycle(t *testing.T) {
	state := documents.InitialState()

	state = documents.Reduce(state, documents.Event{
		Kind:  documents.EventSearchRequested,
		Query: "angular",
	})
	assert.True(t, state.Loading)
	assert.Equal(t, "angular", state.SearchQuery)
	assert.Empty(t, state.LastSearchQuery)

	result := &document.SearchResult{
		Documents: []document.Document{sampleDocument("doc-1", "Angular Guide")},
		Total:     1,
	}
	state = documents.Reduce(state, documents.Event{
		Kind:   documents.EventSearchSucceeded,
		Result: result,
		Query:  "angular",
	})
	assert.False(t, state.Loading)
	assert.Equal(t, "angular", state.LastSearchQuery)
	require.NotNil(t, state.SearchResults)
	assert.Equal(t, 1, state.SearchResults.Total)

	state = documents.Reduce(state, documents.Event{Kind: documents.EventSearchCleared})
	assert.Nil(t, state.SearchResults)
	assert.Empty(t, state.SearchQuery)
	assert.Empty(t, state.LastSearchQuery)
}

/*
TestReduce_Comments verifies that a thread load replaces the per-document
list and a posted comment appends to it.
*/
func TestReduce_Comments(t *testing.T) {
	state := documents.InitialState()

	state = documents.Reduce(state, documents.Event{
		Kind:     documents.EventCommentsSucceeded,
		ID:       "doc-1",
		Comments: []document.Comment{{ID: "comment-1", Content: "First"}},
	})
	require.Len(t, state.Comments["doc-1"], 1)

	state = documents.Reduce(state, documents.Event{
		Kind:    documents.EventCommentAddSucceeded,
		ID:      "doc-1",
		Comment: &document.Comment{ID: "comment-2", Content: "Second"},
	})

	require.Len(t, state.Comments["doc-1"], 2)
	assert.Equal(t, "comment-2", state.Comments["doc-1"][1].ID)
}

/*
TestReduce_RankedCollections verifies that popular, recent and per-user
loads land in their own collections without touching the primary list.
*/
func TestReduce_RankedCollections(t *testing.T) {
	primary := sampleDocument("doc-1", "Primary")
	ranked := []document.Document{sampleDocument("doc-9", "Ranked")}

	state := documents.InitialState()
	state.Documents = []document.Document{primary}

	state = documents.Reduce(state, documents.Event{Kind: documents.EventPopularSucceeded, Documents: ranked})
	state = documents.Reduce(state, documents.Event{Kind: documents.EventRecentSucceeded, Documents: ranked})
	state = documents.Reduce(state, documents.Event{Kind: documents.EventUserDocsSucceeded, Documents: ranked})

	assert.Len(t, state.Documents, 1)
	assert.Equal(t, "doc-9", state.PopularDocuments[0].ID)
	assert.Equal(t, "doc-9", state.RecentDocuments[0].ID)
	assert.Equal(t, "doc-9", state.UserDocuments[0].ID)
}

/*
TestReduce_TagsAndFilters verifies the vocabulary load and the synchronous
filter and clear events.
*/
func TestReduce_TagsAndFilters(t *testing.T) {
	state := documents.InitialState()

	state = documents.Reduce(state, documents.Event{
		Kind: documents.EventTagsSucceeded,
		Tags: []tag.Tag{{ID: "tag-1", Name: "angular"}},
	})
	require.Len(t, state.Tags, 1)

	filters := document.SearchFilters{Category: document.CategoryGuide}
	state = documents.Reduce(state, documents.Event{Kind: documents.EventFiltersSet, Filters: filters})
	assert.Equal(t, document.CategoryGuide, state.Filters.Category)

	selected := sampleDocument("doc-1", "Selected")
	state.SelectedDocument = &selected
	state = documents.Reduce(state, documents.Event{Kind: documents.EventSelectionCleared})
	assert.Nil(t, state.SelectedDocument)

	state.Error = "boom"
	state = documents.Reduce(state, documents.Event{Kind: documents.EventErrorCleared})
	assert.Empty(t, state.Error)
}
