// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package documents holds the content state pipeline: the aggregate state
record for the document catalogue, the outcome events that mutate it, a
pure reducer, the process manager performing the gateway calls, and the
derived views the UI renders.

Architecture:

  - State: one immutable record covering lists, detail selection, search,
    ranked collections, comments and tags.
  - Reduce: the only place transitions happen. Pure, clock-free.
  - Manager: intent methods with switch-latest semantics for loads and
    exhaust semantics for mutations.
  - View: memoized projections recomputed only when the state version moves.
*/
package documents

import (
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
)

// State is the immutable document state record.
//
// Version increments on every dispatched event. Memoized views compare it
// to decide whether their cached projection is still valid.
type State struct {
	Documents        []document.Document
	SelectedDocument *document.Document
	SearchResults    *document.SearchResult
	PopularDocuments []document.Document
	RecentDocuments  []document.Document
	UserDocuments    []document.Document

	// Comments maps a document id to its loaded comment thread.
	Comments map[string][]document.Comment

	Tags    []tag.Tag
	Filters document.SearchFilters

	SearchQuery     string
	LastSearchQuery string

	Loading bool

	// Error is the last failure message, "" when none.
	Error string

	Version uint64
}

// InitialState is the process-start state: empty catalogue, idle, no error.
func InitialState() State {
	return State{Comments: map[string][]document.Comment{}}
}

// EventKind discriminates document events.
type EventKind int

const (
	EventListRequested EventKind = iota
	EventListSucceeded
	EventListFailed
	EventDetailRequested
	EventDetailSucceeded
	EventDetailFailed
	EventCreateRequested
	EventCreateSucceeded
	EventCreateFailed
	EventUpdateRequested
	EventUpdateSucceeded
	EventUpdateFailed
	EventDeleteRequested
	EventDeleteSucceeded
	EventDeleteFailed
	EventSearchRequested
	EventSearchSucceeded
	EventSearchFailed
	EventRateRequested
	EventRateSucceeded
	EventRateFailed
	EventCommentsRequested
	EventCommentsSucceeded
	EventCommentsFailed
	EventCommentAddRequested
	EventCommentAddSucceeded
	EventCommentAddFailed
	EventPopularRequested
	EventPopularSucceeded
	EventPopularFailed
	EventRecentRequested
	EventRecentSucceeded
	EventRecentFailed
	EventUserDocsRequested
	EventUserDocsSucceeded
	EventUserDocsFailed
	EventTagsRequested
	EventTagsSucceeded
	EventTagsFailed
	EventFiltersSet
	EventSelectionCleared
	EventSearchCleared
	EventErrorCleared
)

// Event is one intent or outcome in the document pipeline. Only the fields
// relevant to its Kind are set.
type Event struct {
	Kind EventKind

	Result    *document.SearchResult
	Document  *document.Document
	Documents []document.Document
	Comment   *document.Comment
	Comments  []document.Comment
	Tags      []tag.Tag
	Filters   document.SearchFilters

	// ID targets a document: the deleted id, or the owner of a comment
	// thread.
	ID    string
	Query string
	Error string
}

// Reduce folds an event into the state. It is pure and never mutates the
// slices or maps of the input state: collection changes always build fresh
// copies so previous snapshots stay valid.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventListRequested, EventDetailRequested, EventCreateRequested,
		EventUpdateRequested, EventDeleteRequested, EventRateRequested,
		EventCommentsRequested, EventCommentAddRequested,
		EventPopularRequested, EventRecentRequested,
		EventUserDocsRequested, EventTagsRequested:
		state.Loading = true
		state.Error = ""

	case EventListSucceeded:
		state.Documents = event.Result.Documents
		state.Loading = false
		state.Error = ""

	case EventDetailSucceeded:
		state.SelectedDocument = event.Document
		state.Loading = false
		state.Error = ""

	case EventDetailFailed:
		state.SelectedDocument = nil
		state.Loading = false
		state.Error = event.Error

	case EventCreateSucceeded:
		// Newest first, and the fresh document becomes the selection.
		state.Documents = prepend(state.Documents, *event.Document)
		state.SelectedDocument = event.Document
		state.Loading = false
		state.Error = ""

	case EventUpdateSucceeded, EventRateSucceeded:
		state.Documents = replaceByID(state.Documents, *event.Document)
		if state.SelectedDocument != nil && state.SelectedDocument.ID == event.Document.ID {
			state.SelectedDocument = event.Document
		}
		state.Loading = false
		state.Error = ""

	case EventDeleteSucceeded:
		state.Documents = removeByID(state.Documents, event.ID)
		if state.SelectedDocument != nil && state.SelectedDocument.ID == event.ID {
			state.SelectedDocument = nil
		}
		state.Loading = false
		state.Error = ""

	case EventSearchRequested:
		state.Loading = true
		state.Error = ""
		state.SearchQuery = event.Query

	case EventSearchSucceeded:
		state.SearchResults = event.Result
		state.LastSearchQuery = event.Query
		state.Loading = false
		state.Error = ""

	case EventCommentsSucceeded:
		state.Comments = withComments(state.Comments, event.ID, event.Comments)
		state.Loading = false
		state.Error = ""

	case EventCommentAddSucceeded:
		thread := append(append([]document.Comment(nil), state.Comments[event.ID]...), *event.Comment)
		state.Comments = withComments(state.Comments, event.ID, thread)
		state.Loading = false
		state.Error = ""

	case EventPopularSucceeded:
		state.PopularDocuments = event.Documents
		state.Loading = false
		state.Error = ""

	case EventRecentSucceeded:
		state.RecentDocuments = event.Documents
		state.Loading = false
		state.Error = ""

	case EventUserDocsSucceeded:
		state.UserDocuments = event.Documents
		state.Loading = false
		state.Error = ""

	case EventTagsSucceeded:
		state.Tags = event.Tags
		state.Loading = false
		state.Error = ""

	case EventListFailed, EventCreateFailed, EventUpdateFailed,
		EventDeleteFailed, EventSearchFailed, EventRateFailed,
		EventCommentsFailed, EventCommentAddFailed, EventPopularFailed,
		EventRecentFailed, EventUserDocsFailed, EventTagsFailed:
		state.Loading = false
		state.Error = event.Error

	case EventFiltersSet:
		state.Filters = event.Filters

	case EventSelectionCleared:
		state.SelectedDocument = nil

	case EventSearchCleared:
		state.SearchResults = nil
		state.SearchQuery = ""
		state.LastSearchQuery = ""

	case EventErrorCleared:
		state.Error = ""
	}

	return state
}

// ── Collection helpers ──

func prepend(documents []document.Document, head document.Document) []document.Document {
	next := make([]document.Document, 0, len(documents)+1)
	next = append(next, head)
	return append(next, documents...)
}

func replaceByID(documents []document.Document, replacement document.Document) []document.Document {
	next := make([]document.Document, len(documents))
	for i, doc := range documents {
		if doc.ID == replacement.ID {
			next[i] = replacement
		} else {
			next[i] = doc
		}
	}
	return next
}

func removeByID(documents []document.Document, id string) []document.Document {
	next := make([]document.Document, 0, len(documents))
	for _, doc := range documents {
		if doc.ID != id {
			next = append(next, doc)
		}
	}
	return next
}

func withComments(comments map[string][]document.Comment, documentID string, thread []document.Comment) map[string][]document.Comment {
	next := make(map[string][]document.Comment, len(comments)+1)
	for id, existing := range comments {
		next[id] = existing
	}
	next[documentID] = thread
	return next
}
