// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package documents

import (
	"context"
	"log/slog"
	"sync"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/observable"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
)

// Catalog is the slice of the gateway the manager orchestrates.
type Catalog interface {
	GetDocuments(ctx context.Context, filters document.SearchFilters, page pagination.Request) (*document.SearchResult, error)
	GetDocument(ctx context.Context, id string) (*document.Document, error)
	CreateDocument(ctx context.Context, input document.CreateRequest) (*document.Document, error)
	UpdateDocument(ctx context.Context, id string, input document.UpdateRequest) (*document.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	RateDocument(ctx context.Context, input document.RateRequest) (*document.Document, error)
	GetComments(ctx context.Context, documentID string) ([]document.Comment, error)
	AddComment(ctx context.Context, input document.AddCommentRequest) (*document.Comment, error)
	IncrementView(ctx context.Context, id string) error
	GetTags(ctx context.Context) ([]tag.Tag, error)
}

// Notifier is the slice of the notification center the manager fires.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// defaultRankedLimit matches the derived-query page size when a caller
// passes no limit.
const defaultRankedLimit = 5

// Intent names used by the exhaust guard.
const (
	intentCreate     = "createDocument"
	intentUpdate     = "updateDocument"
	intentDelete     = "deleteDocument"
	intentRate       = "rateDocument"
	intentAddComment = "addComment"
)

// latest implements switch-latest semantics for one load family: starting a
// new load cancels the previous one, and a completed load only publishes
// its outcome when no newer load has started since.
type latest struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (l *latest) begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, l.cancel = context.WithCancel(ctx)
	return ctx, l.gen
}

func (l *latest) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}

// Manager orchestrates document side effects and folds their outcomes into
// the observable state.
//
// Loads use switch-latest semantics: a newer load of the same family
// supersedes an in-flight one, whose result is discarded. Mutations use
// exhaust semantics: a second identical mutation issued while one is in
// flight is dropped, not queued.
type Manager struct {
	catalog  Catalog
	notifier Notifier
	logger   *slog.Logger

	state *observable.Value[State]

	mu       sync.Mutex
	inFlight map[string]bool

	listLoads    latest
	detailLoads  latest
	searchLoads  latest
	commentLoads latest
	popularLoads latest
	recentLoads  latest
	userLoads    latest
	tagLoads     latest
}

// NewManager builds the manager with an empty catalogue state.
func NewManager(catalog Catalog, notifier Notifier, logger *slog.Logger) *Manager {
	return &Manager{
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		state:    observable.New(InitialState()),
		inFlight: make(map[string]bool),
	}
}

// State exposes the document state as an observable.
func (manager *Manager) State() *observable.Value[State] {
	return manager.state
}

// dispatch folds an event through the pure reducer and bumps the version
// that memoized views key on.
func (manager *Manager) dispatch(event Event) {
	manager.state.Update(func(current State) State {
		next := Reduce(current, event)
		next.Version = current.Version + 1
		return next
	})
}

func (manager *Manager) begin(intent string) bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.inFlight[intent] {
		return false
	}
	manager.inFlight[intent] = true
	return true
}

func (manager *Manager) end(intent string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	delete(manager.inFlight, intent)
}

// ── 1. Loads (switch-latest) ──

// LoadDocuments fetches a page of the catalogue.
func (manager *Manager) LoadDocuments(ctx context.Context, filters document.SearchFilters, page pagination.Request) {
	ctx, gen := manager.listLoads.begin(ctx)
	manager.dispatch(Event{Kind: EventListRequested})

	result, err := manager.catalog.GetDocuments(ctx, filters, page)
	if !manager.listLoads.current(gen) {
		return
	}
	if err != nil {
		message := apperr.Message(err)
		manager.dispatch(Event{Kind: EventListFailed, Error: message})
		manager.notifier.Error("Loading Failed", message)
		return
	}

	manager.dispatch(Event{Kind: EventListSucceeded, Result: result})
}

// LoadDocument fetches one document for the detail view and records the
// visit. The view counter update is fire-and-forget: its outcome never
// touches state.
func (manager *Manager) LoadDocument(ctx context.Context, id string) {
	ctx, gen := manager.detailLoads.begin(ctx)
	manager.dispatch(Event{Kind: EventDetailRequested})

	doc, err := manager.catalog.GetDocument(ctx, id)
	if !manager.detailLoads.current(gen) {
		return
	}
	if err != nil {
		manager.dispatch(Event{Kind: EventDetailFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventDetailSucceeded, Document: doc})

	go func() {
		if err := manager.catalog.IncrementView(context.WithoutCancel(ctx), id); err != nil {
			manager.logger.Debug("view count update failed", "document_id", id, "error", err)
		}
	}()
}

// Search runs a query over the catalogue. The query string is recorded in
// state immediately so the UI can echo it while results are in flight.
func (manager *Manager) Search(ctx context.Context, query string, filters document.SearchFilters, page pagination.Request) {
	ctx, gen := manager.searchLoads.begin(ctx)
	manager.dispatch(Event{Kind: EventSearchRequested, Query: query})

	filters.Query = query
	result, err := manager.catalog.GetDocuments(ctx, filters, page)
	if !manager.searchLoads.current(gen) {
		return
	}
	if err != nil {
		message := apperr.Message(err)
		manager.dispatch(Event{Kind: EventSearchFailed, Error: message})
		manager.notifier.Error("Search Failed", message)
		return
	}

	manager.dispatch(Event{Kind: EventSearchSucceeded, Result: result, Query: query})
}

// LoadComments fetches the comment thread of a document.
func (manager *Manager) LoadComments(ctx context.Context, documentID string) {
	ctx, gen := manager.commentLoads.begin(ctx)
	manager.dispatch(Event{Kind: EventCommentsRequested})

	comments, err := manager.catalog.GetComments(ctx, documentID)
	if !manager.commentLoads.current(gen) {
		return
	}
	if err != nil {
		manager.dispatch(Event{Kind: EventCommentsFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventCommentsSucceeded, ID: documentID, Comments: comments})
}

// LoadPopular fetches the highest-rated documents.
func (manager *Manager) LoadPopular(ctx context.Context, limit int) {
	manager.loadRanked(ctx, &manager.popularLoads, rankedQuery("rating", limit),
		EventPopularRequested, EventPopularSucceeded, EventPopularFailed, document.SearchFilters{})
}

// LoadRecent fetches the newest documents.
func (manager *Manager) LoadRecent(ctx context.Context, limit int) {
	manager.loadRanked(ctx, &manager.recentLoads, rankedQuery("createdAt", limit),
		EventRecentRequested, EventRecentSucceeded, EventRecentFailed, document.SearchFilters{})
}

// LoadUserDocuments fetches the newest documents authored by one user.
func (manager *Manager) LoadUserDocuments(ctx context.Context, userID string, limit int) {
	manager.loadRanked(ctx, &manager.userLoads, rankedQuery("createdAt", limit),
		EventUserDocsRequested, EventUserDocsSucceeded, EventUserDocsFailed,
		document.SearchFilters{AuthorID: userID})
}

// LoadTags fetches the tag vocabulary.
func (manager *Manager) LoadTags(ctx context.Context) {
	ctx, gen := manager.tagLoads.begin(ctx)
	manager.dispatch(Event{Kind: EventTagsRequested})

	tags, err := manager.catalog.GetTags(ctx)
	if !manager.tagLoads.current(gen) {
		return
	}
	if err != nil {
		manager.dispatch(Event{Kind: EventTagsFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventTagsSucceeded, Tags: tags})
}

func rankedQuery(sortBy string, limit int) pagination.Request {
	if limit < 1 {
		limit = defaultRankedLimit
	}
	return pagination.Request{Page: 1, Limit: limit, SortBy: sortBy, SortOrder: "desc"}
}

// loadRanked is the shared body of the derived collection loads, which are
// all first-page sorted slices of the catalogue.
func (manager *Manager) loadRanked(ctx context.Context, guard *latest, page pagination.Request, requested, succeeded, failed EventKind, filters document.SearchFilters) {
	ctx, gen := guard.begin(ctx)
	manager.dispatch(Event{Kind: requested})

	result, err := manager.catalog.GetDocuments(ctx, filters, page)
	if !guard.current(gen) {
		return
	}
	if err != nil {
		manager.dispatch(Event{Kind: failed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: succeeded, Documents: result.Documents})
}

// ── 2. Mutations (exhaust) ──

// Create publishes a new document. On success it becomes the selection.
func (manager *Manager) Create(ctx context.Context, input document.CreateRequest) {
	if !manager.begin(intentCreate) {
		return
	}
	defer manager.end(intentCreate)

	manager.dispatch(Event{Kind: EventCreateRequested})

	doc, err := manager.catalog.CreateDocument(ctx, input)
	if err != nil {
		message := apperr.Message(err)
		manager.dispatch(Event{Kind: EventCreateFailed, Error: message})
		manager.notifier.Error("Creation Failed", message)
		return
	}

	manager.dispatch(Event{Kind: EventCreateSucceeded, Document: doc})
	manager.notifier.Success("Success!", "Document created successfully.")
}

// Update applies a partial edit to a document.
func (manager *Manager) Update(ctx context.Context, id string, input document.UpdateRequest) {
	if !manager.begin(intentUpdate) {
		return
	}
	defer manager.end(intentUpdate)

	manager.dispatch(Event{Kind: EventUpdateRequested})

	doc, err := manager.catalog.UpdateDocument(ctx, id, input)
	if err != nil {
		manager.dispatch(Event{Kind: EventUpdateFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventUpdateSucceeded, Document: doc})
	manager.notifier.Success("Success!", "Document updated successfully.")
}

// Delete removes a document from the catalogue.
func (manager *Manager) Delete(ctx context.Context, id string) {
	if !manager.begin(intentDelete) {
		return
	}
	defer manager.end(intentDelete)

	manager.dispatch(Event{Kind: EventDeleteRequested})

	if err := manager.catalog.DeleteDocument(ctx, id); err != nil {
		manager.dispatch(Event{Kind: EventDeleteFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventDeleteSucceeded, ID: id})
	manager.notifier.Success("Success!", "Document deleted successfully.")
}

// Rate submits a star rating and folds the recomputed aggregate back in.
func (manager *Manager) Rate(ctx context.Context, input document.RateRequest) {
	if !manager.begin(intentRate) {
		return
	}
	defer manager.end(intentRate)

	manager.dispatch(Event{Kind: EventRateRequested})

	doc, err := manager.catalog.RateDocument(ctx, input)
	if err != nil {
		manager.dispatch(Event{Kind: EventRateFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventRateSucceeded, Document: doc})
	manager.notifier.Success("Thank you!", "Your rating has been submitted.")
}

// AddComment posts a comment, optionally as a reply.
func (manager *Manager) AddComment(ctx context.Context, input document.AddCommentRequest) {
	if !manager.begin(intentAddComment) {
		return
	}
	defer manager.end(intentAddComment)

	manager.dispatch(Event{Kind: EventCommentAddRequested})

	comment, err := manager.catalog.AddComment(ctx, input)
	if err != nil {
		manager.dispatch(Event{Kind: EventCommentAddFailed, Error: apperr.Message(err)})
		return
	}

	manager.dispatch(Event{Kind: EventCommentAddSucceeded, ID: input.DocumentID, Comment: comment})
	manager.notifier.Success("Success!", "Comment added successfully.")
}

// ── 3. Synchronous Updates ──

// SetFilters records the active search filters without issuing a load.
func (manager *Manager) SetFilters(filters document.SearchFilters) {
	manager.dispatch(Event{Kind: EventFiltersSet, Filters: filters})
}

// ClearSelection drops the detail selection.
func (manager *Manager) ClearSelection() {
	manager.dispatch(Event{Kind: EventSelectionCleared})
}

// ClearSearch resets results and both query fields.
func (manager *Manager) ClearSearch() {
	manager.dispatch(Event{Kind: EventSearchCleared})
}

// ClearError dismisses the last failure message.
func (manager *Manager) ClearError() {
	manager.dispatch(Event{Kind: EventErrorCleared})
}
