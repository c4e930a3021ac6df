// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package documents

import (
	"sort"
	"sync"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/observable"
)

// ── 1. Plain selectors ──
//
// Pure functions over [State]. They exist so view code never reaches into
// the record's fields directly.

// ByID returns the loaded document with the given id, nil when absent.
func ByID(state State, id string) *document.Document {
	for i := range state.Documents {
		if state.Documents[i].ID == id {
			return &state.Documents[i]
		}
	}
	return nil
}

// ByCategory returns the loaded documents of one category.
func ByCategory(state State, category document.Category) []document.Document {
	var matched []document.Document
	for _, doc := range state.Documents {
		if doc.Category == category {
			matched = append(matched, doc)
		}
	}
	return matched
}

// ByAuthor returns the loaded documents written by one author.
func ByAuthor(state State, authorID string) []document.Document {
	var matched []document.Document
	for _, doc := range state.Documents {
		if doc.AuthorID == authorID {
			matched = append(matched, doc)
		}
	}
	return matched
}

// WithTag returns the loaded documents carrying a tag.
func WithTag(state State, name string) []document.Document {
	var matched []document.Document
	for _, doc := range state.Documents {
		for _, t := range doc.Tags {
			if t == name {
				matched = append(matched, doc)
				break
			}
		}
	}
	return matched
}

// CommentsFor returns the loaded comment thread of a document, empty when
// the thread has not been loaded.
func CommentsFor(state State, documentID string) []document.Comment {
	return state.Comments[documentID]
}

// AllTagNames returns every distinct tag across the loaded documents,
// sorted alphabetically.
func AllTagNames(state State) []string {
	seen := map[string]bool{}
	var names []string
	for _, doc := range state.Documents {
		for _, t := range doc.Tags {
			if !seen[t] {
				seen[t] = true
				names = append(names, t)
			}
		}
	}
	sort.Strings(names)
	return names
}

// SearchView is the combined search projection the results page renders.
type SearchView struct {
	Results   *document.SearchResult
	Query     string
	LastQuery string

	// HasResults is true when a completed search returned at least one hit.
	HasResults bool

	// HasSearched is true once any search has completed, which is what
	// distinguishes "no results" from "not searched yet".
	HasSearched bool
}

// Search derives the combined search projection.
func Search(state State) SearchView {
	return SearchView{
		Results:     state.SearchResults,
		Query:       state.SearchQuery,
		LastQuery:   state.LastSearchQuery,
		HasResults:  state.SearchResults != nil && len(state.SearchResults.Documents) > 0,
		HasSearched: state.LastSearchQuery != "",
	}
}

// ── 2. Memoized views ──

// Statistics aggregates the loaded catalogue.
type Statistics struct {
	Total          int                       `json:"total"`
	TotalViews     int64                     `json:"totalViews"`
	TotalDownloads int64                     `json:"totalDownloads"`
	AverageRating  float64                   `json:"averageRating"`
	CategoryCounts map[document.Category]int `json:"categoryCounts"`
}

// memo caches one derived projection for a single state version.
type memo[T any] struct {
	version uint64
	valid   bool
	value   T
}

func (m *memo[T]) get(version uint64, compute func() T) T {
	if m.valid && m.version == version {
		return m.value
	}
	m.value = compute()
	m.version = version
	m.valid = true
	return m.value
}

// View serves the derived projections that are expensive enough to cache.
// Each projection is recomputed at most once per state version; repeated
// reads between dispatches return the cached value.
type View struct {
	state *observable.Value[State]

	mu            sync.Mutex
	topRated      memo[[]document.Document]
	mostViewed    memo[[]document.Document]
	statistics    memo[Statistics]
	tagsWithCount memo[[]tag.WithCount]
}

// NewView builds a view over a manager's state.
func NewView(state *observable.Value[State]) *View {
	return &View{state: state}
}

// TopRated returns the loaded documents ranked by average rating, capped at
// the ranking limit.
func (view *View) TopRated() []document.Document {
	snapshot := view.state.Get()
	view.mu.Lock()
	defer view.mu.Unlock()

	return view.topRated.get(snapshot.Version, func() []document.Document {
		return rank(snapshot.Documents, func(a, b document.Document) bool {
			return a.Rating.Average > b.Rating.Average
		})
	})
}

// MostViewed returns the loaded documents ranked by view count, capped at
// the ranking limit.
func (view *View) MostViewed() []document.Document {
	snapshot := view.state.Get()
	view.mu.Lock()
	defer view.mu.Unlock()

	return view.mostViewed.get(snapshot.Version, func() []document.Document {
		return rank(snapshot.Documents, func(a, b document.Document) bool {
			return a.ViewCount > b.ViewCount
		})
	})
}

// Statistics aggregates totals, the mean rating and per-category counts
// over the loaded catalogue.
func (view *View) Statistics() Statistics {
	snapshot := view.state.Get()
	view.mu.Lock()
	defer view.mu.Unlock()

	return view.statistics.get(snapshot.Version, func() Statistics {
		stats := Statistics{
			Total:          len(snapshot.Documents),
			CategoryCounts: map[document.Category]int{},
		}

		var ratingSum float64
		for _, doc := range snapshot.Documents {
			stats.TotalViews += doc.ViewCount
			stats.TotalDownloads += doc.DownloadCount
			ratingSum += doc.Rating.Average
			stats.CategoryCounts[doc.Category]++
		}
		if stats.Total > 0 {
			stats.AverageRating = ratingSum / float64(stats.Total)
		}
		return stats
	})
}

// TagsWithCount returns every tag across the loaded documents with its
// occurrence count, most used first.
func (view *View) TagsWithCount() []tag.WithCount {
	snapshot := view.state.Get()
	view.mu.Lock()
	defer view.mu.Unlock()

	return view.tagsWithCount.get(snapshot.Version, func() []tag.WithCount {
		counts := map[string]int{}
		var order []string
		for _, doc := range snapshot.Documents {
			for _, t := range doc.Tags {
				if counts[t] == 0 {
					order = append(order, t)
				}
				counts[t]++
			}
		}

		cloud := make([]tag.WithCount, 0, len(order))
		for _, name := range order {
			cloud = append(cloud, tag.WithCount{Name: name, Count: counts[name]})
		}
		sort.SliceStable(cloud, func(i, j int) bool {
			return cloud[i].Count > cloud[j].Count
		})
		return cloud
	})
}

// rank returns a sorted copy of documents capped at the ranking limit. The
// input slice is never reordered.
func rank(documents []document.Document, less func(a, b document.Document) bool) []document.Document {
	ranked := append([]document.Document(nil), documents...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})
	if len(ranked) > constants.RankedDocumentsLimit {
		ranked = ranked[:constants.RankedDocumentsLimit]
	}
	return ranked
}
