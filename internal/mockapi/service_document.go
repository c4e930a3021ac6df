// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi

import (
	"context"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/validate"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pagination"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pointer"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/slice"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/slug"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/uuidv7"
)

// # Search

// matchesFilters reports whether doc survives every active filter.
// Text matching is case- and accent-insensitive.
func matchesFilters(doc document.Document, filters document.SearchFilters) bool {
	if filters.Query != "" {
		query := slug.Fold(filters.Query)
		inTags := slice.Any(doc.Tags, func(t string) bool {
			return strings.Contains(slug.Fold(t), query)
		})
		if !strings.Contains(slug.Fold(doc.Title), query) &&
			!strings.Contains(slug.Fold(doc.Description), query) &&
			!inTags {
			return false
		}
	}

	if len(filters.Tags) > 0 {
		anyMatch := slice.Any(filters.Tags, func(want string) bool {
			return slice.Any(doc.Tags, func(have string) bool { return have == want })
		})
		if !anyMatch {
			return false
		}
	}

	if filters.Category != "" && doc.Category != filters.Category {
		return false
	}
	if filters.Privacy != "" && doc.Privacy != filters.Privacy {
		return false
	}
	if filters.AuthorID != "" && doc.AuthorID != filters.AuthorID {
		return false
	}
	if filters.MinRating > 0 && doc.Rating.Average < filters.MinRating {
		return false
	}
	if filters.DateFrom != nil && doc.CreatedAt.Before(*filters.DateFrom) {
		return false
	}
	if filters.DateTo != nil && doc.CreatedAt.After(*filters.DateTo) {
		return false
	}
	return true
}

// sortDocuments orders matched documents. The default is newest first;
// sortBy supports rating, viewCount, and createdAt with asc/desc order.
func sortDocuments(docs []document.Document, sortBy, sortOrder string) {
	ascending := sortOrder == "asc"

	less := func(a, b document.Document) bool {
		switch sortBy {
		case "rating":
			return a.Rating.Average < b.Rating.Average
		case "viewCount":
			return a.ViewCount < b.ViewCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if ascending {
			return less(docs[i], docs[j])
		}
		return less(docs[j], docs[i])
	})
}

// GetDocuments returns a filtered, sorted page of documents.
func (service *Service) GetDocuments(ctx context.Context, filters document.SearchFilters, page pagination.Request) (*document.SearchResult, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	page = page.Normalize()

	matched := slice.Filter(service.documents, func(doc document.Document) bool {
		return doc.IsActive && matchesFilters(doc, filters)
	})
	sortDocuments(matched, page.SortBy, page.SortOrder)

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return &document.SearchResult{
		Documents:   matched[start:end],
		Total:       total,
		Page:        page.Page,
		Limit:       page.Limit,
		HasNext:     end < total,
		HasPrevious: page.Page > 1,
	}, nil
}

// GetDocument returns a single document with its comment thread attached.
func (service *Service) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	doc, _, err := service.findDocument(id)
	if err != nil {
		return nil, err
	}

	found := *doc
	found.Comments = service.comments[id]
	return &found, nil
}

// findDocument locates a document by ID. Callers must hold the mutex.
func (service *Service) findDocument(id string) (*document.Document, int, error) {
	for index := range service.documents {
		if service.documents[index].ID == id {
			return &service.documents[index], index, nil
		}
	}
	return nil, -1, apperr.NotFound("Document")
}

// # Mutations

// CreateDocument validates and stores a new document authored by the
// acting user, attaching the uploaded file when one is provided.
func (service *Service) CreateDocument(ctx context.Context, input document.CreateRequest) (*document.Document, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("description", input.Description).
		Custom("category", !input.Category.IsValid(), "Unknown document category").
		Custom("privacy", !input.Privacy.IsValid(), "Unknown privacy level")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	author := service.currentUser(ctx)
	now := service.now()

	doc := document.Document{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		Tags:        normalizeTags(input.Tags),
		Category:    input.Category,
		Privacy:     input.Privacy,
		AuthorID:    author.ID,
		Author:      authorRefOf(author),
		Rating:      document.Rating{Distribution: map[int]int{}},
		CreatedAt:   now,
		UpdatedAt:   now,
		IsActive:    true,
	}
	if len(input.FileData) > 0 {
		stored := service.storeFile(input.FileName, input.FileData)
		doc.FileURL = pointer.To(stored.FileURL)
		doc.FileName = pointer.To(stored.FileName)
		doc.FileSize = pointer.To(stored.FileSize)
		doc.FileType = pointer.To(stored.FileType)
		doc.ThumbnailURL = stored.ThumbnailURL
	}

	service.documents = append(service.documents, doc)
	service.bumpTagUsage(doc.Tags)

	return &doc, nil
}

// UpdateDocument applies a partial update; nil fields keep their value.
func (service *Service) UpdateDocument(ctx context.Context, id string, input document.UpdateRequest) (*document.Document, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	doc, _, err := service.findDocument(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		doc.Title = *input.Title
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	if input.Content != nil {
		doc.Content = input.Content
	}
	if input.Tags != nil {
		doc.Tags = normalizeTags(*input.Tags)
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, apperr.Validation("Unknown document category")
		}
		doc.Category = *input.Category
	}
	if input.Privacy != nil {
		if !input.Privacy.IsValid() {
			return nil, apperr.Validation("Unknown privacy level")
		}
		doc.Privacy = *input.Privacy
	}
	doc.UpdatedAt = service.now()

	updated := *doc
	return &updated, nil
}

// DeleteDocument removes a document and its comment thread.
func (service *Service) DeleteDocument(ctx context.Context, id string) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	_, index, err := service.findDocument(id)
	if err != nil {
		return err
	}

	service.documents = append(service.documents[:index], service.documents[index+1:]...)
	delete(service.comments, id)
	return nil
}

// RateDocument records a 1-5 star vote and recomputes the aggregate.
func (service *Service) RateDocument(ctx context.Context, input document.RateRequest) (*document.Document, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Range("rating", input.Rating, 1, 5)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	doc, _, err := service.findDocument(input.DocumentID)
	if err != nil {
		return nil, err
	}

	if doc.Rating.Distribution == nil {
		doc.Rating.Distribution = map[int]int{}
	}
	doc.Rating.Distribution[input.Rating]++
	doc.Rating.Count++

	var sum int
	for star, votes := range doc.Rating.Distribution {
		sum += star * votes
	}
	doc.Rating.Average = float64(sum) / float64(doc.Rating.Count)

	rated := *doc
	return &rated, nil
}

// # Comments

// GetComments returns the comment thread of a document, newest last.
func (service *Service) GetComments(ctx context.Context, documentID string) ([]document.Comment, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if _, _, err := service.findDocument(documentID); err != nil {
		return nil, err
	}
	return append([]document.Comment(nil), service.comments[documentID]...), nil
}

// AddComment appends a comment, nesting it under ParentID when given.
func (service *Service) AddComment(ctx context.Context, input document.AddCommentRequest) (*document.Comment, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content).MaxLen("content", input.Content, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if _, _, err := service.findDocument(input.DocumentID); err != nil {
		return nil, err
	}

	author := service.currentUser(ctx)
	now := service.now()

	comment := document.Comment{
		ID:        uuidv7.New(),
		Content:   input.Content,
		AuthorID:  author.ID,
		Author:    authorRefOf(author),
		CreatedAt: now,
		UpdatedAt: now,
		ParentID:  input.ParentID,
	}

	thread := service.comments[input.DocumentID]
	if input.ParentID != nil {
		for index := range thread {
			if thread[index].ID == *input.ParentID {
				thread[index].Replies = append(thread[index].Replies, comment)
				service.comments[input.DocumentID] = thread
				return &comment, nil
			}
		}
		return nil, apperr.NotFound("Comment")
	}

	service.comments[input.DocumentID] = append(thread, comment)
	return &comment, nil
}

// # Counters

// IncrementView bumps the view counter. Missing documents are ignored so the
// fire-and-forget client path never surfaces an error.
func (service *Service) IncrementView(ctx context.Context, id string) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if doc, _, err := service.findDocument(id); err == nil {
		doc.ViewCount++
	}
	return nil
}

// IncrementDownload bumps the download counter.
func (service *Service) IncrementDownload(ctx context.Context, id string) error {
	if err := service.simulate(ctx); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if doc, _, err := service.findDocument(id); err == nil {
		doc.DownloadCount++
	}
	return nil
}

// # Files

// UploadFile registers an uploaded file and returns its descriptor.
func (service *Service) UploadFile(ctx context.Context, fileName string, data []byte) (*document.UploadResult, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		Required("fileName", fileName).
		Custom("file", len(data) == 0, "File content is empty")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	stored := service.storeFile(fileName, data)
	return &stored, nil
}

// storeFile records file metadata under a fresh ID. Callers must hold the
// mutex.
func (service *Service) storeFile(fileName string, data []byte) document.UploadResult {
	fileID := "file-" + uuidv7.New()

	fileType := mime.TypeByExtension(filepath.Ext(fileName))
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	result := document.UploadResult{
		FileID:   fileID,
		FileName: fileName,
		FileURL:  "/api/files/" + fileID,
		FileSize: int64(len(data)),
		FileType: fileType,
	}
	if strings.HasPrefix(fileType, "image/") {
		result.ThumbnailURL = pointer.To(result.FileURL + "/thumbnail")
	}

	service.files[fileID] = result
	return result
}

// # Tags

// GetTags returns the tag catalogue.
func (service *Service) GetTags(ctx context.Context) ([]tag.Tag, error) {
	if err := service.simulate(ctx); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	return append([]tag.Tag(nil), service.tags...), nil
}

// normalizeTags slugifies tag names and drops empties and duplicates, so
// "Best Practices" and "best-practices" land on the same tag entry.
func normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	normalized := []string{}
	for _, name := range names {
		tagName := slug.From(name)
		if tagName == "" || seen[tagName] {
			continue
		}
		seen[tagName] = true
		normalized = append(normalized, tagName)
	}
	return normalized
}

// bumpTagUsage increments usage counters for known tags and registers new
// ones. Callers must hold the mutex.
func (service *Service) bumpTagUsage(names []string) {
	for _, name := range names {
		known := false
		for index := range service.tags {
			if service.tags[index].Name == name {
				service.tags[index].UsageCount++
				known = true
				break
			}
		}
		if !known {
			service.tags = append(service.tags, tag.Tag{
				ID:         uuidv7.New(),
				Name:       name,
				UsageCount: 1,
				CreatedAt:  service.now(),
			})
		}
	}
}
