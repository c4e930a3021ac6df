// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package document defines the core domain entities of the knowledge library.

It models shared knowledge assets (tutorials, guides, templates, recordings)
including their attached files, community ratings, threaded comments, and
usage metrics.

Core Responsibility:

  - Catalogue: Defines categories (Tutorial, Guide) and privacy levels (Private, Group, Public).
  - Community: Manages star ratings with per-star distribution and threaded comments.
  - Analytics: Tracks download and view counters used by ranking projections.

This package acts as the source of truth for all content-related data models.
All JSON tags follow the camelCase wire convention of the knowledge API.
*/
package document

import "time"

// # Domain Enums

// Category classifies the kind of knowledge asset a document holds.
type Category string

const (
	CategoryTutorial     Category = "tutorial"
	CategoryGuide        Category = "guide"
	CategoryReference    Category = "reference"
	CategoryBestPractice Category = "best_practice"
	CategoryCaseStudy    Category = "case_study"
	CategoryTemplate     Category = "template"
	CategoryPresentation Category = "presentation"
	CategoryVideo        Category = "video"
	CategoryOther        Category = "other"
)

// IsValid reports whether c is a recognised [Category] value.
func (c Category) IsValid() bool {
	switch c {
	case
		CategoryTutorial,
		CategoryGuide,
		CategoryReference,
		CategoryBestPractice,
		CategoryCaseStudy,
		CategoryTemplate,
		CategoryPresentation,
		CategoryVideo,
		CategoryOther:
		return true
	}
	return false
}

// Privacy controls who can discover and read a document.
type Privacy string

const (
	// PrivacyPrivate restricts the document to its author.
	PrivacyPrivate Privacy = "private"

	// PrivacyGroup shares the document within the author's department.
	PrivacyGroup Privacy = "group"

	// PrivacyPublic makes the document visible to every signed-in user.
	PrivacyPublic Privacy = "public"
)

// IsValid reports whether p is a recognised [Privacy] value.
func (p Privacy) IsValid() bool {
	switch p {
	case PrivacyPrivate, PrivacyGroup, PrivacyPublic:
		return true
	}
	return false
}

// # Core Entities

// AuthorRef is the embedded author summary attached to documents and comments.
type AuthorRef struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar,omitempty"`
}

// Rating aggregates community star ratings for a document.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`

	// Distribution maps a star value (1-5) to the number of votes it received.
	Distribution map[int]int `json:"distribution"`
}

// Comment is a discussion entry on a document. Replies nest one level deep
// through ParentID.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	Author    AuthorRef `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Replies   []Comment `json:"replies,omitempty"`
	ParentID  *string   `json:"parentId,omitempty"`
}

// Document is the central aggregate of the knowledge library.
type Document struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     *string `json:"content,omitempty"`
	Summary     *string `json:"summary,omitempty"`

	// # File Attachment
	FileURL      *string `json:"fileUrl,omitempty"`
	FileName     *string `json:"fileName,omitempty"`
	FileSize     *int64  `json:"fileSize,omitempty"`
	FileType     *string `json:"fileType,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`

	Tags     []string `json:"tags"`
	Category Category `json:"category"`
	Privacy  Privacy  `json:"privacy"`

	AuthorID string    `json:"authorId"`
	Author   AuthorRef `json:"author"`

	Rating Rating `json:"rating"`

	// # Usage Metrics
	DownloadCount int64 `json:"downloadCount"`
	ViewCount     int64 `json:"viewCount"`

	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsActive    bool      `json:"isActive"`
	Comments    []Comment `json:"comments,omitempty"`
	AIGenerated bool      `json:"aiGenerated,omitempty"`
}

// # Requests

// CreateRequest carries the fields needed to publish a new document.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     *string  `json:"content,omitempty"`
	Tags        []string `json:"tags"`
	Category    Category `json:"category"`
	Privacy     Privacy  `json:"privacy"`

	// FileName and FileData describe an optional attachment uploaded with
	// the document.
	FileName string `json:"fileName,omitempty"`
	FileData []byte `json:"fileData,omitempty"`
}

// UpdateRequest carries a partial update. Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Privacy     *Privacy  `json:"privacy,omitempty"`
}

// SearchFilters narrows a document search. Zero-value fields are ignored.
type SearchFilters struct {
	Query     string     `json:"query,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Category  Category   `json:"category,omitempty"`
	Privacy   Privacy    `json:"privacy,omitempty"`
	AuthorID  string     `json:"authorId,omitempty"`
	DateFrom  *time.Time `json:"dateFrom,omitempty"`
	DateTo    *time.Time `json:"dateTo,omitempty"`
	MinRating float64    `json:"minRating,omitempty"`
}

// SearchResult is a page of documents matched by a search.
type SearchResult struct {
	Documents   []Document `json:"documents"`
	Total       int        `json:"total"`
	Page        int        `json:"page"`
	Limit       int        `json:"limit"`
	HasNext     bool       `json:"hasNext"`
	HasPrevious bool       `json:"hasPrevious"`
}

// RateRequest records a star rating (1-5) for a document.
type RateRequest struct {
	DocumentID string `json:"documentId"`
	Rating     int    `json:"rating"`
}

// AddCommentRequest attaches a comment, optionally as a reply to ParentID.
type AddCommentRequest struct {
	DocumentID string  `json:"documentId"`
	Content    string  `json:"content"`
	ParentID   *string `json:"parentId,omitempty"`
}

// UploadResult describes a stored file attachment.
type UploadResult struct {
	FileID       string  `json:"fileId"`
	FileName     string  `json:"fileName"`
	FileURL      string  `json:"fileUrl"`
	FileSize     int64   `json:"fileSize"`
	FileType     string  `json:"fileType"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}
