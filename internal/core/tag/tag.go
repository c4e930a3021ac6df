// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

// Package tag defines the labelling entities used to categorise documents.
package tag

import "time"

// Tag represents a reusable label applied to documents.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       *string   `json:"color,omitempty"`
	Description *string   `json:"description,omitempty"`
	UsageCount  int       `json:"usageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WithCount pairs a tag name with how many loaded documents carry it.
// It backs the tag-cloud projection on the client.
type WithCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
