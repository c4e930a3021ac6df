// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package mockapi

import (
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/tag"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/sec"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
	"github.com/NguyenDinhVu2003/FileManageSystem/pkg/pointer"
)

// FixturePassword is the shared password of every seeded account.
const FixturePassword = "password123"

const fixtureAvatar = "https://via.placeholder.com/150"

func fixtureDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// seedUsers returns the three seeded accounts and their password hashes
// keyed by user ID.
func seedUsers() ([]users.User, map[string]string) {
	seeded := fixtureDate(2024, time.January, 1)

	accounts := []users.User{
		{
			ID:         "1",
			Email:      "admin@company.com",
			FirstName:  "Admin",
			LastName:   "User",
			Avatar:     pointer.To(fixtureAvatar),
			Role:       sec.RoleAdmin,
			Department: "IT",
			CreatedAt:  seeded,
			UpdatedAt:  seeded,
			IsActive:   true,
		},
		{
			ID:         "2",
			Email:      "manager@company.com",
			FirstName:  "Manager",
			LastName:   "User",
			Avatar:     pointer.To(fixtureAvatar),
			Role:       sec.RoleManager,
			Department: "Product",
			CreatedAt:  seeded,
			UpdatedAt:  seeded,
			IsActive:   true,
		},
		{
			ID:         "3",
			Email:      "user@company.com",
			FirstName:  "Regular",
			LastName:   "User",
			Role:       sec.RoleUser,
			Department: "Development",
			CreatedAt:  seeded,
			UpdatedAt:  seeded,
			IsActive:   true,
		},
	}

	hash := sec.MustHashPassword(FixturePassword)
	passwords := make(map[string]string, len(accounts))
	for _, account := range accounts {
		passwords[account.ID] = hash
	}

	return accounts, passwords
}

func seedDocuments() []document.Document {
	return []document.Document{
		{
			ID:          "1",
			Title:       "Angular Best Practices Guide",
			Description: "Comprehensive guide for Angular development best practices",
			Content:     pointer.To("This is a detailed guide about Angular best practices..."),
			Summary:     pointer.To("Key practices for developing scalable Angular applications"),
			Tags:        []string{"angular", "best-practices", "frontend", "development"},
			Category:    document.CategoryGuide,
			Privacy:     document.PrivacyPublic,
			AuthorID:    "1",
			Author: document.AuthorRef{
				ID:        "1",
				FirstName: "Admin",
				LastName:  "User",
				Avatar:    pointer.To(fixtureAvatar),
			},
			Rating: document.Rating{
				Average:      4.5,
				Count:        25,
				Distribution: map[int]int{1: 1, 2: 2, 3: 3, 4: 8, 5: 11},
			},
			DownloadCount: 150,
			ViewCount:     300,
			CreatedAt:     fixtureDate(2024, time.January, 15),
			UpdatedAt:     fixtureDate(2024, time.January, 20),
			IsActive:      true,
			FileURL:       pointer.To("/assets/docs/angular-best-practices.pdf"),
			FileName:      pointer.To("angular-best-practices.pdf"),
			FileSize:      pointer.To(int64(2048000)),
			FileType:      pointer.To("application/pdf"),
		},
		{
			ID:          "2",
			Title:       "React vs Angular Comparison",
			Description: "Detailed comparison between React and Angular frameworks",
			Content:     pointer.To("This document compares React and Angular..."),
			Summary:     pointer.To("Comprehensive comparison of two popular frontend frameworks"),
			Tags:        []string{"react", "angular", "comparison", "frontend"},
			Category:    document.CategoryCaseStudy,
			Privacy:     document.PrivacyPublic,
			AuthorID:    "2",
			Author: document.AuthorRef{
				ID:        "2",
				FirstName: "Manager",
				LastName:  "User",
				Avatar:    pointer.To(fixtureAvatar),
			},
			Rating: document.Rating{
				Average:      4.2,
				Count:        18,
				Distribution: map[int]int{1: 0, 2: 1, 3: 4, 4: 8, 5: 5},
			},
			DownloadCount: 89,
			ViewCount:     200,
			CreatedAt:     fixtureDate(2024, time.February, 1),
			UpdatedAt:     fixtureDate(2024, time.February, 1),
			IsActive:      true,
			FileURL:       pointer.To("/assets/docs/react-vs-angular.pdf"),
			FileName:      pointer.To("react-vs-angular.pdf"),
			FileSize:      pointer.To(int64(1536000)),
			FileType:      pointer.To("application/pdf"),
		},
	}
}

func seedTags() []tag.Tag {
	seeded := fixtureDate(2024, time.January, 1)

	return []tag.Tag{
		{ID: "1", Name: "angular", UsageCount: 45, CreatedAt: seeded},
		{ID: "2", Name: "react", UsageCount: 32, CreatedAt: seeded},
		{ID: "3", Name: "typescript", UsageCount: 28, CreatedAt: seeded},
		{ID: "4", Name: "best-practices", UsageCount: 25, CreatedAt: seeded},
		{ID: "5", Name: "frontend", UsageCount: 40, CreatedAt: seeded},
		{ID: "6", Name: "development", UsageCount: 35, CreatedAt: seeded},
		{ID: "7", Name: "testing", UsageCount: 22, CreatedAt: seeded},
		{ID: "8", Name: "performance", UsageCount: 18, CreatedAt: seeded},
	}
}
