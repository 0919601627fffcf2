// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/tsundoku/internal/catalog/progress"
	"github.com/taibuivan/tsundoku/internal/catalog/review"
)

// ProgressBooks adapts the book repository to the shape the reading
// progress service expects.
type ProgressBooks struct {
	repository Repository
}

// NewProgressBooks creates the adapter.
func NewProgressBooks(repository Repository) *ProgressBooks {
	return &ProgressBooks{repository: repository}
}

func (b *ProgressBooks) Info(context context.Context, bookID string) (*progress.BookInfo, error) {
	record, err := b.repository.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	return &progress.BookInfo{
		ID:            record.ID,
		OwnerID:       record.UserID,
		OwnerUsername: record.Owner,
		Title:         record.Title,
		TotalPages:    record.TotalPages,
	}, nil
}

// ReviewBooks adapts the book repository to the shape the review service
// expects.
type ReviewBooks struct {
	repository Repository
}

// NewReviewBooks creates the adapter.
func NewReviewBooks(repository Repository) *ReviewBooks {
	return &ReviewBooks{repository: repository}
}

func (b *ReviewBooks) Info(context context.Context, bookID string) (*review.BookInfo, error) {
	record, err := b.repository.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	return &review.BookInfo{
		ID:            record.ID,
		OwnerID:       record.UserID,
		OwnerUsername: record.Owner,
		Title:         record.Title,
	}, nil
}
