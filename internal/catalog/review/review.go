// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages book reviews and the comments under them.

A book carries at most one review, written by the book's owner. The review's
shared flag controls who beyond the owner can read it. Comments have no flag
of their own: a comment is exactly as visible as the review it replies to.

Comment authorship and thread ownership are different concepts. The author
is whoever wrote the comment; the owner of the thread is the owner of the
reviewed book. A deleted author leaves their comments behind with the author
reference cleared.

# Architecture

  - Entities: Review (1:1 with a book), Comment (many per review).
  - Ownership: Transitive through the book for reviews, and through the
    review's book for comment thread access.
*/
package review

import (
	"context"
	"time"
)

// Field identifiers for validation messages.
const (
	FieldBookID = "book_id"
	FieldText   = "text"
)

// # Domain Entities

// BookRef is the compact book summary embedded in review listings.
type BookRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Owner  string `json:"owner"`
}

// Review is one reader's writeup of one book.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Text      string    `json:"text"`
	Shared    bool      `json:"shared"`
	Book      *BookRef  `json:"book,omitempty"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Hydrated from the book join, never serialized.
	OwnerID       string `json:"-"`
	OwnerUsername string `json:"-"`
	BookTitle     string `json:"-"`
}

// Comment is one reply under a review.
//
// UserID is nil once the authoring account is deleted. The comment itself
// survives.
type Comment struct {
	ID             string    `json:"id"`
	ReviewID       string    `json:"review_id"`
	UserID         *string   `json:"user_id,omitempty"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// # Repository Contracts

// Repository defines the persistence contract for reviews.
type Repository interface {
	/*
		Upsert writes the review for a book, creating or replacing in one
		atomic statement keyed on the book's uniqueness.

		Parameters:
		  - context: context.Context
		  - record: *Review (ID is filled in from the stored row)

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, record *Review) error

	/*
		FindByID retrieves one hydrated review.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Review: With owner and book reference hydrated
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Review, error)

	/*
		FindByBookID retrieves the review attached to a book.

		Parameters:
		  - context: context.Context
		  - bookID: string

		Returns:
		  - *Review: Hydrated review
		  - error: apperr.NotFound or storage failures
	*/
	FindByBookID(context context.Context, bookID string) (*Review, error)

	/*
		Delete removes a review and its comments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) error

	/*
		ListVisible returns the viewer's own reviews plus shared reviews of
		the followed owners, newest-first.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - followedIDs: []string

		Returns:
		  - []Review: Hydrated reviews
		  - error: Storage failures
	*/
	ListVisible(context context.Context, viewerID string, followedIDs []string) ([]Review, error)

	/*
		ListByOwnerUsername returns one user's reviews as seen by a viewer.

		Description: Bypasses the follow graph. Non-owners receive shared
		reviews only.

		Parameters:
		  - context: context.Context
		  - username: string
		  - viewerID: string

		Returns:
		  - []Review: Hydrated reviews
		  - error: Storage failures
	*/
	ListByOwnerUsername(context context.Context, username, viewerID string) ([]Review, error)
}

// CommentRepository defines the persistence contract for comments.
type CommentRepository interface {
	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindCommentByID retrieves one comment with its author username
		hydrated.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated comment
		  - error: apperr.NotFound or storage failures
	*/
	FindCommentByID(context context.Context, id string) (*Comment, error)

	/*
		ListByReviewID returns a review's comments, oldest-first.

		Parameters:
		  - context: context.Context
		  - reviewID: string

		Returns:
		  - []Comment: Hydrated comments
		  - error: Storage failures
	*/
	ListByReviewID(context context.Context, reviewID string) ([]Comment, error)

	/*
		DeleteComment removes one comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Storage failures
	*/
	DeleteComment(context context.Context, id string) error
}

// BookInfo is the slice of book state the write path needs.
type BookInfo struct {
	ID            string
	OwnerID       string
	OwnerUsername string
	Title         string
}

// BookSource resolves book ownership for write validation. Satisfied by the
// book storage layer.
type BookSource interface {
	Info(context context.Context, bookID string) (*BookInfo, error)
}
