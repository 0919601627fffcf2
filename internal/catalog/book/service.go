// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/taibuivan/tsundoku/internal/catalog/progress"
	"github.com/taibuivan/tsundoku/internal/catalog/review"
	"github.com/taibuivan/tsundoku/internal/catalog/shelf"
	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/visibility"
	"github.com/taibuivan/tsundoku/pkg/textnorm"
	"github.com/taibuivan/tsundoku/pkg/uuidv7"
)

// ShelfSource resolves shelves for assignment checks. Satisfied by the
// shelf storage layer.
type ShelfSource interface {
	FindByID(context context.Context, id string) (*shelf.Shelf, error)
}

// ReviewFinder resolves the review attached to a book. Satisfied by the
// review storage layer.
type ReviewFinder interface {
	FindByBookID(context context.Context, bookID string) (*review.Review, error)
}

// ProgressFinder resolves the reading progress attached to a book.
// Satisfied by the progress storage layer.
type ProgressFinder interface {
	FindByBookID(context context.Context, bookID string) (*progress.Progress, error)
}

// ScopeSource builds the viewer's visibility scope. Satisfied by the follow
// service.
type ScopeSource interface {
	Scope(context context.Context, viewerID string) (visibility.Scope, error)
}

// Service implements book catalog use cases.
type Service struct {
	repository      Repository
	shelves         ShelfSource
	reviews         ReviewFinder
	progressRecords ProgressFinder
	scopes          ScopeSource
}

// NewService creates a book service.
func NewService(
	repository Repository,
	shelves ShelfSource,
	reviews ReviewFinder,
	progressRecords ProgressFinder,
	scopes ScopeSource,
) *Service {
	return &Service{
		repository:      repository,
		shelves:         shelves,
		reviews:         reviews,
		progressRecords: progressRecords,
		scopes:          scopes,
	}
}

// Input carries the writable book fields.
type Input struct {
	ShelfID     *string
	ISBN        string
	Title       string
	Author      string
	TotalPages  *int
	ReleaseYear *int
	ImageURL    string
}

/*
Create adds a book to the actor's catalog.

Description: A shelf assignment must point at one of the actor's own
shelves. Foreign shelves read as missing.

Parameters:
  - context: context.Context
  - actorID: string
  - input: Input

Returns:
  - *Book: The stored book, hydrated
  - error: apperr.NotFound for a missing or foreign shelf
*/
func (s *Service) Create(context context.Context, actorID string, input Input) (*Book, error) {
	if err := s.checkShelf(context, actorID, input.ShelfID); err != nil {
		return nil, err
	}

	record := &Book{
		ID:          uuidv7.New(),
		UserID:      actorID,
		ShelfID:     input.ShelfID,
		ISBN:        input.ISBN,
		Title:       input.Title,
		Author:      input.Author,
		TotalPages:  input.TotalPages,
		ReleaseYear: input.ReleaseYear,
		ImageURL:    input.ImageURL,
	}
	if err := s.repository.Create(context, record); err != nil {
		return nil, err
	}
	return s.repository.FindByID(context, record.ID)
}

/*
Get retrieves one book with its attachments, reduced for the viewer.

Description: Base book fields are readable by any signed-in user. The
attached review and reading progress only appear for the owner or, when
shared, for everyone else.

Parameters:
  - context: context.Context
  - viewerID: string
  - id: string

Returns:
  - *Detail: The redacted detail view
  - error: apperr.NotFound when the book is missing
*/
func (s *Service) Get(context context.Context, viewerID, id string) (*Detail, error) {
	record, err := s.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Book: *record}

	detail.Review, err = attachment(s.reviews.FindByBookID(context, id))
	if err != nil {
		return nil, err
	}
	detail.ReadingProgress, err = attachment(s.progressRecords.FindByBookID(context, id))
	if err != nil {
		return nil, err
	}

	return Redact(detail, viewerID), nil
}

/*
Update rewrites an owned book.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string
  - input: Input

Returns:
  - *Book: The updated book
  - error: apperr.NotFound when missing, foreign, or assigning a foreign shelf
*/
func (s *Service) Update(context context.Context, actorID, id string, input Input) (*Book, error) {
	record, err := s.findOwned(context, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkShelf(context, actorID, input.ShelfID); err != nil {
		return nil, err
	}

	record.ShelfID = input.ShelfID
	record.ISBN = input.ISBN
	record.Title = input.Title
	record.Author = input.Author
	record.TotalPages = input.TotalPages
	record.ReleaseYear = input.ReleaseYear
	record.ImageURL = input.ImageURL

	if err := s.repository.Update(context, record); err != nil {
		return nil, err
	}
	return s.repository.FindByID(context, record.ID)
}

/*
Delete removes an owned book along with its review, progress and images.

Parameters:
  - context: context.Context
  - actorID: string
  - id: string

Returns:
  - error: apperr.NotFound when missing or foreign
*/
func (s *Service) Delete(context context.Context, actorID, id string) error {
	record, err := s.findOwned(context, actorID, id)
	if err != nil {
		return err
	}
	return s.repository.Delete(context, record.ID)
}

/*
List returns a catalog listing.

Description: Without a username filter the viewer's own books come back.
With a filter the named user's books come back; base fields are public so
no reduction applies.

Parameters:
  - context: context.Context
  - viewerID: string
  - username: string (empty for the viewer's own catalog)

Returns:
  - []Book: Newest-first
  - error: Storage failures
*/
func (s *Service) List(context context.Context, viewerID, username string) ([]Book, error) {
	var records []Book
	var err error

	if username != "" {
		records, err = s.repository.ListByOwnerUsername(context, username)
	} else {
		records, err = s.repository.ListByOwner(context, viewerID)
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Book{}
	}
	return records, nil
}

/*
SearchLocal matches a query against the viewer's visible catalog.

Description: The visible catalog is the viewer's own books plus followed
owners' books carrying a shared review or progress record. Matching is a
case- and accent-insensitive substring test over ISBN, title, author and
release year.

Parameters:
  - context: context.Context
  - viewerID: string
  - query: string

Returns:
  - []Book: Matching books, newest-first
  - error: Storage failures
*/
func (s *Service) SearchLocal(context context.Context, viewerID, query string) ([]Book, error) {
	scope, err := s.scopes.Scope(context, viewerID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repository.ListVisibleCatalog(context, viewerID, scope.Followed())
	if err != nil {
		return nil, err
	}

	needle := textnorm.Fold(query)
	matches := []Book{}
	for _, record := range candidates {
		if needle == "" || matchesQuery(&record, needle) {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

// matchesQuery tests one book against an already-folded query string.
func matchesQuery(record *Book, needle string) bool {
	haystacks := []string{
		textnorm.Fold(record.ISBN),
		textnorm.Fold(record.Title),
		textnorm.Fold(record.Author),
	}
	if record.ReleaseYear != nil {
		haystacks = append(haystacks, strconv.Itoa(*record.ReleaseYear))
	}

	for _, haystack := range haystacks {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func (s *Service) findOwned(context context.Context, actorID, id string) (*Book, error) {
	record, err := s.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != actorID {
		return nil, apperr.NotFound("Book")
	}
	return record, nil
}

// checkShelf verifies a shelf assignment targets the actor's own shelf.
func (s *Service) checkShelf(context context.Context, actorID string, shelfID *string) error {
	if shelfID == nil {
		return nil
	}

	assigned, err := s.shelves.FindByID(context, *shelfID)
	if err != nil {
		return err
	}
	if assigned.UserID != actorID {
		return apperr.NotFound("Shelf")
	}
	return nil
}

// attachment normalizes a by-book lookup: a missing attachment is nil, not
// an error.
func attachment[T any](record *T, err error) (*T, error) {
	if err == nil {
		return record, nil
	}
	if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusNotFound {
		return nil, nil
	}
	return nil, err
}
