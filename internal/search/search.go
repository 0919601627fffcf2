// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search composes book search across the local catalog and the Open
Library remote catalog.

The local half runs against the viewer's visible books and always answers.
The remote half is best-effort with a hard deadline: when Open Library is
slow or down the response simply carries no external hits. Results from the
two halves are tagged, never merged or deduplicated, so the same edition
can legitimately appear twice.
*/
package search

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tsundoku/internal/catalog/book"
	"github.com/taibuivan/tsundoku/internal/platform/constants"
	"github.com/taibuivan/tsundoku/internal/search/openlibrary"
	"github.com/taibuivan/tsundoku/pkg/slice"
)

// Result type tags.
const (
	TypeLocal    = "local"
	TypeExternal = "external"
)

const remoteLimit = 20

// Result is one search hit from either catalog.
type Result struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	ReleaseYear *int   `json:"release_year,omitempty"`
	Owner       string `json:"owner,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// LocalSource searches the viewer's visible catalog. Satisfied by the book
// service.
type LocalSource interface {
	SearchLocal(context context.Context, viewerID, query string) ([]book.Book, error)
}

// RemoteSource searches an external catalog. Satisfied by the Open Library
// client.
type RemoteSource interface {
	Search(context context.Context, query string, limit int) ([]openlibrary.Result, error)
}

// Service implements the combined search.
type Service struct {
	local  LocalSource
	remote RemoteSource
	logger *slog.Logger
}

// NewService creates a search service.
func NewService(local LocalSource, remote RemoteSource, logger *slog.Logger) *Service {
	return &Service{local: local, remote: remote, logger: logger}
}

/*
Search runs a query against both catalogs.

Description: Local hits come first, then external hits. A remote failure
or timeout is logged and yields an empty external set; it never fails the
request.

Parameters:
  - context: context.Context
  - viewerID: string
  - query: string

Returns:
  - []Result: Tagged hits, local before external
  - error: Local catalog failures only
*/
func (s *Service) Search(context context.Context, viewerID, query string) ([]Result, error) {
	localBooks, err := s.local.SearchLocal(context, viewerID, query)
	if err != nil {
		return nil, err
	}

	results := slice.Map(localBooks, func(record book.Book) Result {
		return Result{
			Type:        TypeLocal,
			ID:          record.ID,
			Title:       record.Title,
			Author:      record.Author,
			ISBN:        record.ISBN,
			ReleaseYear: record.ReleaseYear,
			Owner:       record.Owner,
			ImageURL:    record.ImageURL,
		}
	})
	if results == nil {
		results = []Result{}
	}

	external := slice.Map(s.searchRemote(context, query), func(hit openlibrary.Result) Result {
		return Result{
			Type:        TypeExternal,
			ID:          hit.ID,
			Title:       hit.Title,
			Author:      hit.Author,
			ISBN:        hit.ISBN,
			ReleaseYear: hit.ReleaseYear,
			ImageURL:    hit.CoverURL,
		}
	})
	return append(results, external...), nil
}

func (s *Service) searchRemote(parent context.Context, query string) []openlibrary.Result {
	remoteContext, cancel := context.WithTimeout(parent, constants.SearchRemoteTimeout)
	defer cancel()

	hits, err := s.remote.Search(remoteContext, query, remoteLimit)
	if err != nil {
		s.logger.Warn("search_remote_failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return hits
}
