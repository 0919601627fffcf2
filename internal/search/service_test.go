// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/internal/catalog/book"
	"github.com/taibuivan/tsundoku/internal/search/openlibrary"
)

type staticLocal []book.Book

func (s staticLocal) SearchLocal(_ context.Context, _, _ string) ([]book.Book, error) {
	return s, nil
}

type failingLocal struct{}

func (failingLocal) SearchLocal(_ context.Context, _, _ string) ([]book.Book, error) {
	return nil, errors.New("catalog down")
}

type staticRemote []openlibrary.Result

func (s staticRemote) Search(_ context.Context, _ string, _ int) ([]openlibrary.Result, error) {
	return s, nil
}

type failingRemote struct{}

func (failingRemote) Search(_ context.Context, _ string, _ int) ([]openlibrary.Result, error) {
	return nil, errors.New("upstream unavailable")
}

// deadlineRemote verifies the composed call carries a deadline and then
// behaves like an upstream that ran past it.
type deadlineRemote struct {
	sawDeadline bool
}

func (d *deadlineRemote) Search(ctx context.Context, _ string, _ int) ([]openlibrary.Result, error) {
	_, d.sawDeadline = ctx.Deadline()
	return nil, context.DeadlineExceeded
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchTagsAndOrdersResults(t *testing.T) {
	local := staticLocal{{ID: "b1", Title: "Dune", Author: "Frank Herbert", Owner: "alice"}}
	remote := staticRemote{{ID: "/works/OL1W", Title: "Dune", Author: "Frank Herbert"}}
	service := NewService(local, remote, testLogger())

	results, err := service.Search(context.Background(), "alice", "dune")
	require.NoError(t, err)

	require.Len(t, results, 2, "matching editions on both sides are kept, not merged")
	assert.Equal(t, TypeLocal, results[0].Type)
	assert.Equal(t, "b1", results[0].ID)
	assert.Equal(t, "alice", results[0].Owner)
	assert.Equal(t, TypeExternal, results[1].Type)
	assert.Equal(t, "/works/OL1W", results[1].ID)
	assert.Empty(t, results[1].Owner)
}

func TestSearchSurvivesRemoteFailure(t *testing.T) {
	local := staticLocal{{ID: "b1", Title: "Dune"}}
	service := NewService(local, failingRemote{}, testLogger())

	results, err := service.Search(context.Background(), "alice", "dune")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, TypeLocal, results[0].Type)
}

func TestSearchBoundsRemoteDeadline(t *testing.T) {
	remote := &deadlineRemote{}
	service := NewService(staticLocal{}, remote, testLogger())

	results, err := service.Search(context.Background(), "alice", "dune")
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.True(t, remote.sawDeadline, "remote calls run under a deadline")
}

func TestSearchPropagatesLocalFailure(t *testing.T) {
	service := NewService(failingLocal{}, staticRemote{}, testLogger())

	_, err := service.Search(context.Background(), "alice", "dune")

	require.Error(t, err)
}
