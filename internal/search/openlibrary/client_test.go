// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package openlibrary

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchParsesUpstreamPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/search.json", request.URL.Path)
		assert.Equal(t, "dune", request.URL.Query().Get("q"))
		assert.Equal(t, "10", request.URL.Query().Get("limit"))

		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"docs":[
			{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert","Someone Else"],"first_publish_year":1965,"isbn":["9780441013593"],"cover_i":12345},
			{"key":"/works/OL2W","title":"Dune Messiah"}
		]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, time.Second, nil, testLogger())

	results, err := client.Search(context.Background(), "dune", 10)
	require.NoError(t, err)

	require.Len(t, results, 2)
	first := results[0]
	assert.Equal(t, "/works/OL1W", first.ID)
	assert.Equal(t, "Dune", first.Title)
	assert.Equal(t, "Frank Herbert", first.Author, "only the first author is kept")
	assert.Equal(t, "9780441013593", first.ISBN)
	require.NotNil(t, first.ReleaseYear)
	assert.Equal(t, 1965, *first.ReleaseYear)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", first.CoverURL)

	sparse := results[1]
	assert.Empty(t, sparse.Author)
	assert.Nil(t, sparse.ReleaseYear)
	assert.Empty(t, sparse.CoverURL)
}

func TestSearchRejectsUpstreamErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, time.Second, nil, testLogger())

	_, err := client.Search(context.Background(), "dune", 10)

	require.Error(t, err)
}
