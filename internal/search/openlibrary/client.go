// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package openlibrary is a thin client for the Open Library search API.

Responses are cached in Redis keyed on the folded query, so repeated
searches for the same title do not hammer the upstream service. Cache
failures degrade to a plain upstream call.
*/
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tsundoku/internal/platform/constants"
	"github.com/taibuivan/tsundoku/pkg/textnorm"
)

const cacheTTL = time.Hour

// Result is one book hit from the Open Library catalog.
type Result struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	ReleaseYear *int   `json:"release_year,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// Client queries the Open Library search endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	logger     *slog.Logger
}

// NewClient creates an Open Library client. The timeout bounds each
// upstream call; the caller's context can shorten it further.
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}
}

// searchResponse mirrors the fields we read from the upstream payload.
type searchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear *int     `json:"first_publish_year"`
		ISBN             []string `json:"isbn"`
		CoverID          *int     `json:"cover_i"`
	} `json:"docs"`
}

/*
Search queries the remote catalog.

Parameters:
  - context: context.Context
  - query: string
  - limit: int

Returns:
  - []Result: Remote hits, upstream order preserved
  - error: Transport, decoding or upstream status failures
*/
func (c *Client) Search(context context.Context, query string, limit int) ([]Result, error) {
	cacheKey := fmt.Sprintf("%s%s:%d", constants.RedisPrefixBookSearch, textnorm.Fold(query), limit)

	if cached := c.fromCache(context, cacheKey); cached != nil {
		return cached, nil
	}

	results, err := c.fetch(context, query, limit)
	if err != nil {
		return nil, err
	}

	c.store(context, cacheKey, results)
	return results, nil
}

func (c *Client) fetch(context context.Context, query string, limit int) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/search.json?q=%s&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("openlibrary_request_build_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("openlibrary_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary_unexpected_status: %d", response.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openlibrary_decode_failed: %w", err)
	}

	results := make([]Result, 0, len(payload.Docs))
	for _, doc := range payload.Docs {
		result := Result{
			ID:          doc.Key,
			Title:       doc.Title,
			ReleaseYear: doc.FirstPublishYear,
		}
		if len(doc.AuthorName) > 0 {
			result.Author = doc.AuthorName[0]
		}
		if len(doc.ISBN) > 0 {
			result.ISBN = doc.ISBN[0]
		}
		if doc.CoverID != nil {
			result.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%s-M.jpg", strconv.Itoa(*doc.CoverID))
		}
		results = append(results, result)
	}
	return results, nil
}

func (c *Client) fromCache(context context.Context, key string) []Result {
	if c.cache == nil {
		return nil
	}

	raw, err := c.cache.Get(context, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("openlibrary_cache_read_failed", slog.String("error", err.Error()))
		}
		return nil
	}

	var results []Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		c.logger.Warn("openlibrary_cache_decode_failed", slog.String("error", err.Error()))
		return nil
	}
	return results
}

func (c *Client) store(context context.Context, key string, results []Result) {
	if c.cache == nil {
		return
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.cache.Set(context, key, encoded, cacheTTL).Err(); err != nil {
		c.logger.Warn("openlibrary_cache_write_failed", slog.String("error", err.Error()))
	}
}
