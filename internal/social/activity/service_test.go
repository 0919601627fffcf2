// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/pkg/pointer"
)

// memoryLog is an in-memory [Repository] for service tests.
type memoryLog struct {
	entries []Activity
}

func (l *memoryLog) Insert(_ context.Context, entry *Activity) error {
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *memoryLog) ListByActors(_ context.Context, actorIDs []string, limit int) ([]Activity, error) {
	actors := make(map[string]struct{}, len(actorIDs))
	for _, id := range actorIDs {
		actors[id] = struct{}{}
	}

	var matched []Activity
	for _, entry := range l.entries {
		if _, ok := actors[entry.UserID]; ok {
			matched = append(matched, entry)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// staticFollows is a fixed [FollowSource].
type staticFollows map[string][]string

func (s staticFollows) FollowedIDs(_ context.Context, userID string) ([]string, error) {
	return s[userID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFeedReturnsFollowedActorsNewestFirst(t *testing.T) {
	log := &memoryLog{}
	service := NewService(log, staticFollows{"viewer": {"actor"}}, testLogger())

	base := time.Now()
	log.entries = []Activity{
		{ID: "1", UserID: "actor", Kind: KindReviewPosted, CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "2", UserID: "stranger", Kind: KindReviewPosted, CreatedAt: base.Add(-1 * time.Hour)},
		{ID: "3", UserID: "actor", Kind: KindProgressUpdate, CreatedAt: base},
	}

	feed, err := service.Feed(context.Background(), "viewer", 10)
	require.NoError(t, err)

	require.Len(t, feed, 2)
	assert.Equal(t, "3", feed[0].ID)
	assert.Equal(t, "1", feed[1].ID)
}

func TestFeedDefaultLimit(t *testing.T) {
	log := &memoryLog{}
	service := NewService(log, staticFollows{"viewer": {"actor"}}, testLogger())

	base := time.Now()
	for i := 0; i < 8; i++ {
		service.Record(context.Background(), RecordInput{
			ActorID: "actor",
			BookID:  "book",
			Kind:    KindProgressUpdate,
		})
		log.entries[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	feed, err := service.Feed(context.Background(), "viewer", 0)
	require.NoError(t, err)

	assert.Len(t, feed, 5)
}

func TestFeedEmptyWithoutFollows(t *testing.T) {
	log := &memoryLog{entries: []Activity{{ID: "1", UserID: "actor", CreatedAt: time.Now()}}}
	service := NewService(log, staticFollows{}, testLogger())

	feed, err := service.Feed(context.Background(), "viewer", 10)
	require.NoError(t, err)

	assert.Empty(t, feed)
}

// The feed is keyed on the actor alone. An event stays visible to followers
// even when the record it references is private.
func TestFeedDoesNotConsultRecordSharing(t *testing.T) {
	log := &memoryLog{}
	service := NewService(log, staticFollows{"viewer": {"actor"}}, testLogger())

	// Recorded for a progress save whose shared flag is false.
	service.Record(context.Background(), RecordInput{
		ActorID:           "actor",
		BookID:            "book",
		Kind:              KindProgressUpdate,
		ReadingProgressID: pointer.To("progress-private"),
		Text:              "actor is reading",
		Backlink:          "/user/actor",
	})

	feed, err := service.Feed(context.Background(), "viewer", 10)
	require.NoError(t, err)

	require.Len(t, feed, 1)
	assert.Equal(t, "progress-private", pointer.Val(feed[0].ReadingProgressID))
	assert.Equal(t, KindProgressUpdate, feed[0].Kind)
}

func TestRecordHydratesEntry(t *testing.T) {
	log := &memoryLog{}
	service := NewService(log, staticFollows{}, testLogger())

	service.Record(context.Background(), RecordInput{
		ActorID:  "actor",
		BookID:   "book",
		Kind:     KindReviewPosted,
		ReviewID: pointer.To("review-1"),
		Text:     "actor reviewed a book",
		Backlink: "/user/actor",
	})

	require.Len(t, log.entries, 1)
	entry := log.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, "actor", entry.UserID)
	assert.Equal(t, "review-1", pointer.Val(entry.ReviewID))
	assert.Nil(t, entry.CommentID)
}
