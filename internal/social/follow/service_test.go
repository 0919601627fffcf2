// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/users/auth"
)

// memoryGraph is an in-memory [Repository] for service tests.
type memoryGraph struct {
	edges map[[2]string]bool
}

func newMemoryGraph() *memoryGraph {
	return &memoryGraph{edges: make(map[[2]string]bool)}
}

func (g *memoryGraph) Upsert(_ context.Context, followerID, followedID string) error {
	g.edges[[2]string{followerID, followedID}] = true
	return nil
}

func (g *memoryGraph) Delete(_ context.Context, followerID, followedID string) error {
	delete(g.edges, [2]string{followerID, followedID})
	return nil
}

func (g *memoryGraph) Exists(_ context.Context, followerID, followedID string) (bool, error) {
	return g.edges[[2]string{followerID, followedID}], nil
}

func (g *memoryGraph) FollowedIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for edge := range g.edges {
		if edge[0] == userID {
			ids = append(ids, edge[1])
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (g *memoryGraph) ListFollowing(ctx context.Context, userID string) ([]Person, error) {
	ids, _ := g.FollowedIDs(ctx, userID)
	people := make([]Person, 0, len(ids))
	for _, id := range ids {
		people = append(people, Person{ID: id, Username: id})
	}
	return people, nil
}

func (g *memoryGraph) ListFollowers(_ context.Context, userID string) ([]Person, error) {
	var people []Person
	for edge := range g.edges {
		if edge[1] == userID {
			people = append(people, Person{ID: edge[0], Username: edge[0]})
		}
	}
	return people, nil
}

// memoryDirectory is an in-memory [UserDirectory] keyed by username.
type memoryDirectory struct {
	users map[string]*auth.User
}

func newMemoryDirectory(usernames ...string) *memoryDirectory {
	directory := &memoryDirectory{users: make(map[string]*auth.User)}
	for _, name := range usernames {
		directory.users[name] = &auth.User{ID: "id-" + name, Username: name}
	}
	return directory
}

func (d *memoryDirectory) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (d *memoryDirectory) SearchUsernames(_ context.Context, query string, limit int) ([]string, error) {
	var matches []string
	for name := range d.users {
		if strings.Contains(name, strings.ToLower(query)) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func newTestService(usernames ...string) (*Service, *memoryGraph) {
	graph := newMemoryGraph()
	return NewService(graph, newMemoryDirectory(usernames...)), graph
}

func TestFollowCreatesEdge(t *testing.T) {
	service, graph := newTestService("alice", "bob")

	err := service.Follow(context.Background(), "id-alice", "bob")
	require.NoError(t, err)

	assert.True(t, graph.edges[[2]string{"id-alice", "id-bob"}])
	assert.False(t, graph.edges[[2]string{"id-bob", "id-alice"}], "following is directed")
}

func TestFollowIsIdempotent(t *testing.T) {
	service, graph := newTestService("alice", "bob")

	require.NoError(t, service.Follow(context.Background(), "id-alice", "bob"))
	require.NoError(t, service.Follow(context.Background(), "id-alice", "bob"))

	assert.Len(t, graph.edges, 1)
}

func TestFollowRejectsSelf(t *testing.T) {
	service, graph := newTestService("alice")

	err := service.Follow(context.Background(), "id-alice", "alice")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.HTTPStatus)
	assert.Empty(t, graph.edges, "state unchanged after rejected self-follow")
}

func TestFollowUnknownUser(t *testing.T) {
	service, _ := newTestService("alice")

	err := service.Follow(context.Background(), "id-alice", "ghost")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	service, _ := newTestService("alice", "bob")

	// Never followed: still succeeds.
	assert.NoError(t, service.Unfollow(context.Background(), "id-alice", "bob"))

	require.NoError(t, service.Follow(context.Background(), "id-alice", "bob"))
	assert.NoError(t, service.Unfollow(context.Background(), "id-alice", "bob"))
	assert.NoError(t, service.Unfollow(context.Background(), "id-alice", "bob"))

	ok, err := service.IsFollowing(context.Background(), "id-alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleFlipsEdge(t *testing.T) {
	service, graph := newTestService("alice", "bob")

	following, err := service.Toggle(context.Background(), "id-alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)
	assert.True(t, graph.edges[[2]string{"id-alice", "id-bob"}])

	following, err = service.Toggle(context.Background(), "id-alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, graph.edges[[2]string{"id-alice", "id-bob"}])
}

func TestToggleRejectsSelf(t *testing.T) {
	service, graph := newTestService("alice")

	_, err := service.Toggle(context.Background(), "id-alice", "alice")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.HTTPStatus)
	assert.Empty(t, graph.edges)
}

func TestScopeReflectsFollowGraph(t *testing.T) {
	service, _ := newTestService("alice", "bob", "carol")

	require.NoError(t, service.Follow(context.Background(), "id-alice", "bob"))

	scope, err := service.Scope(context.Background(), "id-alice")
	require.NoError(t, err)

	assert.True(t, scope.Allows("id-bob", true))
	assert.False(t, scope.Allows("id-bob", false))
	assert.False(t, scope.Allows("id-carol", true))
	assert.True(t, scope.Allows("id-alice", false))
}

func TestSearchPeople(t *testing.T) {
	service, _ := newTestService("alice", "alina", "bob")

	matches, err := service.SearchPeople(context.Background(), "ali", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "alina"}, matches)
}
