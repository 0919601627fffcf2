// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeAllows(t *testing.T) {
	scope := NewScope("alice", []string{"bob", "carol"})

	tests := []struct {
		name    string
		ownerID string
		shared  bool
		want    bool
	}{
		{name: "owner sees own private record", ownerID: "alice", shared: false, want: true},
		{name: "owner sees own shared record", ownerID: "alice", shared: true, want: true},
		{name: "followed owner with shared record", ownerID: "bob", shared: true, want: true},
		{name: "followed owner with private record", ownerID: "bob", shared: false, want: false},
		{name: "stranger with shared record", ownerID: "dave", shared: true, want: false},
		{name: "stranger with private record", ownerID: "dave", shared: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scope.Allows(tt.ownerID, tt.shared))
		})
	}
}

func TestScopeAllowsIsAsymmetric(t *testing.T) {
	// Alice follows Bob, Bob does not follow Alice.
	alice := NewScope("alice", []string{"bob"})
	bob := NewScope("bob", nil)

	assert.True(t, alice.Allows("bob", true))
	assert.False(t, bob.Allows("alice", true))
}

func TestScopeFollows(t *testing.T) {
	scope := NewScope("alice", []string{"bob"})

	assert.True(t, scope.Follows("bob"))
	assert.False(t, scope.Follows("carol"))
	assert.False(t, scope.Follows("alice"), "owners do not follow themselves")
}

func TestScopeOwnerIDs(t *testing.T) {
	scope := NewScope("alice", []string{"bob", "carol"})

	ids := scope.OwnerIDs()
	assert.Len(t, ids, 3)
	assert.Equal(t, "alice", ids[0])
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, ids)
}

func TestCanView(t *testing.T) {
	assert.True(t, CanView("alice", "alice", false, false))
	assert.True(t, CanView("alice", "bob", true, true))
	assert.False(t, CanView("alice", "bob", true, false))
	assert.False(t, CanView("alice", "bob", false, true))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, Dedupe(nil))

	// First occurrence wins the position.
	assert.Equal(t, []string{"x", "y"}, Dedupe([]string{"x", "y", "x"}))
}
