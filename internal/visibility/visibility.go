// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package visibility defines who may see whose reading data.

Every record in the catalog belongs to exactly one owner. Owners always see
their own records. Everyone else sees a record only when two independent
conditions hold: the viewer follows the owner, and the record is flagged as
shared. The follow graph is asymmetric, so A following B says nothing about
what B can see of A.

# Architecture

  - Scope: A viewer identity plus the set of owners the viewer follows,
    resolved once per request and applied to any number of records.
  - Allows: The single predicate every read path funnels through.
  - Pure: This package holds no storage and performs no I/O, which keeps the
    access rules trivially testable.
*/
package visibility

// Scope captures a viewer and the owners whose shared records the viewer
// may see. Build it once per request from the follow store, then apply it
// to each candidate record.
type Scope struct {
	ViewerID    string
	FollowedIDs map[string]struct{}
}

// NewScope builds a [Scope] from a viewer and the list of user IDs they follow.
func NewScope(viewerID string, followedIDs []string) Scope {
	followed := make(map[string]struct{}, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}
	return Scope{ViewerID: viewerID, FollowedIDs: followed}
}

// Allows reports whether the scoped viewer may see a record owned by ownerID
// with the given shared flag.
//
// # Rules
//  1. Owners always see their own records, shared or not.
//  2. Non-owners see a record only if they follow the owner AND the record
//     is shared. Following alone is not enough, sharing alone is not enough.
func (scope Scope) Allows(ownerID string, shared bool) bool {
	if scope.ViewerID == ownerID {
		return true
	}
	if !shared {
		return false
	}
	_, follows := scope.FollowedIDs[ownerID]
	return follows
}

// Follows reports whether the scoped viewer follows ownerID. Owners do not
// implicitly follow themselves.
func (scope Scope) Follows(ownerID string) bool {
	_, ok := scope.FollowedIDs[ownerID]
	return ok
}

// Followed returns the followed owner IDs as a slice, for queries that bind
// the follow set as an array parameter.
func (scope Scope) Followed() []string {
	ids := make([]string, 0, len(scope.FollowedIDs))
	for id := range scope.FollowedIDs {
		ids = append(ids, id)
	}
	return ids
}

// OwnerIDs returns the viewer plus every followed owner, with the viewer
// first. This is the owner set used by combined mine-and-followed queries.
func (scope Scope) OwnerIDs() []string {
	ids := make([]string, 0, len(scope.FollowedIDs)+1)
	ids = append(ids, scope.ViewerID)
	for id := range scope.FollowedIDs {
		ids = append(ids, id)
	}
	return ids
}

// CanView is the single-record form of [Scope.Allows] for call sites that
// already resolved the follow relationship themselves.
func CanView(viewerID, ownerID string, shared, viewerFollowsOwner bool) bool {
	if viewerID == ownerID {
		return true
	}
	return shared && viewerFollowsOwner
}

// Dedupe removes duplicate IDs while preserving first-seen order. Combined
// owner sets can repeat an ID when a viewer follows themselves by data error
// or when two branches of a query contribute the same owner.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
