package schema

// SocialFollowingTable represents the 'social.following' table
type SocialFollowingTable struct {
	Table      string
	FollowerID string
	FollowedID string
	CreatedAt  string
}

// SocialFollowing is the schema definition for social.following
var SocialFollowing = SocialFollowingTable{
	Table:      "social.following",
	FollowerID: "followerid",
	FollowedID: "followedid",
	CreatedAt:  "createdat",
}

func (t SocialFollowingTable) Columns() []string {
	return []string{t.FollowerID, t.FollowedID, t.CreatedAt}
}
