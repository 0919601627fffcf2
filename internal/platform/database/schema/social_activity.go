package schema

// SocialActivityTable represents the 'social.activity' table
type SocialActivityTable struct {
	Table             string
	ID                string
	UserID            string
	BookID            string
	ReviewID          string
	CommentID         string
	ReadingProgressID string
	Kind              string
	Text              string
	Backlink          string
	CreatedAt         string
}

// SocialActivity is the schema definition for social.activity
var SocialActivity = SocialActivityTable{
	Table:             "social.activity",
	ID:                "id",
	UserID:            "userid",
	BookID:            "bookid",
	ReviewID:          "reviewid",
	CommentID:         "commentid",
	ReadingProgressID: "readingprogressid",
	Kind:              "kind",
	Text:              "text",
	Backlink:          "backlink",
	CreatedAt:         "createdat",
}

func (t SocialActivityTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.ReviewID, t.CommentID, t.ReadingProgressID,
		t.Kind, t.Text, t.Backlink, t.CreatedAt,
	}
}
