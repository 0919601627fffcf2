package schema

// CatalogCommentTable represents the 'catalog.comment' table
type CatalogCommentTable struct {
	Table     string
	ID        string
	ReviewID  string
	UserID    string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// CatalogComment is the schema definition for catalog.comment
var CatalogComment = CatalogCommentTable{
	Table:     "catalog.comment",
	ID:        "id",
	ReviewID:  "reviewid",
	UserID:    "userid",
	Text:      "text",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.UserID, t.Text, t.CreatedAt, t.UpdatedAt}
}
