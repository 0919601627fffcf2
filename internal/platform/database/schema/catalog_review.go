package schema

// CatalogReviewTable represents the 'catalog.review' table
type CatalogReviewTable struct {
	Table     string
	ID        string
	BookID    string
	Text      string
	Shared    string
	CreatedAt string
	UpdatedAt string
}

// CatalogReview is the schema definition for catalog.review
var CatalogReview = CatalogReviewTable{
	Table:     "catalog.review",
	ID:        "id",
	BookID:    "bookid",
	Text:      "text",
	Shared:    "shared",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogReviewTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Text, t.Shared, t.CreatedAt, t.UpdatedAt}
}
