package schema

// CatalogReadingProgressTable represents the 'catalog.readingprogress' table
type CatalogReadingProgressTable struct {
	Table       string
	ID          string
	BookID      string
	Status      string
	CurrentPage string
	Shared      string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogReadingProgress is the schema definition for catalog.readingprogress
var CatalogReadingProgress = CatalogReadingProgressTable{
	Table:       "catalog.readingprogress",
	ID:          "id",
	BookID:      "bookid",
	Status:      "status",
	CurrentPage: "currentpage",
	Shared:      "shared",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogReadingProgressTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Status, t.CurrentPage, t.Shared, t.CreatedAt, t.UpdatedAt}
}
