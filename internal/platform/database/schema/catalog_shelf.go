package schema

// CatalogShelfTable represents the 'catalog.shelf' table
type CatalogShelfTable struct {
	Table       string
	ID          string
	UserID      string
	Title       string
	Description string
	ImageURL    string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogShelf is the schema definition for catalog.shelf
var CatalogShelf = CatalogShelfTable{
	Table:       "catalog.shelf",
	ID:          "id",
	UserID:      "userid",
	Title:       "title",
	Description: "description",
	ImageURL:    "imageurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogShelfTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Title, t.Description, t.ImageURL, t.CreatedAt, t.UpdatedAt}
}
