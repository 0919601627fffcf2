package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table       string
	ID          string
	UserID      string
	ShelfID     string
	ISBN        string
	Title       string
	Author      string
	TotalPages  string
	ReleaseYear string
	ImageURL    string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:       "catalog.book",
	ID:          "id",
	UserID:      "userid",
	ShelfID:     "shelfid",
	ISBN:        "isbn",
	Title:       "title",
	Author:      "author",
	TotalPages:  "totalpages",
	ReleaseYear: "releaseyear",
	ImageURL:    "imageurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ShelfID, t.ISBN, t.Title, t.Author,
		t.TotalPages, t.ReleaseYear, t.ImageURL, t.CreatedAt, t.UpdatedAt,
	}
}
