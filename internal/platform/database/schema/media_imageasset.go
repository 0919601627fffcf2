package schema

// MediaImageAssetTable represents the 'media.imageasset' table
type MediaImageAssetTable struct {
	Table       string
	ID          string
	BookID      string
	ShelfID     string
	FileName    string
	ContentType string
	SizeBytes   string
	URL         string
	CreatedAt   string
}

// MediaImageAsset is the schema definition for media.imageasset
var MediaImageAsset = MediaImageAssetTable{
	Table:       "media.imageasset",
	ID:          "id",
	BookID:      "bookid",
	ShelfID:     "shelfid",
	FileName:    "filename",
	ContentType: "contenttype",
	SizeBytes:   "sizebytes",
	URL:         "url",
	CreatedAt:   "createdat",
}

func (t MediaImageAssetTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.ShelfID, t.FileName, t.ContentType,
		t.SizeBytes, t.URL, t.CreatedAt,
	}
}
