package schema

// UserSettingsTable represents the 'users.settings' table
type UserSettingsTable struct {
	Table                   string
	UserID                  string
	ShareAllReviews         string
	ShareAllReadingProgress string
	UpdatedAt               string
}

// UserSettings is the schema definition for users.settings
var UserSettings = UserSettingsTable{
	Table:                   "users.settings",
	UserID:                  "userid",
	ShareAllReviews:         "shareallreviews",
	ShareAllReadingProgress: "shareallreadingprogress",
	UpdatedAt:               "updatedat",
}

func (t UserSettingsTable) Columns() []string {
	return []string{t.UserID, t.ShareAllReviews, t.ShareAllReadingProgress, t.UpdatedAt}
}
