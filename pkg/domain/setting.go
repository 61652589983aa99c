package domain

import "time"

// Setting represents a key-value configuration setting
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// setting keys shared by the engine and maintenance commands
const (
	SettingLastAccessed = "last_time_app_accessed"
	SettingPagePrefix   = "last_used_page_"
)

// CursorKey returns setting key holding the last used page for a filter pair
func CursorKey(r RatingFilter, m MediaFilter) string {
	return SettingPagePrefix + "(" + r.Label() + ")_(" + m.Label() + ")"
}
