package models

import "time"

// SearchKeyword tracks repeated search terms. Present in the schema and
// bumped on every search; reserved for future ranking of suggestions.
type SearchKeyword struct {
	ID       int64     `json:"id,omitempty"`
	Keyword  string    `json:"keyword"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}
