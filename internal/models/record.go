// internal/models/record.go
package models

import "time"

// Record is one submitted form snapshot as stored in Postgres. Payload keeps
// the full serialized snapshot (fields plus delivery table) as JSON.
type Record struct {
	ID           string    `json:"id"`
	ProjectName  string    `json:"project_name"`
	BusinessCode string    `json:"business_code"`
	Payload      []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordPage is one page of the admin record listing.
type RecordPage struct {
	Records     []Record `json:"records"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
	TotalItems  int      `json:"total_items"`
	HasPrev     bool     `json:"has_prev"`
	HasNext     bool     `json:"has_next"`
}

// ListQuery selects a page of records, optionally restricted to a
// creation-date range (inclusive, YYYY-MM-DD).
type ListQuery struct {
	Page      int
	PerPage   int
	StartDate string
	EndDate   string
}
