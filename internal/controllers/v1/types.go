package v1

import (
	"time"

	ez_uuid "github.com/pennywise-app/backend/internal/uuid"
)

// timeNow returns the current time in UTC. It is a variable so that
// tests can pin the clock.
var timeNow = func() time.Time {
	return time.Now().In(time.UTC)
}

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryReference carries the reference date for derived computations.
// It is explicit so that historical and demo data classify the same
// way on every call, instead of depending on the server clock.
type QueryReference struct {
	Reference time.Time `form:"reference" time_format:"2006-01-02" time_utc:"1" example:"2024-08-19"` // Reference date in YYYY-MM-DD format. Defaults to today.
}

// Date returns the reference date, defaulting to the current day.
func (q QueryReference) Date() time.Time {
	if q.Reference.IsZero() {
		now := timeNow()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	return q.Reference.In(time.UTC)
}

// Pagination contains the page metadata for a transaction list.
type Pagination struct {
	CurrentPage int   `json:"currentPage" example:"2"` // The page that was returned
	TotalPages  int   `json:"totalPages" example:"3"`  // Number of pages, at least 1
	TotalItems  int64 `json:"totalItems" example:"25"` // Number of items across all pages
	HasNext     bool  `json:"hasNext" example:"true"`  // Is there a page after this one?
	HasPrev     bool  `json:"hasPrev" example:"true"`  // Is there a page before this one?
}
