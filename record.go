package sitegrab

import (
	"context"
	"time"
)

// NoTitle is the title recorded when a page has no title element.
const NoTitle = "No Title Found"

// PageRecord is the normalized content captured from one page.
// Records are immutable once stored; scraping the same URL again produces a
// new record with its own ID.
type PageRecord struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Headings     []string  `json:"headings"`
	Paragraphs   []string  `json:"paragraphs"`
	Lists        []string  `json:"lists"`
	CodeSnippets []string  `json:"codeSnippets"`
	ContentHash  string    `json:"contentHash"`
	CapturedAt   time.Time `json:"capturedAt"`
}

// HasContent reports whether at least one content sequence is non-empty.
func (r *PageRecord) HasContent() bool {
	return len(r.Headings) > 0 || len(r.Paragraphs) > 0 || len(r.Lists) > 0 || len(r.CodeSnippets) > 0
}

// Validate is the acceptance predicate for storing a record: a title and at
// least one non-empty content sequence are required.
func (r *PageRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Title == "" || !r.HasContent() {
		return Errorf(ENOCONTENT, "no content extracted from %s", r.URL)
	}
	return nil
}

// RecordService represents a service for managing page records.
type RecordService interface {
	// CreateRecord validates and appends a record, assigning ID, CapturedAt
	// and ContentHash. Returns ENOCONTENT if the record fails Validate and
	// ESTORAGE if the write fails.
	CreateRecord(ctx context.Context, rec *PageRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id int64) (*PageRecord, error)

	// FindRecords retrieves records matching the filter in ascending ID order.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*PageRecord, error)

	// DeleteAllRecords removes every record and returns how many were removed.
	DeleteAllRecords(ctx context.Context) (int64, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	URL         *string `json:"url"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
