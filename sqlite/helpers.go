package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayout is the publication_date format: local time, second precision.
const timestampLayout = "2006-01-02 15:04:05"

// formatTimestamp renders t in the publication_date format.
func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

// parseTimestamp parses a publication_date value as local time.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTimestamp(value, fieldName string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// encodeList serializes a sequence column. Nil slices are stored as [].
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList parses a sequence column. An empty value or a JSON null is an
// empty sequence.
func decodeList(value, fieldName string) ([]string, error) {
	items := []string{}
	if value == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
