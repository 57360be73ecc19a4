package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitegrab"
)

// Compile-time interface verification.
var _ sitegrab.RecordService = (*RecordService)(nil)

const recordColumns = "id, url, title, headings, paragraphs, lists, code_snippets, publication_date, content_hash"

// RecordService implements sitegrab.RecordService using SQLite.
type RecordService struct {
	db  *DB
	now func() time.Time
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db, now: time.Now}
}

// hashContent fingerprints the title and content sequences of rec.
func hashContent(rec *sitegrab.PageRecord) string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	write(rec.Title)
	for _, seq := range [][]string{rec.Headings, rec.Paragraphs, rec.Lists, rec.CodeSnippets} {
		for _, item := range seq {
			write(item)
		}
		_, _ = d.Write([]byte{1})
	}
	return hex.EncodeToString(d.Sum(nil))
}

// CreateRecord validates rec and appends it to web_pages. ID, CapturedAt and
// ContentHash are set on rec only when the write succeeds.
func (s *RecordService) CreateRecord(ctx context.Context, rec *sitegrab.PageRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	capturedAt := s.now().Local().Truncate(time.Second)
	contentHash := hashContent(rec)

	cols := make([]string, 0, 4)
	for _, seq := range [][]string{rec.Headings, rec.Paragraphs, rec.Lists, rec.CodeSnippets} {
		v, err := encodeList(seq)
		if err != nil {
			return sitegrab.Errorf(sitegrab.ESTORAGE, "encoding record: %v", err)
		}
		cols = append(cols, v)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO web_pages (url, title, headings, paragraphs, lists, code_snippets, publication_date, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.URL, rec.Title, cols[0], cols[1], cols[2], cols[3], formatTimestamp(capturedAt), contentHash)
	if err != nil {
		return sitegrab.Errorf(sitegrab.ESTORAGE, "writing record: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return sitegrab.Errorf(sitegrab.ESTORAGE, "reading record id: %v", err)
	}

	rec.ID = id
	rec.CapturedAt = capturedAt
	rec.ContentHash = contentHash
	return nil
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id int64) (*sitegrab.PageRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM web_pages WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitegrab.Errorf(sitegrab.ENOTFOUND, "record %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter in ascending ID order.
func (s *RecordService) FindRecords(ctx context.Context, filter sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM web_pages WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*sitegrab.PageRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteAllRecords removes every row from web_pages.
func (s *RecordService) DeleteAllRecords(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM web_pages")
	if err != nil {
		return 0, sitegrab.Errorf(sitegrab.ESTORAGE, "deleting records: %v", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*sitegrab.PageRecord, error) {
	var rec sitegrab.PageRecord
	// Rows written by earlier tools may hold NULL in any column but id.
	var url, title, headings, paragraphs, lists, code, publishedAt, contentHash sql.NullString

	if err := row.Scan(&rec.ID, &url, &title, &headings, &paragraphs, &lists, &code,
		&publishedAt, &contentHash); err != nil {
		return nil, err
	}
	rec.URL = url.String
	rec.Title = title.String
	rec.ContentHash = contentHash.String

	var err error
	if rec.Headings, err = decodeList(headings.String, "headings"); err != nil {
		return nil, err
	}
	if rec.Paragraphs, err = decodeList(paragraphs.String, "paragraphs"); err != nil {
		return nil, err
	}
	if rec.Lists, err = decodeList(lists.String, "lists"); err != nil {
		return nil, err
	}
	if rec.CodeSnippets, err = decodeList(code.String, "code_snippets"); err != nil {
		return nil, err
	}
	if publishedAt.String != "" {
		if rec.CapturedAt, err = parseTimestamp(publishedAt.String, "publication_date"); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}
