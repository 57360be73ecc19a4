package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/sitegrab"
	"github.com/fwojciec/sitegrab/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(url string) *sitegrab.PageRecord {
	return &sitegrab.PageRecord{
		URL:          url,
		Title:        "Example Domain",
		Headings:     []string{"Example Domain"},
		Paragraphs:   []string{"This domain is for use in examples.", "More information..."},
		Lists:        []string{},
		CodeSnippets: []string{"fmt.Println(\"hi\")\n\treturn"},
	}
}

func TestRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("assigns id, timestamp and content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		before := time.Now().Truncate(time.Second)

		rec := newTestRecord("https://example.com")
		require.NoError(t, svc.CreateRecord(context.Background(), rec))

		assert.Positive(t, rec.ID)
		assert.NotEmpty(t, rec.ContentHash)
		assert.False(t, rec.CapturedAt.Before(before))
		assert.Zero(t, rec.CapturedAt.Nanosecond())
	})

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()

		rec := newTestRecord("https://example.com/page")
		require.NoError(t, svc.CreateRecord(ctx, rec))

		got, err := svc.FindRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.URL, got.URL)
		assert.Equal(t, rec.Title, got.Title)
		assert.Equal(t, rec.Headings, got.Headings)
		assert.Equal(t, rec.Paragraphs, got.Paragraphs)
		assert.Equal(t, rec.Lists, got.Lists)
		assert.Equal(t, rec.CodeSnippets, got.CodeSnippets)
		assert.Equal(t, rec.ContentHash, got.ContentHash)
		assert.True(t, rec.CapturedAt.Equal(got.CapturedAt))
	})

	t.Run("nil sequences are stored as empty arrays", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := &sitegrab.PageRecord{URL: "https://example.com", Title: "T", Paragraphs: []string{"p"}}
		require.NoError(t, svc.CreateRecord(ctx, rec))

		var headings string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT headings FROM web_pages WHERE id = ?", rec.ID).Scan(&headings))
		assert.Equal(t, "[]", headings)
	})

	t.Run("ids strictly increase", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()

		var last int64
		for range 3 {
			rec := newTestRecord("https://example.com")
			require.NoError(t, svc.CreateRecord(ctx, rec))
			assert.Greater(t, rec.ID, last)
			last = rec.ID
		}
	})

	t.Run("same URL twice yields two records", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()

		first := newTestRecord("https://example.com")
		second := newTestRecord("https://example.com")
		require.NoError(t, svc.CreateRecord(ctx, first))
		require.NoError(t, svc.CreateRecord(ctx, second))

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.ContentHash, second.ContentHash)

		url := "https://example.com"
		recs, err := svc.FindRecords(ctx, sitegrab.RecordFilter{URL: &url})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("rejects record without content and writes nothing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()

		rec := &sitegrab.PageRecord{URL: "https://example.com", Title: sitegrab.NoTitle}
		err := svc.CreateRecord(ctx, rec)
		assert.Equal(t, sitegrab.ENOCONTENT, sitegrab.ErrorCode(err))
		assert.Zero(t, rec.ID)

		recs, err := svc.FindRecords(ctx, sitegrab.RecordFilter{})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("rejects record without title", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))

		rec := &sitegrab.PageRecord{URL: "https://example.com", Paragraphs: []string{"p"}}
		err := svc.CreateRecord(context.Background(), rec)
		assert.Equal(t, sitegrab.ENOCONTENT, sitegrab.ErrorCode(err))
	})

	t.Run("write failure is a storage error", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())
		svc := sqlite.NewRecordService(db)

		err := svc.CreateRecord(context.Background(), newTestRecord("https://example.com"))
		assert.Equal(t, sitegrab.ESTORAGE, sitegrab.ErrorCode(err))
	})

	t.Run("different content hashes differently", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()

		a := newTestRecord("https://example.com")
		b := newTestRecord("https://example.com")
		b.Paragraphs = append(b.Paragraphs, "extra")
		require.NoError(t, svc.CreateRecord(ctx, a))
		require.NoError(t, svc.CreateRecord(ctx, b))

		assert.NotEqual(t, a.ContentHash, b.ContentHash)
	})
}

func TestRecordService_FindRecordByID(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for missing id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))

		_, err := svc.FindRecordByID(context.Background(), 42)
		assert.Equal(t, sitegrab.ENOTFOUND, sitegrab.ErrorCode(err))
	})
}

func TestRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.RecordService, urls ...string) []*sitegrab.PageRecord {
		t.Helper()
		recs := make([]*sitegrab.PageRecord, 0, len(urls))
		for _, u := range urls {
			rec := newTestRecord(u)
			rec.Title = u
			require.NoError(t, svc.CreateRecord(context.Background(), rec))
			recs = append(recs, rec)
		}
		return recs
	}

	t.Run("returns records in ascending id order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		seed(t, svc, "https://a.example", "https://b.example", "https://c.example")

		recs, err := svc.FindRecords(context.Background(), sitegrab.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "https://a.example", recs[0].URL)
		assert.Equal(t, "https://c.example", recs[2].URL)
	})

	t.Run("filters by content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		recs := seed(t, svc, "https://a.example", "https://b.example")

		hash := recs[1].ContentHash
		got, err := svc.FindRecords(context.Background(), sitegrab.RecordFilter{ContentHash: &hash})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, recs[1].ID, got[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		seed(t, svc, "https://a.example", "https://b.example", "https://c.example")
		ctx := context.Background()

		got, err := svc.FindRecords(ctx, sitegrab.RecordFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://b.example", got[0].URL)

		got, err = svc.FindRecords(ctx, sitegrab.RecordFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://c.example", got[0].URL)
	})
}

func TestRecordService_DeleteAllRecords(t *testing.T) {
	t.Parallel()

	t.Run("removes every record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()
		for range 2 {
			require.NoError(t, svc.CreateRecord(ctx, newTestRecord("https://example.com")))
		}

		n, err := svc.DeleteAllRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		recs, err := svc.FindRecords(ctx, sitegrab.RecordFilter{})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("ids keep increasing after delete", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRecordService(setupTestDB(t))
		ctx := context.Background()

		first := newTestRecord("https://example.com")
		require.NoError(t, svc.CreateRecord(ctx, first))
		_, err := svc.DeleteAllRecords(ctx)
		require.NoError(t, err)

		second := newTestRecord("https://example.com")
		require.NoError(t, svc.CreateRecord(ctx, second))
		assert.Greater(t, second.ID, first.ID)
	})
}
