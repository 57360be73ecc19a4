package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitegrab"
	"github.com/fwojciec/sitegrab/mock"
	sgslog "github.com/fwojciec/sitegrab/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("logs assigned id and sequence sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			CreateRecordFn: func(ctx context.Context, rec *sitegrab.PageRecord) error {
				rec.ID = 7
				return nil
			},
		}

		rec := &sitegrab.PageRecord{URL: "https://example.com", Title: "T", Paragraphs: []string{"a", "b"}}
		err := sgslog.NewLoggingRecordService(inner, logger).CreateRecord(context.Background(), rec)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "create record")
		assert.Contains(t, output, "id=7")
		assert.Contains(t, output, "paragraphs=2")
		assert.Contains(t, output, "headings=0")
	})

	t.Run("logs error on rejection", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			CreateRecordFn: func(ctx context.Context, rec *sitegrab.PageRecord) error {
				return errors.New("no content")
			},
		}

		err := sgslog.NewLoggingRecordService(inner, logger).CreateRecord(context.Background(), &sitegrab.PageRecord{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"no content\"")
	})
}

func TestLoggingRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.RecordService{
		FindRecordsFn: func(ctx context.Context, filter sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error) {
			return []*sitegrab.PageRecord{{ID: 1}, {ID: 2}}, nil
		},
	}

	recs, err := sgslog.NewLoggingRecordService(inner, logger).FindRecords(context.Background(), sitegrab.RecordFilter{})

	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoggingRecordService_DeleteAllRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.RecordService{
		DeleteAllRecordsFn: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
	}

	n, err := sgslog.NewLoggingRecordService(inner, logger).DeleteAllRecords(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Contains(t, buf.String(), "delete records")
	assert.Contains(t, buf.String(), "count=3")
}
