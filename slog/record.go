package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitegrab"
)

// Ensure LoggingRecordService implements sitegrab.RecordService.
var _ sitegrab.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with logging.
type LoggingRecordService struct {
	next   sitegrab.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next sitegrab.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecord delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CreateRecord(ctx context.Context, rec *sitegrab.PageRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create record",
			"url", rec.URL,
			"id", rec.ID,
			"headings", len(rec.Headings),
			"paragraphs", len(rec.Paragraphs),
			"lists", len(rec.Lists),
			"code_snippets", len(rec.CodeSnippets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, rec)
}

// FindRecordByID delegates to the wrapped service.
func (s *LoggingRecordService) FindRecordByID(ctx context.Context, id int64) (*sitegrab.PageRecord, error) {
	return s.next.FindRecordByID(ctx, id)
}

// FindRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter sitegrab.RecordFilter) (recs []*sitegrab.PageRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find records",
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

// DeleteAllRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) DeleteAllRecords(ctx context.Context) (n int64, err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete records",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteAllRecords(ctx)
}
