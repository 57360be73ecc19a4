package mock

import (
	"context"

	"github.com/fwojciec/sitegrab"
)

var _ sitegrab.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of sitegrab.RecordService.
type RecordService struct {
	CreateRecordFn     func(ctx context.Context, rec *sitegrab.PageRecord) error
	FindRecordByIDFn   func(ctx context.Context, id int64) (*sitegrab.PageRecord, error)
	FindRecordsFn      func(ctx context.Context, filter sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error)
	DeleteAllRecordsFn func(ctx context.Context) (int64, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *sitegrab.PageRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id int64) (*sitegrab.PageRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteAllRecords(ctx context.Context) (int64, error) {
	return s.DeleteAllRecordsFn(ctx)
}
