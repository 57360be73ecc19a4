package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/sitegrab"
	main "github.com/fwojciec/sitegrab/cmd/sitegrabdb"
	"github.com/fwojciec/sitegrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCmd_Run(t *testing.T) {
	t.Parallel()

	capturedAt := time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local)
	records := &mock.RecordService{
		FindRecordsFn: func(_ context.Context, _ sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error) {
			return []*sitegrab.PageRecord{
				{ID: 1, URL: "https://example.com", Title: "Example", Paragraphs: []string{"hello"}, CapturedAt: capturedAt},
				{ID: 2, URL: "https://example.org", Title: "Other", CodeSnippets: []string{"x := 1"}, CapturedAt: capturedAt},
			}, nil
		},
	}

	t.Run("prints one line per record", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Records: records}

		require.NoError(t, (&main.ViewCmd{}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "1  2024-03-01 12:30:00  https://example.com  Example  (0 headings, 1 paragraphs, 0 lists, 0 code)")
		assert.Contains(t, out, "2  2024-03-01 12:30:00  https://example.org  Other")
		assert.NotContains(t, out, "hello")
	})

	t.Run("prints content with --full", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Records: records}

		require.NoError(t, (&main.ViewCmd{Full: true}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, `"hello"`)
		assert.Contains(t, out, `"x := 1"`)
	})

	t.Run("reports an empty database", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Records: &mock.RecordService{
				FindRecordsFn: func(_ context.Context, _ sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error) {
					return nil, nil
				},
			},
		}

		require.NoError(t, (&main.ViewCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No records found")
	})

	t.Run("returns lookup errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Records: &mock.RecordService{
				FindRecordsFn: func(_ context.Context, _ sitegrab.RecordFilter) ([]*sitegrab.PageRecord, error) {
					return nil, errors.New("boom")
				},
			},
		}

		require.Error(t, (&main.ViewCmd{}).Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}
