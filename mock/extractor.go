package mock

import "github.com/fwojciec/sitegrab"

var _ sitegrab.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of sitegrab.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*sitegrab.Extraction, error)
}

func (e *ContentExtractor) Extract(html string) (*sitegrab.Extraction, error) {
	return e.ExtractFn(html)
}
