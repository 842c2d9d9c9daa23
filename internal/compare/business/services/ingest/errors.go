package ingest

import (
	"errors"

	"gocompare_api/internal/compare/pkg/clients"
)

// Batch preconditions. Any of them aborts the whole call before an item is
// processed.
var (
	ErrMissingRunID    = errors.New("runId is required")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingToken    = clients.ErrMissingToken
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrUpstream        = errors.New("failed to fetch dataset")
)

// IsInputError reports whether err was caused by the caller rather than by
// this service or its upstreams.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingRunID) ||
		errors.Is(err, ErrMissingCategory) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrEmptyDataset)
}
