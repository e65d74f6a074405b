package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrSnapshotExists    = errors.New("snapshot already exists")
	ErrNoRecordsFound    = errors.New("no records found")
	ErrFetchFailed       = errors.New("rate page fetch failed")
	ErrIngestionFailed   = errors.New("ingestion failed")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// MalformedRowError reports the first table row that failed to parse.
// The whole parse is aborted; there is no partial-success mode.
type MalformedRowError struct {
	Row  int
	Cell string
	Err  error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d: cell %q: %v", e.Row, e.Cell, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
