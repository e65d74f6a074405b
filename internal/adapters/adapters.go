package adapters

import (
	"context"
	"time"

	"kursapi/internal/domain"
)

type RatePageFetcher interface {
	FetchRateTable(ctx context.Context) ([]byte, error)
}

type SnapshotRepository interface {
	FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error)
	FindBySymbolAndDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.Snapshot, error)
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	FindOne(ctx context.Context, symbol string, date time.Time) (domain.Snapshot, error)
	InsertMany(ctx context.Context, snapshots []domain.Snapshot) error
	Update(ctx context.Context, snapshot domain.Snapshot) error
	DeleteByDate(ctx context.Context, date time.Time) (int64, error)
}

// IngestMarkCache remembers calendar days that are known to be fully ingested,
// so repeated ingestion triggers skip the existence probe against the store.
type IngestMarkCache interface {
	Ingested(date time.Time) bool
	MarkIngested(date time.Time)
	Unmark(date time.Time)
}
