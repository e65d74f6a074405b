package kurs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"kursapi/internal/adapters"
	"kursapi/internal/domain"
)

// IngestResult reports the outcome of one ingestion attempt.
type IngestResult struct {
	AlreadyIngested bool
	Inserted        int
}

// Ingestor runs the full ingestion pipeline (fetch, parse, build, bulk insert)
// for one calendar day, at most once. Concurrent attempts for the same day collapse
// into a single flight; the unique (symbol, date) index in the store is the
// backstop against a race with another process.
type Ingestor struct {
	repo    adapters.SnapshotRepository
	fetcher adapters.RatePageFetcher
	cache   adapters.IngestMarkCache
	flight  singleflight.Group
}

func NewIngestor(repo adapters.SnapshotRepository, fetcher adapters.RatePageFetcher, cache adapters.IngestMarkCache) *Ingestor {
	return &Ingestor{repo: repo, fetcher: fetcher, cache: cache}
}

// Ingest ingests the rate table snapshot for the day of targetDate.
// A day that already has any records short-circuits with AlreadyIngested and
// performs no network call. Any fetch or parse failure aborts the whole
// attempt; nothing is persisted partially and nothing is retried here.
func (ing *Ingestor) Ingest(ctx context.Context, targetDate time.Time) (IngestResult, error) {
	day := domain.Day(targetDate)
	key := day.Format(DateLayout)

	v, err, _ := ing.flight.Do(key, func() (any, error) {
		return ing.ingestDay(ctx, day, key)
	})
	if err != nil {
		return IngestResult{}, err
	}
	return v.(IngestResult), nil
}

func (ing *Ingestor) ingestDay(ctx context.Context, day time.Time, dayKey string) (IngestResult, error) {
	execID := uuid.NewString()

	// STEP 1: existence probe. The check is by date only, on purpose: any prior
	// records for the day block further ingestion for that day.
	if ing.cache.Ingested(day) {
		logrus.Infof("Snapshots for %s already ingested (cached); execID: %s", dayKey, execID)
		return IngestResult{AlreadyIngested: true}, nil
	}
	exists, err := ing.repo.ExistsForDate(ctx, day)
	if err != nil {
		return IngestResult{}, fmt.Errorf("failed to probe existing snapshots for %s: %w", dayKey, err)
	}
	if exists {
		ing.cache.MarkIngested(day)
		logrus.Infof("Snapshots for %s already ingested; execID: %s", dayKey, execID)
		return IngestResult{AlreadyIngested: true}, nil
	}

	// STEP 2: fetching the rate page
	markup, err := ing.fetcher.FetchRateTable(ctx)
	if err != nil {
		return IngestResult{}, err
	}

	// STEP 3: parsing the table; first malformed row aborts the attempt
	rows, err := ParseRateTable(markup)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %w", domain.ErrIngestionFailed, err)
	}
	if len(rows) == 0 {
		return IngestResult{}, fmt.Errorf("%w: rate table yielded no rows", domain.ErrIngestionFailed)
	}
	logrus.Infof("Parsed %d rate table rows for %s; execID: %s", len(rows), dayKey, execID)

	// STEP 4: building snapshots for the target day
	snapshots := make([]domain.Snapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, BuildSnapshot(row, day))
	}

	// STEP 5: one atomic batch insert. A unique-key conflict means another
	// ingestion won the race between the probe and here.
	if err = ing.repo.InsertMany(ctx, snapshots); err != nil {
		if errors.Is(err, domain.ErrSnapshotExists) {
			ing.cache.MarkIngested(day)
			logrus.Infof("Snapshots for %s were ingested concurrently; execID: %s", dayKey, execID)
			return IngestResult{AlreadyIngested: true}, nil
		}
		return IngestResult{}, fmt.Errorf("%w: %w", domain.ErrIngestionFailed, err)
	}

	ing.cache.MarkIngested(day)
	logrus.Infof("%d snapshots ingested for %s; execID: %s", len(snapshots), dayKey, execID)
	return IngestResult{Inserted: len(snapshots)}, nil
}
