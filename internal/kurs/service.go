package kurs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kursapi/internal/adapters"
	"kursapi/internal/domain"
)

// Service exposes the read and mutation paths over the snapshot store.
// An empty result set surfaces as ErrNoRecordsFound so callers can tell
// "valid query, nothing matched" apart from a storage failure.
type Service struct {
	repo  adapters.SnapshotRepository
	cache adapters.IngestMarkCache
}

func NewService(repo adapters.SnapshotRepository, cache adapters.IngestMarkCache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error) {
	snapshots, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, domain.ErrNoRecordsFound
	}
	return snapshots, nil
}

func (s *Service) FindBySymbolAndDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.Snapshot, error) {
	snapshots, err := s.repo.FindBySymbolAndDateRange(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, domain.ErrNoRecordsFound
	}
	return snapshots, nil
}

// Create inserts one snapshot; it fails with ErrSnapshotExists when a record
// with the same (symbol, date) key is already stored.
func (s *Service) Create(ctx context.Context, snapshot domain.Snapshot) error {
	snapshot.Date = domain.Day(snapshot.Date)
	_, err := s.repo.FindOne(ctx, snapshot.Symbol, snapshot.Date)
	if err == nil {
		return domain.ErrSnapshotExists
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return fmt.Errorf("failed to check for existing snapshot: %w", err)
	}
	return s.repo.InsertMany(ctx, []domain.Snapshot{snapshot})
}

// Update fully replaces the three rate pairs of the snapshot matched by
// (symbol, date). ErrSnapshotNotFound when no record matches.
func (s *Service) Update(ctx context.Context, snapshot domain.Snapshot) error {
	snapshot.Date = domain.Day(snapshot.Date)
	return s.repo.Update(ctx, snapshot)
}

// DeleteByDate removes every snapshot of the given day and reports how many.
// Deleting a day with no records is ErrNoRecordsFound, not a silent success.
func (s *Service) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	day := domain.Day(date)
	count, err := s.repo.DeleteByDate(ctx, day)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, domain.ErrNoRecordsFound
	}
	// The day is ingestable again.
	s.cache.Unmark(day)
	return count, nil
}
