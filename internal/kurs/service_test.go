package kurs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kursapi/internal/domain"
)

// --- Testify mocks ---

type MockSnapshotRepository struct{ mock.Mock }

func (m *MockSnapshotRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error) {
	args := m.Called(ctx, start, end)
	snapshots, _ := args.Get(0).([]domain.Snapshot)
	return snapshots, args.Error(1)
}

func (m *MockSnapshotRepository) FindBySymbolAndDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.Snapshot, error) {
	args := m.Called(ctx, symbol, start, end)
	snapshots, _ := args.Get(0).([]domain.Snapshot)
	return snapshots, args.Error(1)
}

func (m *MockSnapshotRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockSnapshotRepository) FindOne(ctx context.Context, symbol string, date time.Time) (domain.Snapshot, error) {
	args := m.Called(ctx, symbol, date)
	s, _ := args.Get(0).(domain.Snapshot)
	return s, args.Error(1)
}

func (m *MockSnapshotRepository) InsertMany(ctx context.Context, snapshots []domain.Snapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Update(ctx context.Context, snapshot domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	args := m.Called(ctx, date)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type MockIngestMarkCache struct{ mock.Mock }

func (m *MockIngestMarkCache) Ingested(date time.Time) bool {
	args := m.Called(date)
	return args.Bool(0)
}

func (m *MockIngestMarkCache) MarkIngested(date time.Time) {
	m.Called(date)
}

func (m *MockIngestMarkCache) Unmark(date time.Time) {
	m.Called(date)
}

func testSnapshot(symbol string, date time.Time) domain.Snapshot {
	return domain.Snapshot{
		Symbol:    symbol,
		Date:      domain.Day(date),
		ERate:     domain.RateQuote{Beli: decimal.RequireFromString("14900.00"), Jual: decimal.RequireFromString("15100.00")},
		TTCounter: domain.RateQuote{Beli: decimal.RequireFromString("14950.00"), Jual: decimal.RequireFromString("15050.00")},
		BankNotes: domain.RateQuote{Beli: decimal.RequireFromString("14800.00"), Jual: decimal.RequireFromString("15200.00")},
	}
}

// --- FindByDateRange ---

func TestService_FindByDateRange_Success(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	mockCache := new(MockIngestMarkCache)
	svc := NewService(mockRepo, mockCache)

	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	want := []domain.Snapshot{testSnapshot("USD", start)}

	mockRepo.On("FindByDateRange", mock.Anything, start, end).Return(want, nil).Once()

	got, err := svc.FindByDateRange(ctx, start, end)

	require.NoError(t, err)
	require.Equal(t, want, got)
	mockRepo.AssertExpectations(t)
}

func TestService_FindByDateRange_EmptyIsNoRecordsFound(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mockRepo.On("FindByDateRange", mock.Anything, start, end).Return([]domain.Snapshot{}, nil).Once()

	_, err := svc.FindByDateRange(context.Background(), start, end)

	require.ErrorIs(t, err, domain.ErrNoRecordsFound)
	mockRepo.AssertExpectations(t)
}

func TestService_FindByDateRange_RepoError(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	wantErr := errors.New("db temporarily unavailable")
	mockRepo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, wantErr).Once()

	_, err := svc.FindByDateRange(context.Background(), time.Now(), time.Now())

	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrNoRecordsFound)
	require.Equal(t, wantErr, err)
}

// --- FindBySymbolAndDateRange ---

func TestService_FindBySymbolAndDateRange_Success(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	want := []domain.Snapshot{testSnapshot("USD", start), testSnapshot("USD", end)}

	mockRepo.On("FindBySymbolAndDateRange", mock.Anything, "USD", start, end).Return(want, nil).Once()

	got, err := svc.FindBySymbolAndDateRange(context.Background(), "USD", start, end)

	require.NoError(t, err)
	require.Equal(t, want, got)
	mockRepo.AssertExpectations(t)
}

func TestService_FindBySymbolAndDateRange_Empty(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	mockRepo.On("FindBySymbolAndDateRange", mock.Anything, "CHF", mock.Anything, mock.Anything).Return(nil, nil).Once()

	_, err := svc.FindBySymbolAndDateRange(context.Background(), "CHF", time.Now(), time.Now())

	require.ErrorIs(t, err, domain.ErrNoRecordsFound)
}

// --- Create ---

func TestService_Create_Success(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshot := testSnapshot("USD", date)

	mockRepo.On("FindOne", mock.Anything, "USD", date).Return(domain.Snapshot{}, domain.ErrSnapshotNotFound).Once()
	mockRepo.On("InsertMany", mock.Anything, []domain.Snapshot{snapshot}).Return(nil).Once()

	require.NoError(t, svc.Create(context.Background(), snapshot))
	mockRepo.AssertExpectations(t)
}

func TestService_Create_AlreadyExists(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshot := testSnapshot("USD", date)

	mockRepo.On("FindOne", mock.Anything, "USD", date).Return(snapshot, nil).Once()

	err := svc.Create(context.Background(), snapshot)

	require.ErrorIs(t, err, domain.ErrSnapshotExists)
	mockRepo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

// --- Update ---

func TestService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	snapshot := testSnapshot("USD", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	mockRepo.On("Update", mock.Anything, snapshot).Return(domain.ErrSnapshotNotFound).Once()

	err := svc.Update(context.Background(), snapshot)

	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	mockRepo.AssertExpectations(t)
}

func TestService_Update_Success(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	svc := NewService(mockRepo, new(MockIngestMarkCache))

	snapshot := testSnapshot("USD", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	mockRepo.On("Update", mock.Anything, snapshot).Return(nil).Once()

	require.NoError(t, svc.Update(context.Background(), snapshot))
	mockRepo.AssertExpectations(t)
}

// --- DeleteByDate ---

func TestService_DeleteByDate_Success_UnmarksCache(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	mockCache := new(MockIngestMarkCache)
	svc := NewService(mockRepo, mockCache)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("DeleteByDate", mock.Anything, date).Return(int64(12), nil).Once()
	mockCache.On("Unmark", date).Return().Once()

	count, err := svc.DeleteByDate(context.Background(), date)

	require.NoError(t, err)
	require.Equal(t, int64(12), count)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_DeleteByDate_NothingToDelete(t *testing.T) {
	mockRepo := new(MockSnapshotRepository)
	mockCache := new(MockIngestMarkCache)
	svc := NewService(mockRepo, mockCache)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("DeleteByDate", mock.Anything, date).Return(int64(0), nil).Once()

	_, err := svc.DeleteByDate(context.Background(), date)

	require.ErrorIs(t, err, domain.ErrNoRecordsFound)
	mockCache.AssertNotCalled(t, "Unmark", mock.Anything)
}
