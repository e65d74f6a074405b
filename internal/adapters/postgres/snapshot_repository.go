package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kursapi/internal/domain"
)

const pgUniqueViolation = "23505"

type SnapshotRepository struct {
	pool *pgxpool.Pool
}

const snapshotColumns = `symbol, date, e_rate_beli, e_rate_jual, tt_counter_beli, tt_counter_jual, bank_notes_beli, bank_notes_jual`

func (r *SnapshotRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]domain.Snapshot, error) {
	const q = `
        select ` + snapshotColumns + `
        from kurs_snapshots
        where date >= $1 and date <= $2
        order by date, symbol;
    `

	rows, err := r.pool.Query(ctx, q, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots by date range: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func (r *SnapshotRepository) FindBySymbolAndDateRange(ctx context.Context, symbol string, start, end time.Time) ([]domain.Snapshot, error) {
	const q = `
        select ` + snapshotColumns + `
        from kurs_snapshots
        where symbol = $1 and date >= $2 and date <= $3
        order by date;
    `

	rows, err := r.pool.Query(ctx, q, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for symbol %q: %w", symbol, err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func (r *SnapshotRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	const q = `select exists(select 1 from kurs_snapshots where date = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe snapshots for date: %w", err)
	}
	return exists, nil
}

func (r *SnapshotRepository) FindOne(ctx context.Context, symbol string, date time.Time) (domain.Snapshot, error) {
	const q = `
        select ` + snapshotColumns + `
        from kurs_snapshots
        where symbol = $1 and date = $2;
    `

	var s domain.Snapshot
	if err := r.pool.QueryRow(ctx, q, symbol, date).Scan(
		&s.Symbol,
		&s.Date,
		&s.ERate.Beli,
		&s.ERate.Jual,
		&s.TTCounter.Beli,
		&s.TTCounter.Jual,
		&s.BankNotes.Beli,
		&s.BankNotes.Jual,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to select snapshot %q/%s: %w", symbol, date.Format("2006-01-02"), err)
	}
	return s, nil
}

// InsertMany writes the whole batch in one transaction; either every snapshot
// lands or none does. A unique-key conflict on (symbol, date) maps to
// domain.ErrSnapshotExists.
func (r *SnapshotRepository) InsertMany(ctx context.Context, snapshots []domain.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	const q = `
        insert into kurs_snapshots (` + snapshotColumns + `)
        values ($1, $2, $3, $4, $5, $6, $7, $8);
    `

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, s := range snapshots {
		batch.Queue(q,
			s.Symbol,
			s.Date,
			s.ERate.Beli,
			s.ERate.Jual,
			s.TTCounter.Beli,
			s.TTCounter.Jual,
			s.BankNotes.Beli,
			s.BankNotes.Jual,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range snapshots {
		if _, execErr := results.Exec(); execErr != nil {
			_ = results.Close()
			var pgErr *pgconn.PgError
			if errors.As(execErr, &pgErr) && pgErr.Code == pgUniqueViolation {
				return fmt.Errorf("%w: %v", domain.ErrSnapshotExists, execErr)
			}
			return fmt.Errorf("failed to insert snapshot batch: %w", execErr)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to close insert batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update fully replaces the six numeric fields of the row matched by
// (symbol, date).
func (r *SnapshotRepository) Update(ctx context.Context, s domain.Snapshot) error {
	const q = `
        update kurs_snapshots
        set e_rate_beli = $3, e_rate_jual = $4,
            tt_counter_beli = $5, tt_counter_jual = $6,
            bank_notes_beli = $7, bank_notes_jual = $8
        where symbol = $1 and date = $2;
    `

	ct, err := r.pool.Exec(ctx, q,
		s.Symbol,
		s.Date,
		s.ERate.Beli,
		s.ERate.Jual,
		s.TTCounter.Beli,
		s.TTCounter.Jual,
		s.BankNotes.Beli,
		s.BankNotes.Jual,
	)
	if err != nil {
		return fmt.Errorf("failed to update snapshot %q/%s: %w", s.Symbol, s.Date.Format("2006-01-02"), err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrSnapshotNotFound
	}
	return nil
}

func (r *SnapshotRepository) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	const q = `delete from kurs_snapshots where date = $1;`

	ct, err := r.pool.Exec(ctx, q, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete snapshots by date: %w", err)
	}
	return ct.RowsAffected(), nil
}

func scanSnapshots(rows pgx.Rows) ([]domain.Snapshot, error) {
	snapshots := make([]domain.Snapshot, 0, 32)
	for rows.Next() {
		var s domain.Snapshot
		if err := rows.Scan(
			&s.Symbol,
			&s.Date,
			&s.ERate.Beli,
			&s.ERate.Jual,
			&s.TTCounter.Beli,
			&s.TTCounter.Jual,
			&s.BankNotes.Beli,
			&s.BankNotes.Jual,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}
