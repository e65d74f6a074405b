package kurs

import (
	"time"

	"kursapi/internal/domain"
)

// BuildSnapshot maps one parsed row onto a Snapshot for the target day.
// Pure mapping, no validation: the parser already normalized every cell. Kept
// separate so tests can replay rows without touching the network.
func BuildSnapshot(row Row, targetDate time.Time) domain.Snapshot {
	return domain.Snapshot{
		Symbol:    row.Symbol,
		Date:      domain.Day(targetDate),
		ERate:     domain.RateQuote{Beli: row.Cells[0], Jual: row.Cells[1]},
		TTCounter: domain.RateQuote{Beli: row.Cells[2], Jual: row.Cells[3]},
		BankNotes: domain.RateQuote{Beli: row.Cells[4], Jual: row.Cells[5]},
	}
}
