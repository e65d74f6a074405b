package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote holds the buy (beli) and sell (jual) values of one rate category.
type RateQuote struct {
	Beli decimal.Decimal `json:"beli"`
	Jual decimal.Decimal `json:"jual"`
}

// Snapshot is one exchange-rate observation for one symbol on one calendar day.
// (Symbol, Date) is the natural key; the store keeps at most one row per key.
type Snapshot struct {
	Symbol    string
	Date      time.Time
	ERate     RateQuote
	TTCounter RateQuote
	BankNotes RateQuote
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
