package kurs

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"kursapi/internal/domain"
)

// NormalizeNumber parses a locale-formatted cell like "14.900,00" into an exact
// decimal. "." is a thousands separator and "," the decimal separator. Anything
// that is not a valid non-negative number after cleaning fails with ErrMalformedNumber.
func NormalizeNumber(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty cell", domain.ErrMalformedNumber)
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrMalformedNumber, raw)
	}
	if value.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: negative value %q", domain.ErrMalformedNumber, raw)
	}
	return value, nil
}
