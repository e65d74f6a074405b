package kurs

import (
	"fmt"
	"time"

	"kursapi/internal/domain"
)

// DateLayout is the only accepted wire format for dates.
const DateLayout = "2006-01-02"

// ParseDate validates raw strictly against YYYY-MM-DD and returns midnight UTC
// of that day. Callers get ErrInvalidDateFormat before any storage access.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, raw)
	}
	return t, nil
}

// ParseDateRange validates both range bounds. The range itself is not
// reordered or rejected; an inverted range simply matches nothing.
func ParseDateRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := ParseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
