package kurs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kursapi/internal/domain"
)

func TestParseDate_Valid(t *testing.T) {
	got, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2024-3-01",
		"01-03-2024",
		"2024/03/01",
		"2024-03-01T00:00:00Z",
		"2024-13-01",
		"yesterday",
	}

	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDate(raw)
			require.ErrorIs(t, err, domain.ErrInvalidDateFormat)
		})
	}
}

func TestParseDateRange_BothBoundsValidated(t *testing.T) {
	_, _, err := ParseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	_, _, err = ParseDateRange("bad", "2024-03-31")
	require.ErrorIs(t, err, domain.ErrInvalidDateFormat)

	_, _, err = ParseDateRange("2024-03-01", "bad")
	require.ErrorIs(t, err, domain.ErrInvalidDateFormat)
}
