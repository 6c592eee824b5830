package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	date, err := ParseISODate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 15, date.Day())

	// Surrounding whitespace is tolerated.
	_, err = ParseISODate(" 2025-03-15 ")
	assert.NoError(t, err)

	for _, bad := range []string{"15/03/2025", "2025-3-15", "2025-03-15T10:00:00", "garbage", ""} {
		_, err := ParseISODate(bad)
		assert.Error(t, err, "should reject %q", bad)
	}
}

func TestToISODateRoundTrip(t *testing.T) {
	date, err := ParseISODate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", ToISODate(date))
}

func TestStartAndEndOfMonth(t *testing.T) {
	date := time.Date(2024, time.February, 15, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, 1, StartOfMonth(date).Day())
	assert.Equal(t, 29, EndOfMonth(date).Day(), "2024 is a leap year")

	jan := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, EndOfMonth(jan).Day())
}

func TestMonthIndexConsecutive(t *testing.T) {
	dec := time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, MonthIndex(jan)-MonthIndex(dec), "year boundary months are adjacent")

	year, month := MonthFromIndex(MonthIndex(jan))
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.January, month)
}

func TestDaysAgoTruncatesToMidnight(t *testing.T) {
	now := time.Date(2025, time.June, 15, 18, 45, 30, 0, time.UTC)

	cutoff := DaysAgo(now, 7)
	assert.Equal(t, time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC), cutoff)
}
