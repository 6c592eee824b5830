// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the only layout accepted for stored expense dates.
// Lexical comparison of ISO dates equals chronological comparison, which the
// store's range filters rely on.
const DateLayoutISO = "2006-01-02"

// ParseISODate parses a strict YYYY-MM-DD calendar date.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %q", dateStr)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// MonthIndex returns a sequential index for a calendar month (year*12 + month),
// so consecutive months differ by exactly one.
func MonthIndex(date time.Time) int {
	return date.Year()*12 + int(date.Month()) - 1
}

// MonthFromIndex is the inverse of MonthIndex.
func MonthFromIndex(idx int) (int, time.Month) {
	return idx / 12, time.Month(idx%12 + 1)
}

// DaysAgo returns the cutoff timestamp n days before now, truncated to midnight.
func DaysAgo(now time.Time, days int) time.Time {
	cutoff := now.AddDate(0, 0, -days)
	return time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, cutoff.Location())
}
