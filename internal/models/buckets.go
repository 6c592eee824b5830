package models

import (
	"time"

	"github.com/daud-shahbaz/pywallet/internal/dateutils"
)

// MonthBucket is the sum of amounts within one calendar month.
type MonthBucket struct {
	Year  int
	Month time.Month
	Total int64
}

// MonthlyBuckets resamples the table into calendar-month buckets spanning the
// range from the earliest to the latest row. Months without activity inside
// that range are present with a zero total, matching a month-start resample
// over a continuous series.
func (t Table) MonthlyBuckets() []MonthBucket {
	if t.Empty() {
		return nil
	}

	first := dateutils.MonthIndex(t.Rows[0].Date)
	last := first
	for _, r := range t.Rows[1:] {
		idx := dateutils.MonthIndex(r.Date)
		if idx < first {
			first = idx
		}
		if idx > last {
			last = idx
		}
	}

	totals := make(map[int]int64)
	for _, r := range t.Rows {
		totals[dateutils.MonthIndex(r.Date)] += r.Amount
	}

	buckets := make([]MonthBucket, 0, last-first+1)
	for idx := first; idx <= last; idx++ {
		year, month := dateutils.MonthFromIndex(idx)
		buckets = append(buckets, MonthBucket{Year: year, Month: month, Total: totals[idx]})
	}
	return buckets
}

// BucketTotals extracts the totals of a bucket series as float64 values.
func BucketTotals(buckets []MonthBucket) []float64 {
	totals := make([]float64, len(buckets))
	for i, b := range buckets {
		totals[i] = float64(b.Total)
	}
	return totals
}
