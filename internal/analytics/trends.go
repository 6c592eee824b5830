package analytics

import (
	"github.com/daud-shahbaz/pywallet/internal/dateutils"
)

// CategoryTrend describes the month-over-month movement of one category.
type CategoryTrend struct {
	Direction       string  `json:"direction"`
	PercentChange   float64 `json:"percent_change"`
	CurrentAverage  float64 `json:"current_average"`
	PreviousAverage float64 `json:"previous_average"`
}

// TrendReport holds the trend analysis result. Status is set instead of
// Trends when there is not enough data to analyze.
type TrendReport struct {
	Trends               map[string]CategoryTrend `json:"trends,omitempty"`
	AnalysisPeriodMonths int                      `json:"analysis_period_months,omitempty"`
	Status               string                   `json:"status,omitempty"`
}

// DetectTrends compares first and last monthly buckets per category over the
// last months*30 days (a day-count approximation, not calendar aligned).
// Categories with fewer than two monthly buckets in the window are omitted
// entirely rather than reported with a "no trend" status.
func (e *Engine) DetectTrends(months int) TrendReport {
	table := e.table()
	if table.Len() < 2 {
		return TrendReport{Status: "Insufficient data for trend analysis"}
	}

	cutoff := dateutils.DaysAgo(e.Now(), months*30)
	recent := table.Since(cutoff)
	if recent.Empty() {
		return TrendReport{Status: "No data in specified period"}
	}

	trends := make(map[string]CategoryTrend)
	for _, category := range e.cfg.Categories {
		catData := recent.Category(category)
		if catData.Len() < 2 {
			continue
		}

		buckets := catData.MonthlyBuckets()
		if len(buckets) < 2 {
			continue
		}

		first := float64(buckets[0].Total)
		last := float64(buckets[len(buckets)-1].Total)

		trend := CategoryTrend{
			Direction:       trendDirection(first, last),
			CurrentAverage:  last,
			PreviousAverage: first,
		}
		if first > 0 {
			trend.PercentChange = (last - first) / first * 100
		}
		trends[category] = trend
	}

	return TrendReport{
		Trends:               trends,
		AnalysisPeriodMonths: months,
	}
}

func trendDirection(first, last float64) string {
	if last > first {
		return "increasing"
	}
	return "decreasing"
}
