// Package analytics implements the financial analysis and reporting engine:
// daily/monthly/category summaries, trend detection and budget alerting over
// the expense store's tabular view.
//
// Every operation performs a full load-compute-return cycle against the store
// and returns empty-state defaults rather than erroring when the backing
// table is empty.
package analytics

import (
	"fmt"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/dateutils"
	"github.com/daud-shahbaz/pywallet/internal/models"
	"github.com/daud-shahbaz/pywallet/internal/store"

	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Engine computes summaries over one owner's records. The owner filter and
// the clock are explicit so callers never depend on ambient session state.
type Engine struct {
	store *store.ExpenseStore
	cfg   *config.Config

	// Owner restricts every computation to this username; empty means all.
	Owner string

	// Now supplies the current time. Tests override it to pin "today".
	Now func() time.Time
}

// NewEngine creates an analytics engine over the given store.
func NewEngine(cfg *config.Config, st *store.ExpenseStore) *Engine {
	return &Engine{
		store: st,
		cfg:   cfg,
		Now:   time.Now,
	}
}

func (e *Engine) table() models.Table {
	return e.store.Table(e.Owner)
}

// DailySummary holds one calendar day's totals.
type DailySummary struct {
	Date             string           `json:"date"`
	Total            int64            `json:"total"`
	ByCategory       map[string]int64 `json:"by_category"`
	TransactionCount int              `json:"transaction_count"`
}

// Daily computes the expense summary for one calendar day.
// An empty date defaults to today.
func (e *Engine) Daily(date string) (DailySummary, error) {
	if date == "" {
		date = dateutils.ToISODate(e.Now())
	}
	day, err := dateutils.ParseISODate(date)
	if err != nil {
		return DailySummary{}, err
	}

	table := e.table().OnDay(day.Year(), day.Month(), day.Day())

	return DailySummary{
		Date:             date,
		Total:            table.Total(),
		ByCategory:       table.ByCategory(),
		TransactionCount: table.Len(),
	}, nil
}

// MonthlySummary holds one calendar month's totals, including a sparse
// day-of-month breakdown (only days with activity are present).
type MonthlySummary struct {
	Year             int              `json:"year"`
	Month            int              `json:"month"`
	MonthName        string           `json:"month_name"`
	Total            int64            `json:"total"`
	ByCategory       map[string]int64 `json:"by_category"`
	DailyBreakdown   map[int]int64    `json:"daily_breakdown"`
	TransactionCount int              `json:"transaction_count"`
}

// Monthly computes the expense summary for one calendar month.
// Zero year/month default to the current month.
func (e *Engine) Monthly(year, month int) (MonthlySummary, error) {
	now := e.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return MonthlySummary{}, fmt.Errorf("month must be between 1 and 12, got: %d", month)
	}

	table := e.table().InMonth(year, time.Month(month))

	breakdown := make(map[int]int64)
	for _, r := range table.Rows {
		breakdown[r.Date.Day()] += r.Amount
	}

	return MonthlySummary{
		Year:             year,
		Month:            month,
		MonthName:        config.MonthsAbbreviation[month-1],
		Total:            table.Total(),
		ByCategory:       table.ByCategory(),
		DailyBreakdown:   breakdown,
		TransactionCount: table.Len(),
	}, nil
}

// CategoryStats holds per-category spending statistics for a period.
// Percentage is relative to the filtered period's total, not all-time spend.
type CategoryStats struct {
	Total      int64   `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Average    float64 `json:"average"`
}

// CategorySummary computes per-category statistics over an inclusive date
// range; empty bounds leave that side unbounded.
func (e *Engine) CategorySummary(startDate, endDate string) map[string]CategoryStats {
	table := e.store.FilterTable(store.Filter{StartDate: startDate, EndDate: endDate})
	if e.Owner != "" {
		var rows []models.Row
		for _, r := range table.Rows {
			if r.Username == e.Owner {
				rows = append(rows, r)
			}
		}
		table = models.Table{Rows: rows}
	}

	result := make(map[string]CategoryStats)
	if table.Empty() {
		return result
	}

	totalSpending := table.Total()
	counts := make(map[string]int)
	for _, r := range table.Rows {
		counts[r.Category]++
	}

	for category, sum := range table.ByCategory() {
		count := counts[category]
		stats := CategoryStats{
			Total:   sum,
			Count:   count,
			Average: float64(sum) / float64(count),
		}
		if totalSpending > 0 {
			stats.Percentage = float64(sum) / float64(totalSpending) * 100
		}
		result[category] = stats
	}
	return result
}

// RangeSummary holds a comprehensive summary for a date range.
type RangeSummary struct {
	Period             string           `json:"period"`
	Total              int64            `json:"total"`
	AverageDaily       float64          `json:"average_daily"`
	AverageTransaction float64          `json:"average_transaction"`
	ByCategory         map[string]int64 `json:"by_category"`
	TransactionCount   int              `json:"transaction_count"`
	DayCount           int              `json:"day_count"`
}

// DateRange computes totals and per-day / per-transaction averages over an
// inclusive date range.
func (e *Engine) DateRange(startDate, endDate string) (RangeSummary, error) {
	summary := RangeSummary{
		Period:     fmt.Sprintf("%s to %s", startDate, endDate),
		ByCategory: map[string]int64{},
	}

	table := e.store.FilterTable(store.Filter{StartDate: startDate, EndDate: endDate})
	if table.Empty() {
		return summary, nil
	}

	start, err := dateutils.ParseISODate(startDate)
	if err != nil {
		return summary, err
	}
	end, err := dateutils.ParseISODate(endDate)
	if err != nil {
		return summary, err
	}

	dayCount := int(end.Sub(start).Hours()/24) + 1
	total := table.Total()

	summary.Total = total
	summary.ByCategory = table.ByCategory()
	summary.TransactionCount = table.Len()
	summary.DayCount = dayCount
	if dayCount > 0 {
		summary.AverageDaily = float64(total) / float64(dayCount)
	}
	if table.Len() > 0 {
		summary.AverageTransaction = float64(total) / float64(table.Len())
	}
	return summary, nil
}
