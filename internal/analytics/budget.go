package analytics

import (
	"fmt"
	"sort"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/models"
)

// Budget status classifications.
const (
	StatusOnTrack  = "on_track"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// BudgetAlertEntry describes one category that is at or over its limit.
type BudgetAlertEntry struct {
	Category   string  `json:"category"`
	Status     string  `json:"status"`
	Budget     float64 `json:"budget"`
	Spending   int64   `json:"spending"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

// BudgetReport holds the current-month spend checked against budgets.
type BudgetReport struct {
	Month           string             `json:"month"`
	Year            int                `json:"year"`
	Status          string             `json:"status,omitempty"`
	Alerts          []BudgetAlertEntry `json:"alerts"`
	OnTrackCount    int                `json:"on_track_count"`
	WarningCount    int                `json:"warning_count"`
	CriticalCount   int                `json:"critical_count"`
	TotalCategories int                `json:"total_categories"`
}

// BudgetAlert checks current-calendar-month spending against the given
// category limits. Spending at 100% or more of budget is critical, 80% or
// more is a warning, anything below is on track. With an empty store every
// category is on track by definition.
func (e *Engine) BudgetAlert(budgets map[string]float64) BudgetReport {
	if budgets == nil {
		budgets = config.DefaultBudgets
	}

	now := e.Now()
	report := BudgetReport{
		Month:           config.MonthsAbbreviation[int(now.Month())-1],
		Year:            now.Year(),
		Alerts:          []BudgetAlertEntry{},
		TotalCategories: len(budgets),
	}

	table := e.table()
	if table.Empty() {
		report.Status = "No data"
		report.OnTrackCount = len(budgets)
		return report
	}

	currentMonth := table.InMonth(now.Year(), now.Month())
	spendByCategory := currentMonth.ByCategory()

	// Deterministic alert order regardless of map iteration.
	categories := make([]string, 0, len(budgets))
	for category := range budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		budget := budgets[category]
		spending := spendByCategory[category]
		percentage := models.BudgetPercentage(spending, budget)

		switch {
		case percentage >= 100:
			report.Alerts = append(report.Alerts, BudgetAlertEntry{
				Category:   category,
				Status:     StatusCritical,
				Budget:     budget,
				Spending:   spending,
				Percentage: percentage,
				Message: fmt.Sprintf("%s budget exceeded by %s",
					category, models.OverspendAmount(spending, budget)),
			})
			report.CriticalCount++
		case percentage >= 80:
			report.Alerts = append(report.Alerts, BudgetAlertEntry{
				Category:   category,
				Status:     StatusWarning,
				Budget:     budget,
				Spending:   spending,
				Percentage: percentage,
				Message:    fmt.Sprintf("%s at %.1f%% of budget", category, percentage),
			})
			report.WarningCount++
		default:
			report.OnTrackCount++
		}
	}

	return report
}
