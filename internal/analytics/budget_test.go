package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetAlertEmptyStore(t *testing.T) {
	engine, _ := newTestEngine(t)

	budgets := map[string]float64{"Food": 10000, "Transport": 5000}
	report := engine.BudgetAlert(budgets)

	assert.Equal(t, "No data", report.Status)
	assert.Equal(t, 2, report.OnTrackCount, "with no data every category is on track")
	assert.Empty(t, report.Alerts)
	assert.Equal(t, "Jun", report.Month)
	assert.Equal(t, 2025, report.Year)
}

func TestBudgetAlertClassification(t *testing.T) {
	engine, st := newTestEngine(t)
	add(t, st, 12500, "Food", "2025-06-10")     // 125% of 10000: critical
	add(t, st, 4200, "Transport", "2025-06-11") // 84% of 5000: warning
	add(t, st, 500, "Health", "2025-06-12")     // well under 3000: on track

	budgets := map[string]float64{"Food": 10000, "Transport": 5000, "Health": 3000}
	report := engine.BudgetAlert(budgets)

	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, 1, report.WarningCount)
	assert.Equal(t, 1, report.OnTrackCount)
	assert.Equal(t, 3, report.TotalCategories)
	require.Len(t, report.Alerts, 2)

	// Alerts come back in sorted category order.
	assert.Equal(t, "Food", report.Alerts[0].Category)
	assert.Equal(t, StatusCritical, report.Alerts[0].Status)
	assert.Contains(t, report.Alerts[0].Message, "Food budget exceeded by 2500.00")

	assert.Equal(t, "Transport", report.Alerts[1].Category)
	assert.Equal(t, StatusWarning, report.Alerts[1].Status)
	assert.Contains(t, report.Alerts[1].Message, "84.0% of budget")
}

func TestBudgetAlertExactly100PercentIsCritical(t *testing.T) {
	engine, st := newTestEngine(t)
	add(t, st, 10000, "Food", "2025-06-10")

	report := engine.BudgetAlert(map[string]float64{"Food": 10000})
	assert.Equal(t, 1, report.CriticalCount)
}

func TestBudgetAlertExactly80PercentIsWarning(t *testing.T) {
	engine, st := newTestEngine(t)
	add(t, st, 8000, "Food", "2025-06-10")

	report := engine.BudgetAlert(map[string]float64{"Food": 10000})
	assert.Equal(t, 1, report.WarningCount)
	assert.Equal(t, 0, report.CriticalCount)
}

func TestBudgetAlertIgnoresOtherMonths(t *testing.T) {
	engine, st := newTestEngine(t)
	add(t, st, 99999, "Food", "2025-05-31")

	report := engine.BudgetAlert(map[string]float64{"Food": 10000})
	assert.Equal(t, 1, report.OnTrackCount)
	assert.Empty(t, report.Alerts)
}

func TestBudgetAlertNilBudgetsUseDefaults(t *testing.T) {
	engine, st := newTestEngine(t)
	add(t, st, 100, "Food", "2025-06-10")

	report := engine.BudgetAlert(nil)
	assert.Equal(t, 13, report.TotalCategories, "default budgets cover every category")
}
