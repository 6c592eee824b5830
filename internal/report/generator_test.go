package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.Data.Directory = dir
	cfg.Data.ExpensesFile = "expenses.json"
	cfg.Data.ModelsDir = "ml_models"
	cfg.Currency = "PKR"
	cfg.Categories = append([]string(nil), config.DefaultCategories...)
	cfg.Validation.MaxAmount = 1000000
	cfg.Validation.MaxNoteLength = 500
	cfg.ML.AnomalySigma = 2.0
	cfg.ML.MinNotesForTraining = 50
	cfg.ML.MinDataPoints = 20
	cfg.ML.KMeansClusters = 3
	cfg.ML.PredictionWindowMonths = 6
	cfg.ML.ForecastAheadMonths = 3
	return cfg
}

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T) (*Generator, *store.ExpenseStore) {
	t.Helper()
	dir := t.TempDir()
	cfg := testConfig(dir)
	st := store.NewExpenseStore(cfg, filepath.Join(dir, "expenses.json"))

	g := NewGenerator(cfg, st)
	g.Now = func() time.Time { return fixedNow }
	g.engine.Now = g.Now
	return g, st
}

func add(t *testing.T, st *store.ExpenseStore, amount int64, category, date string) {
	t.Helper()
	_, err := st.Add(amount, category, date, "", "")
	require.NoError(t, err)
}

func TestMonthlyReport(t *testing.T) {
	g, st := newTestGenerator(t)
	add(t, st, 12000, "Food", "2025-06-01")
	add(t, st, 3000, "Transport", "2025-06-10")
	add(t, st, 5000, "Food", "2025-05-20")

	report, err := g.Monthly(2025, 6)
	require.NoError(t, err)

	assert.Equal(t, "Jun 2025", report.Period)
	assert.Equal(t, int64(15000), report.Summary.Total)
	assert.Equal(t, 2, report.Summary.TransactionCount)

	// Budget performance against the defaults: Food 12000 of 10000.
	food := report.Budget.Categories["Food"]
	assert.Equal(t, "over_budget", food.Status)
	assert.InDelta(t, 120.0, food.UtilizationPercent, 1e-9)
	assert.InDelta(t, -2000.0, food.Remaining, 1e-9)

	transport := report.Budget.Categories["Transport"]
	assert.Equal(t, "on_track", transport.Status)

	require.Len(t, report.TopExpenses, 2)
	assert.Equal(t, "Food", report.TopExpenses[0].Category)
	assert.Equal(t, 1, report.TopExpenses[0].Rank)

	assert.Equal(t, "Food", report.Insights.MostExpensiveCategory)
	assert.InDelta(t, 80.0, report.Insights.CategoryConcentration["Food"], 1e-9)
	assert.Equal(t, int64(12000), report.Insights.HighestSpendingDay)
	assert.Equal(t, int64(3000), report.Insights.LowestSpendingDay)

	// Month-over-month: 15000 now vs 5000 in May.
	assert.Equal(t, int64(5000), report.MonthComparison.PreviousMonthTotal)
	assert.Equal(t, int64(10000), report.MonthComparison.ChangeAmount)
	assert.InDelta(t, 200.0, report.MonthComparison.ChangePercent, 1e-9)
	assert.Equal(t, "increased", report.MonthComparison.Trend)
}

func TestMonthlyReportDefaultsToCurrentMonth(t *testing.T) {
	g, st := newTestGenerator(t)
	add(t, st, 100, "Food", "2025-06-01")

	report, err := g.Monthly(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, 6, report.Month)
}

func TestMonthlyReportJanuaryComparesToDecember(t *testing.T) {
	g, st := newTestGenerator(t)
	add(t, st, 400, "Food", "2024-12-20")
	add(t, st, 100, "Food", "2025-01-05")

	report, err := g.Monthly(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(400), report.MonthComparison.PreviousMonthTotal)
	assert.Equal(t, "decreased", report.MonthComparison.Trend)
}

func TestYearlyReport(t *testing.T) {
	g, st := newTestGenerator(t)
	add(t, st, 100, "Food", "2025-01-10")
	add(t, st, 300, "Food", "2025-06-10")
	add(t, st, 200, "Transport", "2025-06-11")

	report, err := g.Yearly(2025)
	require.NoError(t, err)

	assert.Equal(t, "2025", report.Period)
	require.Len(t, report.MonthlyBreakdown, 12)
	assert.Equal(t, int64(600), report.Overview.TotalSpending)
	assert.Equal(t, 3, report.Overview.TotalTransactions)
	assert.InDelta(t, 50.0, report.Overview.AverageMonthly, 1e-9)
	assert.Equal(t, "Food", report.Overview.TopCategory)
	assert.Equal(t, int64(400), report.Overview.TopCategoryAmount)

	assert.InDelta(t, 66.666, report.CategoryPercentage["Food"], 0.01)

	assert.Equal(t, "Jun", report.Trends.HighestSpendingMonth)
	assert.Equal(t, int64(500), report.Trends.HighestAmount)
	assert.Equal(t, int64(0), report.Trends.LowestAmount)
}

func TestYearlyReportEmpty(t *testing.T) {
	g, _ := newTestGenerator(t)

	report, err := g.Yearly(2025)
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.Overview.TotalSpending)
	assert.Equal(t, "N/A", report.Overview.TopCategory)
}

func TestExportReport(t *testing.T) {
	g, st := newTestGenerator(t)
	add(t, st, 100, "Food", "2025-06-01")

	report, err := g.Monthly(2025, 6)
	require.NoError(t, err)

	outputPath := filepath.Join(t.TempDir(), "report.json")
	path, err := g.Export(report, outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded MonthlyReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Period, decoded.Period)
	assert.Equal(t, report.Summary.Total, decoded.Summary.Total)
}

func TestExportReportDefaultPath(t *testing.T) {
	g, st := newTestGenerator(t)
	add(t, st, 100, "Food", "2025-06-01")

	report, err := g.Monthly(2025, 6)
	require.NoError(t, err)

	path, err := g.Export(report, "")
	require.NoError(t, err)
	assert.Contains(t, path, "report_2025-06.json")
	assert.FileExists(t, path)
}
