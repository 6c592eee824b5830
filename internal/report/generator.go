// Package report assembles monthly and yearly financial reports from the
// analytics engine and exports them as JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/analytics"
	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/fileutils"
	"github.com/daud-shahbaz/pywallet/internal/store"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Generator builds reports over one store.
type Generator struct {
	engine  *analytics.Engine
	budgets *store.BudgetStore
	cfg     *config.Config

	// Now supplies the current time; tests override it.
	Now func() time.Time
}

// NewGenerator creates a report generator over the given store.
func NewGenerator(cfg *config.Config, st *store.ExpenseStore) *Generator {
	return &Generator{
		engine:  analytics.NewEngine(cfg, st),
		budgets: store.NewBudgetStore("", ""),
		cfg:     cfg,
		Now:     time.Now,
	}
}

// CategoryPerformance describes one category's budget utilization.
type CategoryPerformance struct {
	Budget             float64 `json:"budget"`
	Spent              int64   `json:"spent"`
	UtilizationPercent float64 `json:"utilization_percent"`
	Status             string  `json:"status"`
	Remaining          float64 `json:"remaining"`
}

// BudgetPerformance summarizes spend against budgets for the month.
type BudgetPerformance struct {
	TotalBudget float64                        `json:"total_budget"`
	TotalSpent  int64                          `json:"total_spent"`
	Categories  map[string]CategoryPerformance `json:"categories"`
}

// TopExpense is one ranked category by monthly spend.
type TopExpense struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Rank     int    `json:"rank"`
}

// SpendingInsights holds derived observations about the month.
type SpendingInsights struct {
	AverageDailySpending  float64            `json:"average_daily_spending"`
	HighestSpendingDay    int64              `json:"highest_spending_day"`
	LowestSpendingDay     int64              `json:"lowest_spending_day"`
	MostExpensiveCategory string             `json:"most_expensive_category"`
	CategoryConcentration map[string]float64 `json:"category_concentration"`
}

// MonthComparison contrasts the month with the one before it.
type MonthComparison struct {
	CurrentMonthTotal  int64   `json:"current_month_total"`
	PreviousMonthTotal int64   `json:"previous_month_total"`
	ChangeAmount       int64   `json:"change_amount"`
	ChangePercent      float64 `json:"change_percent"`
	Trend              string  `json:"trend"`
}

// MonthlyReport is the full report for one calendar month.
type MonthlyReport struct {
	Period          string                    `json:"period"`
	Year            int                       `json:"year"`
	Month           int                       `json:"month"`
	GeneratedAt     string                    `json:"generated_at"`
	Summary         analytics.MonthlySummary  `json:"spending_summary"`
	Budget          BudgetPerformance         `json:"budget_performance"`
	TopExpenses     []TopExpense              `json:"top_expenses"`
	Insights        SpendingInsights          `json:"insights"`
	MonthComparison MonthComparison           `json:"month_comparison"`
}

// Monthly generates the complete report for one calendar month.
func (g *Generator) Monthly(year, month int) (MonthlyReport, error) {
	summary, err := g.engine.Monthly(year, month)
	if err != nil {
		return MonthlyReport{}, err
	}
	// Monthly resolves zero year/month to the current date.
	year, month = summary.Year, summary.Month

	report := MonthlyReport{
		Period:      fmt.Sprintf("%s %d", summary.MonthName, year),
		Year:        year,
		Month:       month,
		GeneratedAt: g.Now().Format("2006-01-02 15:04:05"),
		Summary:     summary,
		Budget:      g.budgetPerformance(summary),
		TopExpenses: topExpenses(summary.ByCategory, 5),
		Insights:    spendingInsights(summary),
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}
	previous, err := g.engine.Monthly(prevYear, prevMonth)
	if err != nil {
		return MonthlyReport{}, err
	}
	report.MonthComparison = compareMonths(summary.Total, previous.Total)

	return report, nil
}

func (g *Generator) budgetPerformance(summary analytics.MonthlySummary) BudgetPerformance {
	budgets, err := g.budgets.LoadBudgets()
	if err != nil {
		log.WithError(err).Warn("Could not load budgets, using defaults")
		budgets = config.DefaultBudgets
	}

	performance := BudgetPerformance{Categories: make(map[string]CategoryPerformance)}
	for category, spent := range summary.ByCategory {
		budget := budgets[category]
		performance.TotalBudget += budget
		performance.TotalSpent += spent

		entry := CategoryPerformance{
			Budget:    budget,
			Spent:     spent,
			Remaining: budget - float64(spent),
			Status:    "no_budget",
		}
		if budget > 0 {
			entry.UtilizationPercent = float64(spent) / budget * 100
			if entry.UtilizationPercent > 100 {
				entry.Status = "over_budget"
			} else {
				entry.Status = "on_track"
			}
		}
		performance.Categories[category] = entry
	}
	return performance
}

func topExpenses(byCategory map[string]int64, limit int) []TopExpense {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.SliceStable(categories, func(a, b int) bool {
		if byCategory[categories[a]] != byCategory[categories[b]] {
			return byCategory[categories[a]] > byCategory[categories[b]]
		}
		return categories[a] < categories[b]
	})
	if len(categories) > limit {
		categories = categories[:limit]
	}

	expenses := make([]TopExpense, len(categories))
	for i, category := range categories {
		expenses[i] = TopExpense{Category: category, Amount: byCategory[category], Rank: i + 1}
	}
	return expenses
}

func spendingInsights(summary analytics.MonthlySummary) SpendingInsights {
	insights := SpendingInsights{
		AverageDailySpending:  float64(summary.Total) / 30,
		CategoryConcentration: make(map[string]float64),
	}

	for _, dayTotal := range summary.DailyBreakdown {
		if dayTotal > insights.HighestSpendingDay {
			insights.HighestSpendingDay = dayTotal
		}
		if dayTotal > 0 && (insights.LowestSpendingDay == 0 || dayTotal < insights.LowestSpendingDay) {
			insights.LowestSpendingDay = dayTotal
		}
	}

	var maxAmount int64
	for category, amount := range summary.ByCategory {
		if summary.Total > 0 {
			insights.CategoryConcentration[category] = float64(amount) / float64(summary.Total) * 100
		}
		if amount > maxAmount || (amount == maxAmount && category < insights.MostExpensiveCategory) {
			maxAmount = amount
			insights.MostExpensiveCategory = category
		}
	}
	return insights
}

func compareMonths(current, previous int64) MonthComparison {
	comparison := MonthComparison{
		CurrentMonthTotal:  current,
		PreviousMonthTotal: previous,
		ChangeAmount:       current - previous,
		Trend:              "decreased",
	}
	if previous > 0 {
		comparison.ChangePercent = float64(current-previous) / float64(previous) * 100
	}
	if comparison.ChangeAmount > 0 {
		comparison.Trend = "increased"
	}
	return comparison
}

// MonthEntry is one month's line in the yearly breakdown.
type MonthEntry struct {
	Month        string `json:"month"`
	MonthNum     int    `json:"month_num"`
	Total        int64  `json:"total"`
	Transactions int    `json:"transactions"`
	Categories   int    `json:"categories"`
}

// YearlyOverview holds the headline numbers for a year.
type YearlyOverview struct {
	TotalSpending     int64   `json:"total_spending"`
	TotalTransactions int     `json:"total_transactions"`
	AverageMonthly    float64 `json:"average_monthly"`
	CategoriesTracked int     `json:"categories_tracked"`
	TopCategory       string  `json:"top_category"`
	TopCategoryAmount int64   `json:"top_category_amount"`
}

// YearlyTrends describes how spending moved across the year.
type YearlyTrends struct {
	HighestSpendingMonth string  `json:"highest_spending_month"`
	LowestSpendingMonth  string  `json:"lowest_spending_month"`
	HighestAmount        int64   `json:"highest_amount"`
	LowestAmount         int64   `json:"lowest_amount"`
	AverageMonthly       float64 `json:"average_monthly"`
	TrendDirection       string  `json:"trend_direction"`
}

// YearlyReport is the full report for one calendar year.
type YearlyReport struct {
	Period             string             `json:"period"`
	Year               int                `json:"year"`
	GeneratedAt        string             `json:"generated_at"`
	Overview           YearlyOverview     `json:"yearly_overview"`
	MonthlyBreakdown   []MonthEntry       `json:"monthly_breakdown"`
	TotalByCategory    map[string]int64   `json:"total_by_category"`
	CategoryPercentage map[string]float64 `json:"category_percentage"`
	Trends             YearlyTrends       `json:"trends"`
}

// Yearly generates the complete report for one calendar year.
func (g *Generator) Yearly(year int) (YearlyReport, error) {
	if year == 0 {
		year = g.Now().Year()
	}

	report := YearlyReport{
		Period:             fmt.Sprintf("%d", year),
		Year:               year,
		GeneratedAt:        g.Now().Format("2006-01-02 15:04:05"),
		TotalByCategory:    make(map[string]int64),
		CategoryPercentage: make(map[string]float64),
	}

	for month := 1; month <= 12; month++ {
		summary, err := g.engine.Monthly(year, month)
		if err != nil {
			return YearlyReport{}, err
		}
		report.MonthlyBreakdown = append(report.MonthlyBreakdown, MonthEntry{
			Month:        summary.MonthName,
			MonthNum:     month,
			Total:        summary.Total,
			Transactions: summary.TransactionCount,
			Categories:   len(summary.ByCategory),
		})
		report.Overview.TotalSpending += summary.Total
		report.Overview.TotalTransactions += summary.TransactionCount
		for category, amount := range summary.ByCategory {
			report.TotalByCategory[category] += amount
		}
	}

	report.Overview.AverageMonthly = float64(report.Overview.TotalSpending) / 12
	report.Overview.CategoriesTracked = len(report.TotalByCategory)
	for category, amount := range report.TotalByCategory {
		if report.Overview.TotalSpending > 0 {
			report.CategoryPercentage[category] =
				float64(amount) / float64(report.Overview.TotalSpending) * 100
		}
		if amount > report.Overview.TopCategoryAmount ||
			(amount == report.Overview.TopCategoryAmount && category < report.Overview.TopCategory) {
			report.Overview.TopCategoryAmount = amount
			report.Overview.TopCategory = category
		}
	}
	if report.Overview.TopCategory == "" {
		report.Overview.TopCategory = "N/A"
	}

	report.Trends = yearlyTrends(report.MonthlyBreakdown, report.Overview.AverageMonthly)
	return report, nil
}

func yearlyTrends(months []MonthEntry, averageMonthly float64) YearlyTrends {
	trends := YearlyTrends{AverageMonthly: averageMonthly}

	highest, lowest := months[0], months[0]
	for _, entry := range months[1:] {
		if entry.Total > highest.Total {
			highest = entry
		}
		if entry.Total < lowest.Total {
			lowest = entry
		}
	}
	trends.HighestSpendingMonth = highest.Month
	trends.HighestAmount = highest.Total
	trends.LowestSpendingMonth = lowest.Month
	trends.LowestAmount = lowest.Total

	trends.TrendDirection = "decreasing"
	if months[len(months)-1].Total > months[0].Total {
		trends.TrendDirection = "increasing"
	}
	return trends
}

// Export writes a report as indented JSON. An empty path defaults to a
// report_<period>.json file in the data directory.
func (g *Generator) Export(report interface{}, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(g.cfg.Data.Directory,
			fmt.Sprintf("report_%s.json", g.Now().Format("2006-01")))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", &walleterror.StorageError{Path: outputPath, Op: "marshal", Err: err}
	}
	if err := fileutils.WriteFile(outputPath, data, 0644); err != nil {
		return "", &walleterror.StorageError{Path: outputPath, Op: "write", Err: err}
	}

	log.WithField("path", outputPath).Info("Report exported")
	return outputPath, nil
}
