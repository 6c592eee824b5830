// Package coach produces natural-language spending summaries and
// personalized advice. The rule-based generators always work offline; when
// an AI client is configured its output replaces the rule-based text, and
// any AI failure falls back silently to the rules.
package coach

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/analytics"
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

// adviceTrendMonths is the lookback window for trend-based advice.
const adviceTrendMonths = 3

// Coach generates coaching text over one store.
type Coach struct {
	store  *store.ExpenseStore
	engine *analytics.Engine
	cfg    *config.Config

	// AI is consulted when non-nil; errors fall back to rule-based output.
	AI AIClient

	// Now supplies the current time; tests override it.
	Now func() time.Time
}

// NewCoach creates a coach over the given store. The AI client is attached
// only when AI coaching is enabled and an API key is configured.
func NewCoach(cfg *config.Config, st *store.ExpenseStore) *Coach {
	c := &Coach{
		store:  st,
		engine: analytics.NewEngine(cfg, st),
		cfg:    cfg,
		Now:    time.Now,
	}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := NewGeminiClient(cfg)
		if err != nil {
			log.WithError(err).Warn("AI coaching unavailable, using rule-based advice")
		} else {
			c.AI = client
		}
	}
	return c
}

// MonthlySummary renders the current calendar month as readable text:
// headline totals followed by categories sorted by spend.
func (c *Coach) MonthlySummary() string {
	now := c.Now()
	summary, err := c.engine.Monthly(now.Year(), int(now.Month()))
	if err != nil {
		return "No expenses recorded this month yet."
	}
	if summary.TransactionCount == 0 {
		return "No expenses recorded this month yet."
	}

	lines := []string{
		fmt.Sprintf("Monthly Summary - %s %d", summary.MonthName, summary.Year),
		fmt.Sprintf("Total Spending: %s", models.FormatCurrency(summary.Total, c.cfg.Currency)),
		fmt.Sprintf("Transactions: %d", summary.TransactionCount),
	}

	if len(summary.ByCategory) > 0 {
		lines = append(lines, "", "Spending by Category:")
		for _, category := range sortByAmount(summary.ByCategory) {
			lines = append(lines, fmt.Sprintf("  - %s: %s",
				category, models.FormatCurrency(summary.ByCategory[category], c.cfg.Currency)))
		}
	}

	text := strings.Join(lines, "\n")
	if c.AI != nil {
		if enhanced, err := c.AI.Summarize(text); err == nil && enhanced != "" {
			return enhanced
		} else if err != nil {
			log.WithError(err).Debug("AI summary failed, using rule-based text")
		}
	}
	return text
}

// PersonalizedAdvice derives advice from budget compliance, rising trends
// and category concentration, in that order. At least one message is always
// returned.
func (c *Coach) PersonalizedAdvice() []string {
	advice := []string{}

	budget := c.engine.BudgetAlert(nil)
	if budget.CriticalCount > 0 {
		advice = append(advice, fmt.Sprintf(
			"You've exceeded budget in %d categories. Consider reviewing your spending habits or adjusting your budgets.",
			budget.CriticalCount))
	}
	if budget.WarningCount > 0 {
		advice = append(advice, fmt.Sprintf(
			"You're approaching budget limits in %d categories. Be mindful of expenses for the rest of the month.",
			budget.WarningCount))
	}

	trends := c.engine.DetectTrends(adviceTrendMonths)
	flagged := 0
	for _, category := range c.cfg.Categories {
		if flagged >= 3 {
			break
		}
		trend, ok := trends.Trends[category]
		if !ok {
			continue
		}
		if trend.Direction == "increasing" && trend.PercentChange > 25 {
			advice = append(advice, fmt.Sprintf(
				"Your %s spending has increased by %.0f%%. Consider finding ways to reduce costs in this area.",
				category, trend.PercentChange))
			flagged++
		}
	}

	if top, pct, ok := dominantShare(c.engine.CategorySummary("", "")); ok && pct > 40 {
		advice = append(advice, fmt.Sprintf(
			"Your spending is heavily concentrated in %s (%.0f%% of total). Consider diversifying.",
			top, pct))
	}

	if len(advice) == 0 {
		advice = append(advice, "Your spending patterns look balanced! Keep up the good financial discipline.")
	}
	return advice
}

// AnalyzePatterns describes the overall spending history: totals, top three
// categories with share and count, and the last seven days of activity.
func (c *Coach) AnalyzePatterns() string {
	table := c.store.Table("")
	if table.Empty() {
		return "No spending data available for analysis."
	}

	total := table.Total()
	lines := []string{
		"Spending Pattern Analysis",
		strings.Repeat("=", 40),
		fmt.Sprintf("Total Spending: %s", models.FormatCurrency(total, c.cfg.Currency)),
		fmt.Sprintf("Average Transaction: %s %.2f", c.cfg.Currency, float64(total)/float64(table.Len())),
		fmt.Sprintf("Total Transactions: %d", table.Len()),
	}

	byCategory := table.ByCategory()
	if len(byCategory) > 0 {
		lines = append(lines, "", "Top Spending Categories:")
		for i, category := range topN(sortByAmount(byCategory), 3) {
			amount := byCategory[category]
			count := table.Category(category).Len()
			percentage := float64(amount) / float64(total) * 100
			lines = append(lines, fmt.Sprintf("  %d. %s: %s (%.1f%%) - %d transactions",
				i+1, category, models.FormatCurrency(amount, c.cfg.Currency), percentage, count))
		}
	}

	lastWeek := table.Since(dateutils.DaysAgo(c.Now(), 7))
	if !lastWeek.Empty() {
		lines = append(lines, "", fmt.Sprintf("Last 7 Days: %s spent",
			models.FormatCurrency(lastWeek.Total(), c.cfg.Currency)))
	}

	text := strings.Join(lines, "\n")
	if c.AI != nil {
		if enhanced, err := c.AI.Summarize(text); err == nil && enhanced != "" {
			return enhanced
		} else if err != nil {
			log.WithError(err).Debug("AI analysis failed, using rule-based text")
		}
	}
	return text
}

// SuggestNextActions proposes concrete next steps: start tracking, broaden
// categories, catch up after a quiet week, or add notes for the classifier.
func (c *Coach) SuggestNextActions() []string {
	table := c.store.Table("")
	if table.Empty() {
		return []string{"Start tracking your expenses by adding your first transaction."}
	}

	actions := []string{}

	used := make(map[string]bool)
	for _, category := range table.Categories() {
		used[category] = true
	}
	if len(used) < 5 {
		for _, category := range c.cfg.Categories {
			if !used[category] {
				actions = append(actions, fmt.Sprintf("Expand tracking to more categories like %s", category))
				break
			}
		}
	}

	var lastEntry time.Time
	for _, row := range table.Rows {
		if row.Date.After(lastEntry) {
			lastEntry = row.Date
		}
	}
	if c.Now().Sub(lastEntry) > 7*24*time.Hour {
		actions = append(actions, "You haven't added any expenses in over a week. Update your records!")
	}

	if table.WithNotes().Len()*2 < table.Len() {
		actions = append(actions, "Add notes to your expenses to enable smarter category predictions")
	}

	if len(actions) == 0 {
		actions = append(actions, "Review your budget allocation to optimize spending")
	}
	return actions
}

// sortByAmount returns categories in descending spend order, ties broken
// alphabetically.
func sortByAmount(byCategory map[string]int64) []string {
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
	return categories
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func dominantShare(stats map[string]analytics.CategoryStats) (string, float64, bool) {
	var top string
	var pct float64
	for category, s := range stats {
		if s.Percentage > pct || (s.Percentage == pct && (top == "" || category < top)) {
			top = category
			pct = s.Percentage
		}
	}
	return top, pct, top != ""
}
