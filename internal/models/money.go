package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount with its currency code, always with two
// decimal places ("PKR 1500.00").
func FormatCurrency(amount int64, currency string) string {
	return fmt.Sprintf("%s %s", currency, decimal.NewFromInt(amount).StringFixed(2))
}

// BudgetPercentage returns spend as a percentage of budget. A zero budget
// yields 0 rather than a division error.
func BudgetPercentage(spend int64, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(spend).
		Div(decimal.NewFromFloat(budget)).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return pct
}

// OverspendAmount returns how far spend exceeds budget, formatted with two
// decimal places for alert messages.
func OverspendAmount(spend int64, budget float64) string {
	return decimal.NewFromInt(spend).Sub(decimal.NewFromFloat(budget)).StringFixed(2)
}
