// Package models defines the core data structures shared across the application.
package models

import (
	"time"
)

// Transaction represents one logged expense entry as persisted in the JSON store.
// Records are immutable once created: there is no update operation, only
// add and delete-by-id.
type Transaction struct {
	ID       int    `json:"id" csv:"id"`
	Amount   int64  `json:"amount" csv:"amount"`
	Category string `json:"category" csv:"category"`
	Date     string `json:"date" csv:"date"` // ISO YYYY-MM-DD
	Note     string `json:"note" csv:"note"`
	Username string `json:"username" csv:"username"`
}

// Row is one entry of a Table, with the date parsed into a time.Time.
type Row struct {
	ID       int
	Amount   int64
	Category string
	Date     time.Time
	Note     string
	Username string
}

// Table is the tabular view of the store used by all aggregation and ML
// operations. A Table with zero rows is valid everywhere; no operation
// special-cases emptiness beyond returning its empty-state defaults.
type Table struct {
	Rows []Row
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Total returns the sum of all amounts.
func (t Table) Total() int64 {
	var total int64
	for _, r := range t.Rows {
		total += r.Amount
	}
	return total
}

// ByCategory returns the sum of amounts grouped by category.
// Only categories with at least one row appear in the result.
func (t Table) ByCategory() map[string]int64 {
	sums := make(map[string]int64)
	for _, r := range t.Rows {
		sums[r.Category] += r.Amount
	}
	return sums
}

// Category returns the rows belonging to one category.
func (t Table) Category(name string) Table {
	var rows []Row
	for _, r := range t.Rows {
		if r.Category == name {
			rows = append(rows, r)
		}
	}
	return Table{Rows: rows}
}

// OnDay returns the rows dated on the given calendar day.
func (t Table) OnDay(year int, month time.Month, day int) Table {
	var rows []Row
	for _, r := range t.Rows {
		if r.Date.Year() == year && r.Date.Month() == month && r.Date.Day() == day {
			rows = append(rows, r)
		}
	}
	return Table{Rows: rows}
}

// InMonth returns the rows dated within the given calendar month.
func (t Table) InMonth(year int, month time.Month) Table {
	var rows []Row
	for _, r := range t.Rows {
		if r.Date.Year() == year && r.Date.Month() == month {
			rows = append(rows, r)
		}
	}
	return Table{Rows: rows}
}

// Since returns the rows dated on or after the cutoff.
func (t Table) Since(cutoff time.Time) Table {
	var rows []Row
	for _, r := range t.Rows {
		if !r.Date.Before(cutoff) {
			rows = append(rows, r)
		}
	}
	return Table{Rows: rows}
}

// Amounts returns all amounts as float64 for statistical processing.
func (t Table) Amounts() []float64 {
	amounts := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		amounts[i] = float64(r.Amount)
	}
	return amounts
}

// Categories returns the distinct categories present, in first-seen order.
func (t Table) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, r := range t.Rows {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	return categories
}

// WithNotes returns the rows carrying a non-empty note.
func (t Table) WithNotes() Table {
	var rows []Row
	for _, r := range t.Rows {
		if r.Note != "" {
			rows = append(rows, r)
		}
	}
	return Table{Rows: rows}
}
