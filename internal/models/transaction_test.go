package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTable() Table {
	return Table{Rows: []Row{
		{ID: 1, Amount: 100, Category: "Food", Date: day(2025, time.January, 5), Note: "lunch"},
		{ID: 2, Amount: 200, Category: "Food", Date: day(2025, time.January, 5)},
		{ID: 3, Amount: 300, Category: "Transport", Date: day(2025, time.February, 1), Note: "bus"},
		{ID: 4, Amount: 400, Category: "Food", Date: day(2025, time.March, 10)},
	}}
}

func TestTableTotals(t *testing.T) {
	table := sampleTable()

	assert.Equal(t, 4, table.Len())
	assert.False(t, table.Empty())
	assert.Equal(t, int64(1000), table.Total())

	byCat := table.ByCategory()
	assert.Equal(t, int64(700), byCat["Food"])
	assert.Equal(t, int64(300), byCat["Transport"])
	assert.Len(t, byCat, 2, "categories without rows never appear")
}

func TestTableFilters(t *testing.T) {
	table := sampleTable()

	assert.Equal(t, 3, table.Category("Food").Len())
	assert.Equal(t, 2, table.OnDay(2025, time.January, 5).Len())
	assert.Equal(t, 1, table.InMonth(2025, time.February).Len())
	assert.Equal(t, 2, table.Since(day(2025, time.February, 1)).Len(), "cutoff is inclusive")
	assert.Equal(t, 2, table.WithNotes().Len())
	assert.Equal(t, []string{"Food", "Transport"}, table.Categories())
}

func TestEmptyTableDefaults(t *testing.T) {
	var table Table

	assert.True(t, table.Empty())
	assert.Equal(t, int64(0), table.Total())
	assert.Empty(t, table.ByCategory())
	assert.Nil(t, table.MonthlyBuckets())
}

func TestMonthlyBucketsZeroFillsGaps(t *testing.T) {
	table := Table{Rows: []Row{
		{Amount: 100, Date: day(2025, time.January, 15)},
		{Amount: 300, Date: day(2025, time.April, 2)},
	}}

	buckets := table.MonthlyBuckets()
	assert.Len(t, buckets, 4, "january through april inclusive")

	assert.Equal(t, time.January, buckets[0].Month)
	assert.Equal(t, int64(100), buckets[0].Total)
	assert.Equal(t, int64(0), buckets[1].Total, "february has no activity")
	assert.Equal(t, int64(0), buckets[2].Total, "march has no activity")
	assert.Equal(t, time.April, buckets[3].Month)
	assert.Equal(t, int64(300), buckets[3].Total)
}

func TestMonthlyBucketsCrossYear(t *testing.T) {
	table := Table{Rows: []Row{
		{Amount: 100, Date: day(2024, time.December, 20)},
		{Amount: 200, Date: day(2025, time.January, 3)},
	}}

	buckets := table.MonthlyBuckets()
	assert.Len(t, buckets, 2)
	assert.Equal(t, 2024, buckets[0].Year)
	assert.Equal(t, time.December, buckets[0].Month)
	assert.Equal(t, 2025, buckets[1].Year)
	assert.Equal(t, time.January, buckets[1].Month)
}

func TestBucketTotals(t *testing.T) {
	totals := BucketTotals([]MonthBucket{{Total: 10}, {Total: 0}, {Total: 25}})
	assert.Equal(t, []float64{10, 0, 25}, totals)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "PKR 1500.00", FormatCurrency(1500, "PKR"))
	assert.Equal(t, "PKR 0.00", FormatCurrency(0, "PKR"))
}

func TestBudgetPercentage(t *testing.T) {
	assert.InDelta(t, 50.0, BudgetPercentage(5000, 10000), 1e-9)
	assert.InDelta(t, 150.0, BudgetPercentage(15000, 10000), 1e-9)
	assert.Equal(t, 0.0, BudgetPercentage(5000, 0), "zero budget never divides")
}

func TestOverspendAmount(t *testing.T) {
	assert.Equal(t, "2500.00", OverspendAmount(12500, 10000))
}
