package ml

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInsightGenerator(t *testing.T) (*InsightGenerator, func(amount int64, category, date string)) {
	t.Helper()
	cfg, st := newTestStore(t)

	generator := NewInsightGenerator(cfg, st)
	generator.Now = func() time.Time { return fixedNow }
	generator.predictor.Now = generator.Now
	generator.detector.Now = generator.Now
	generator.engine.Now = generator.Now

	return generator, func(amount int64, category, date string) {
		_, err := st.Add(amount, category, date, "", "")
		require.NoError(t, err)
	}
}

func TestGenerateInsightsEmptyStore(t *testing.T) {
	generator, _ := newTestInsightGenerator(t)

	report := generator.GenerateInsights()

	// Nothing has enough data, but the report still comes back whole.
	assert.Nil(t, report.Predictions)
	assert.Nil(t, report.Anomalies)
	assert.Nil(t, report.Clustering)
	assert.Equal(t, []string{"Your spending looks healthy! Keep it up."}, report.Recommendations)
	assert.Equal(t, fixedNow, report.GeneratedAt)
}

func TestGenerateInsightsWithData(t *testing.T) {
	generator, add := newTestInsightGenerator(t)
	for month := 4; month <= 6; month++ {
		for i := 0; i < 8; i++ {
			add(100, "Food", fmt.Sprintf("2025-%02d-%02d", month, 2+i*3))
		}
	}

	report := generator.GenerateInsights()

	assert.NotNil(t, report.Predictions)
	assert.NotNil(t, report.Anomalies)
	assert.NotNil(t, report.Clustering)
	assert.NotEmpty(t, report.Recommendations)
}

func TestRecommendationsOverBudget(t *testing.T) {
	generator, add := newTestInsightGenerator(t)
	// Food's default budget is 10000; June spending far exceeds it.
	add(15000, "Food", "2025-06-05")

	report := generator.GenerateInsights()
	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "1 categories over budget")
}

func TestRecommendationsRisingTrend(t *testing.T) {
	generator, add := newTestInsightGenerator(t)
	add(100, "Food", "2025-04-10")
	add(100, "Food", "2025-05-10")
	add(200, "Food", "2025-06-10")

	report := generator.GenerateInsights()

	var found bool
	for _, rec := range report.Recommendations {
		if rec == "Spending on Food increased 100% - consider reducing" {
			found = true
		}
	}
	assert.True(t, found, "a doubling trend should be called out, got %v", report.Recommendations)
}
