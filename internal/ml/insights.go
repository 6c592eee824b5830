package ml

import (
	"fmt"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/analytics"
	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/store"
)

// trendAnalysisMonths is the lookback used for insight recommendations.
const trendAnalysisMonths = 3

// InsightGenerator aggregates the ML components into one combined report.
// Each section is best-effort: a component that cannot run (usually from
// too little data) is logged and left empty rather than failing the whole
// report.
type InsightGenerator struct {
	predictor *SpendingPredictor
	detector  *AnomalyDetector
	clusterer *SpendingClusterer
	engine    *analytics.Engine
	cfg       *config.Config

	// Now supplies the current time; tests override it.
	Now func() time.Time
}

// NewInsightGenerator creates a generator over the given store.
func NewInsightGenerator(cfg *config.Config, st *store.ExpenseStore) *InsightGenerator {
	return &InsightGenerator{
		predictor: NewSpendingPredictor(cfg, st),
		detector:  NewAnomalyDetector(cfg, st),
		clusterer: NewSpendingClusterer(cfg, st),
		engine:    analytics.NewEngine(cfg, st),
		cfg:       cfg,
		Now:       time.Now,
	}
}

// InsightReport is the combined output of all ML components.
type InsightReport struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	Predictions     *ForecastReport `json:"predictions,omitempty"`
	Anomalies       *AnomalyReport  `json:"anomalies,omitempty"`
	Clustering      *ClusterReport  `json:"clustering,omitempty"`
	Recommendations []string        `json:"recommendations"`
}

// GenerateInsights runs forecasting, anomaly detection and clustering and
// derives actionable recommendations from budget status and trends.
func (g *InsightGenerator) GenerateInsights() InsightReport {
	report := InsightReport{GeneratedAt: g.Now()}

	if forecast, err := g.predictor.PredictNextMonth(); err != nil {
		log.WithError(err).Debug("Skipping predictions in insight report")
	} else {
		report.Predictions = &forecast
	}

	if anomalies, err := g.detector.Detect(); err != nil {
		log.WithError(err).Debug("Skipping anomalies in insight report")
	} else {
		report.Anomalies = &anomalies
	}

	if clustering, err := g.clusterer.Cluster(); err != nil {
		log.WithError(err).Debug("Skipping clustering in insight report")
	} else {
		report.Clustering = &clustering
	}

	report.Recommendations = g.recommendations()
	return report
}

// recommendations derives short actionable messages from the budget report
// and recent trends, falling back to an encouragement when nothing needs
// attention.
func (g *InsightGenerator) recommendations() []string {
	recommendations := []string{}

	budget := g.engine.BudgetAlert(nil)
	if budget.CriticalCount > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Warning: %d categories over budget!", budget.CriticalCount))
	}
	if budget.WarningCount > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Caution: %d categories near budget limits", budget.WarningCount))
	}

	trends := g.engine.DetectTrends(trendAnalysisMonths)
	flagged := 0
	for _, category := range g.cfg.Categories {
		if flagged >= 2 {
			break
		}
		trend, ok := trends.Trends[category]
		if !ok {
			continue
		}
		if trend.Direction == "increasing" && trend.PercentChange > 20 {
			recommendations = append(recommendations,
				fmt.Sprintf("Spending on %s increased %.0f%% - consider reducing",
					category, trend.PercentChange))
			flagged++
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Your spending looks healthy! Keep it up.")
	}
	return recommendations
}
