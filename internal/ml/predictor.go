package ml

import (
	"math"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/dateutils"
	"github.com/daud-shahbaz/pywallet/internal/models"
	"github.com/daud-shahbaz/pywallet/internal/store"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// minMonthsForForecast is the per-category history floor below which a
// category is silently skipped rather than forecast.
const minMonthsForForecast = 3

// SpendingPredictor forecasts future spending per category using ordinary
// least-squares regression over monthly totals.
type SpendingPredictor struct {
	store *store.ExpenseStore
	cfg   *config.Config

	// Now supplies the current time; tests override it.
	Now func() time.Time
}

// NewSpendingPredictor creates a predictor over the given store.
func NewSpendingPredictor(cfg *config.Config, st *store.ExpenseStore) *SpendingPredictor {
	return &SpendingPredictor{store: st, cfg: cfg, Now: time.Now}
}

// CategoryForecast is the next-month prediction for one category.
type CategoryForecast struct {
	PredictedAmount   int64   `json:"predicted_amount"`
	Confidence        float64 `json:"confidence"`
	Trend             string  `json:"trend"`
	HistoricalAverage float64 `json:"historical_average"`
	HistoricalMin     float64 `json:"historical_min"`
	HistoricalMax     float64 `json:"historical_max"`
	DataPoints        int     `json:"data_points"`
}

// ForecastReport holds next-month predictions for every category with
// enough history; categories that were skipped do not appear.
type ForecastReport struct {
	Period         string                      `json:"period"`
	ForecastMonths int                         `json:"forecast_months"`
	Predictions    map[string]CategoryForecast `json:"predictions"`
	GeneratedAt    time.Time                   `json:"generated_at"`
}

// PredictNextMonth fits a regression per category over the trailing
// configured window and evaluates it one month past the observed range.
// Predictions are floored at zero; confidence is the regression's R².
func (p *SpendingPredictor) PredictNextMonth() (ForecastReport, error) {
	table := p.store.Table("")
	if table.Len() < p.cfg.ML.MinDataPoints {
		return ForecastReport{}, &walleterror.InsufficientDataError{
			Operation: "spending prediction",
			Required:  p.cfg.ML.MinDataPoints,
			Available: table.Len(),
		}
	}

	cutoff := dateutils.DaysAgo(p.Now(), p.cfg.ML.PredictionWindowMonths*30)
	historical := table.Since(cutoff)

	predictions := make(map[string]CategoryForecast)
	for _, category := range p.cfg.Categories {
		catData := historical.Category(category)
		if catData.Len() < minMonthsForForecast {
			continue
		}

		buckets := catData.MonthlyBuckets()
		if len(buckets) < 2 {
			continue
		}

		forecast := fitForecast(models.BucketTotals(buckets))
		predictions[category] = forecast
	}

	return ForecastReport{
		Period:         "next_month",
		ForecastMonths: p.cfg.ML.ForecastAheadMonths,
		Predictions:    predictions,
		GeneratedAt:    p.Now(),
	}, nil
}

func fitForecast(totals []float64) CategoryForecast {
	xs := monthIndices(len(totals))
	alpha, beta := stat.LinearRegression(xs, totals, nil, false)

	predicted := alpha + beta*float64(len(totals))
	if predicted < 0 {
		predicted = 0
	}

	// R² of a fitted simple regression cannot go negative on its own
	// training data; the clamp keeps the [0,1] contract even for a flat
	// series where the value degenerates.
	confidence := stat.RSquared(xs, totals, nil, alpha, beta)
	if math.IsNaN(confidence) || confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return CategoryForecast{
		PredictedAmount:   int64(predicted),
		Confidence:        confidence,
		Trend:             slopeDirection(beta),
		HistoricalAverage: stat.Mean(totals, nil),
		HistoricalMin:     floats.Min(totals),
		HistoricalMax:     floats.Max(totals),
		DataPoints:        len(totals),
	}
}

func slopeDirection(slope float64) string {
	switch {
	case slope > 0:
		return "increasing"
	case slope < 0:
		return "decreasing"
	default:
		return "stable"
	}
}

func monthIndices(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// TrajectoryStep is one forecast month of a spending trajectory.
// Uncertainty is the absolute regression slope, a crude spread proxy
// rather than a statistical interval.
type TrajectoryStep struct {
	MonthAhead      int     `json:"month_ahead"`
	PredictedAmount float64 `json:"predicted_amount"`
	Uncertainty     float64 `json:"uncertainty"`
}

// TrajectoryReport holds a multi-month forecast for one category.
type TrajectoryReport struct {
	Category   string           `json:"category"`
	Trajectory []TrajectoryStep `json:"trajectory"`
	Baseline   float64          `json:"baseline"`
}

// Trajectory extrapolates the configured number of months ahead for one
// category using its full history.
func (p *SpendingPredictor) Trajectory(category string) (TrajectoryReport, error) {
	catData := p.store.Table("").Category(category)
	if catData.Len() < minMonthsForForecast {
		return TrajectoryReport{}, &walleterror.InsufficientDataError{
			Operation: "trajectory for " + category,
			Required:  minMonthsForForecast,
			Available: catData.Len(),
		}
	}

	totals := models.BucketTotals(catData.MonthlyBuckets())
	xs := monthIndices(len(totals))
	alpha, beta := stat.LinearRegression(xs, totals, nil, false)

	steps := make([]TrajectoryStep, 0, p.cfg.ML.ForecastAheadMonths)
	for i := 0; i < p.cfg.ML.ForecastAheadMonths; i++ {
		predicted := alpha + beta*float64(len(totals)+i)
		if predicted < 0 {
			predicted = 0
		}
		steps = append(steps, TrajectoryStep{
			MonthAhead:      i + 1,
			PredictedAmount: predicted,
			Uncertainty:     math.Abs(beta),
		})
	}

	return TrajectoryReport{
		Category:   category,
		Trajectory: steps,
		Baseline:   stat.Mean(totals, nil),
	}, nil
}
