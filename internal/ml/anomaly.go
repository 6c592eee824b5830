package ml

import (
	"fmt"
	"sort"
	"time"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/dateutils"
	"github.com/daud-shahbaz/pywallet/internal/store"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"gonum.org/v1/gonum/stat"
)

const (
	// minRecordsForStats is the per-category floor below which no anomaly
	// statistics are computed for that category.
	minRecordsForStats = 5

	// maxAnomaliesReported caps the returned list; TotalFound still counts
	// everything that exceeded the threshold.
	maxAnomaliesReported = 10
)

// AnomalyDetector flags unusually large transactions per category using
// z-scores against the category's historical distribution.
type AnomalyDetector struct {
	store *store.ExpenseStore
	cfg   *config.Config

	// Now supplies the current time; tests override it.
	Now func() time.Time
}

// NewAnomalyDetector creates a detector over the given store.
func NewAnomalyDetector(cfg *config.Config, st *store.ExpenseStore) *AnomalyDetector {
	return &AnomalyDetector{store: st, cfg: cfg, Now: time.Now}
}

// Anomaly is one flagged transaction.
type Anomaly struct {
	ID        int     `json:"id"`
	Category  string  `json:"category"`
	Amount    int64   `json:"amount"`
	Date      string  `json:"date"`
	Note      string  `json:"note"`
	ZScore    float64 `json:"z_score"`
	Deviation int64   `json:"deviation"`
	Reason    string  `json:"reason"`
}

// AnomalyReport holds flagged transactions pooled across categories,
// sorted by z-score descending and truncated to the reporting cap.
type AnomalyReport struct {
	Anomalies      []Anomaly `json:"anomalies"`
	TotalFound     int       `json:"total_anomalies_found"`
	ThresholdSigma float64   `json:"anomaly_threshold_sigma"`
	Method         string    `json:"method"`
}

// Detect scans every configured category for transactions exceeding
// mean + sigma*stddev of that category's full history. Categories with
// fewer than five records are never flagged. A zero standard deviation
// yields a z-score of exactly 0, not a division error.
func (d *AnomalyDetector) Detect() (AnomalyReport, error) {
	table := d.store.Table("")
	if table.Len() < d.cfg.ML.MinDataPoints {
		return AnomalyReport{}, &walleterror.InsufficientDataError{
			Operation: "anomaly detection",
			Required:  d.cfg.ML.MinDataPoints,
			Available: table.Len(),
		}
	}

	sigma := d.cfg.ML.AnomalySigma
	var anomalies []Anomaly

	for _, category := range d.cfg.Categories {
		catData := table.Category(category)
		if catData.Len() < minRecordsForStats {
			continue
		}

		amounts := catData.Amounts()
		mean := stat.Mean(amounts, nil)
		std := stat.PopStdDev(amounts, nil)
		threshold := mean + sigma*std

		for _, row := range catData.Rows {
			if float64(row.Amount) <= threshold {
				continue
			}
			zScore := 0.0
			if std > 0 {
				zScore = (float64(row.Amount) - mean) / std
			}
			anomalies = append(anomalies, Anomaly{
				ID:        row.ID,
				Category:  category,
				Amount:    row.Amount,
				Date:      dateutils.ToISODate(row.Date),
				Note:      row.Note,
				ZScore:    zScore,
				Deviation: row.Amount - int64(mean),
				Reason: fmt.Sprintf("Unusually high for %s: %.2f std devs above mean",
					category, zScore),
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].ZScore > anomalies[j].ZScore
	})

	report := AnomalyReport{
		Anomalies:      anomalies,
		TotalFound:     len(anomalies),
		ThresholdSigma: sigma,
		Method:         "statistical_zscore",
	}
	if len(anomalies) > maxAnomaliesReported {
		report.Anomalies = anomalies[:maxAnomaliesReported]
	}
	if report.Anomalies == nil {
		report.Anomalies = []Anomaly{}
	}
	return report, nil
}

// RecentAnomaly is one flagged transaction from the recent window.
type RecentAnomaly struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Mean     int64  `json:"mean"`
	Note     string `json:"note"`
}

// FlagRecent reports anomalies among transactions of the last N days.
// The mean and deviation baseline come from each category's entire
// history, not just the window: full-history statistics, recent-window
// reporting.
func (d *AnomalyDetector) FlagRecent(days int) []RecentAnomaly {
	table := d.store.Table("")
	recent := table.Since(dateutils.DaysAgo(d.Now(), days))
	if recent.Empty() {
		return []RecentAnomaly{}
	}

	anomalies := []RecentAnomaly{}
	for _, category := range recent.Categories() {
		catData := table.Category(category)
		if catData.Len() < minRecordsForStats {
			continue
		}

		amounts := catData.Amounts()
		mean := stat.Mean(amounts, nil)
		std := stat.StdDev(amounts, nil)
		threshold := mean + 2*std

		for _, row := range recent.Category(category).Rows {
			if float64(row.Amount) <= threshold {
				continue
			}
			anomalies = append(anomalies, RecentAnomaly{
				ID:       row.ID,
				Date:     dateutils.ToISODate(row.Date),
				Category: category,
				Amount:   row.Amount,
				Mean:     int64(mean),
				Note:     row.Note,
			})
		}
	}
	return anomalies
}
