package ml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/store"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"
)

// kmeansSeed fixes the clustering RNG so repeated runs agree.
const kmeansSeed = 42

// SpendingClusterer groups spending behavior into k-means clusters over the
// normalized per-category spending distribution.
type SpendingClusterer struct {
	store *store.ExpenseStore
	cfg   *config.Config
}

// NewSpendingClusterer creates a clusterer over the given store.
func NewSpendingClusterer(cfg *config.Config, st *store.ExpenseStore) *SpendingClusterer {
	return &SpendingClusterer{store: st, cfg: cfg}
}

// ClusterProfile describes one cluster center.
type ClusterProfile struct {
	Name            string   `json:"name"`
	TopCategories   []string `json:"top_categories"`
	Characteristics string   `json:"characteristics"`
}

// ClusterReport holds the cluster assignment for the current spending
// pattern plus a profile of every center.
type ClusterReport struct {
	AssignedCluster string                    `json:"assigned_cluster"`
	ClusterName     string                    `json:"cluster_name"`
	Clusters        map[string]ClusterProfile `json:"clusters"`
	NumClusters     int                       `json:"num_clusters"`
	Method          string                    `json:"method"`
}

// Cluster builds the spending vector (total per configured category,
// normalized to sum to one) and assigns it to a k-means cluster. With a
// single observation all centroids collapse onto it and the assignment is
// always cluster_0.
func (c *SpendingClusterer) Cluster() (ClusterReport, error) {
	table := c.store.Table("")
	if table.Len() < c.cfg.ML.MinDataPoints {
		return ClusterReport{}, &walleterror.InsufficientDataError{
			Operation: "spending clustering",
			Required:  c.cfg.ML.MinDataPoints,
			Available: table.Len(),
		}
	}

	vector, total := c.spendingVector(table.ByCategory())
	if total == 0 {
		return ClusterReport{}, &walleterror.NoSpendingDataError{Operation: "spending clustering"}
	}
	for i := range vector {
		vector[i] /= total
	}

	k := c.cfg.ML.KMeansClusters
	centroids, assignments := kmeansFit([][]float64{vector}, k, kmeansSeed)
	assigned := assignments[0]

	clusters := make(map[string]ClusterProfile, k)
	for ci, center := range centroids {
		top := c.topCategories(center, 3)
		clusters[fmt.Sprintf("cluster_%d", ci)] = ClusterProfile{
			Name:            fmt.Sprintf("Spending Pattern %d", ci+1),
			TopCategories:   top,
			Characteristics: "High spending in " + strings.Join(top, ", "),
		}
	}

	return ClusterReport{
		AssignedCluster: fmt.Sprintf("cluster_%d", assigned),
		ClusterName:     fmt.Sprintf("Spending Pattern %d", assigned+1),
		Clusters:        clusters,
		NumClusters:     k,
		Method:          "kmeans",
	}, nil
}

// spendingVector projects per-category totals onto the configured category
// order, zero-filling categories without spend.
func (c *SpendingClusterer) spendingVector(byCategory map[string]int64) ([]float64, float64) {
	vector := make([]float64, len(c.cfg.Categories))
	var total float64
	for i, category := range c.cfg.Categories {
		vector[i] = float64(byCategory[category])
		total += vector[i]
	}
	return vector, total
}

func (c *SpendingClusterer) topCategories(center []float64, n int) []string {
	indices := make([]int, len(center))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return center[indices[a]] > center[indices[b]]
	})
	if len(indices) > n {
		indices = indices[:n]
	}
	top := make([]string, len(indices))
	for i, idx := range indices {
		top[i] = c.cfg.Categories[idx]
	}
	return top
}

// ComparisonReport summarizes how spending distributes across categories.
// SpendingDiversity counts categories carrying more than five percent of
// the total.
type ComparisonReport struct {
	TotalSpending        float64            `json:"total_spending"`
	CategoryDistribution map[string]float64 `json:"category_distribution"`
	DominantCategory     string             `json:"dominant_category"`
	Top3Categories       []string           `json:"top_3_categories"`
	SpendingDiversity    int                `json:"spending_diversity"`
}

// Compare profiles the current spending distribution without clustering:
// percentage share per category actually present, the dominant category and
// a diversity count.
func (c *SpendingClusterer) Compare() (ComparisonReport, error) {
	table := c.store.Table("")
	if table.Empty() {
		return ComparisonReport{}, &walleterror.NoSpendingDataError{Operation: "spending comparison"}
	}

	byCategory := table.ByCategory()
	var total float64
	for _, amount := range byCategory {
		total += float64(amount)
	}
	if total == 0 {
		return ComparisonReport{}, &walleterror.NoSpendingDataError{Operation: "spending comparison"}
	}

	distribution := make(map[string]float64, len(byCategory))
	categories := make([]string, 0, len(byCategory))
	for category, amount := range byCategory {
		distribution[category] = float64(amount) / total * 100
		categories = append(categories, category)
	}
	sort.SliceStable(categories, func(a, b int) bool {
		if distribution[categories[a]] != distribution[categories[b]] {
			return distribution[categories[a]] > distribution[categories[b]]
		}
		return categories[a] < categories[b]
	})

	diversity := 0
	for _, category := range categories {
		if distribution[category] > 5 {
			diversity++
		}
	}

	top3 := categories
	if len(top3) > 3 {
		top3 = top3[:3]
	}

	return ComparisonReport{
		TotalSpending:        total,
		CategoryDistribution: distribution,
		DominantCategory:     categories[0],
		Top3Categories:       append([]string(nil), top3...),
		SpendingDiversity:    diversity,
	}, nil
}
