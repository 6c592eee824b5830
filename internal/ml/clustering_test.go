package ml

import (
	"fmt"
	"testing"

	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterInsufficientData(t *testing.T) {
	cfg, st := newTestStore(t)
	add(t, st, 100, "Food", "2025-06-01", "")

	clusterer := NewSpendingClusterer(cfg, st)
	_, err := clusterer.Cluster()

	var iderr *walleterror.InsufficientDataError
	require.ErrorAs(t, err, &iderr)
	assert.Equal(t, "spending clustering", iderr.Operation)
}

func TestClusterNoSpendingData(t *testing.T) {
	cfg, st := newTestStore(t)
	for i := 0; i < 20; i++ {
		add(t, st, 0, "Food", fmt.Sprintf("2025-05-%02d", i+1), "")
	}

	clusterer := NewSpendingClusterer(cfg, st)
	_, err := clusterer.Cluster()

	var nserr *walleterror.NoSpendingDataError
	require.ErrorAs(t, err, &nserr)
}

func TestClusterSingleObservation(t *testing.T) {
	cfg, st := newTestStore(t)
	for i := 0; i < 14; i++ {
		add(t, st, 100, "Food", fmt.Sprintf("2025-05-%02d", i+1), "")
	}
	for i := 0; i < 6; i++ {
		add(t, st, 50, "Transport", fmt.Sprintf("2025-06-%02d", i+1), "")
	}

	clusterer := NewSpendingClusterer(cfg, st)
	report, err := clusterer.Cluster()
	require.NoError(t, err)

	// With one spending vector every centroid collapses onto it.
	assert.Equal(t, "cluster_0", report.AssignedCluster)
	assert.Equal(t, "Spending Pattern 1", report.ClusterName)
	assert.Equal(t, 3, report.NumClusters)
	assert.Equal(t, "kmeans", report.Method)
	require.Len(t, report.Clusters, 3)

	profile := report.Clusters["cluster_0"]
	require.Len(t, profile.TopCategories, 3)
	assert.Equal(t, "Food", profile.TopCategories[0], "largest share leads")
	assert.Equal(t, "Transport", profile.TopCategories[1])
	assert.Contains(t, profile.Characteristics, "High spending in Food")
}

func TestClusterIsDeterministic(t *testing.T) {
	cfg, st := newTestStore(t)
	for i := 0; i < 20; i++ {
		add(t, st, int64(100+i), "Food", fmt.Sprintf("2025-05-%02d", i+1), "")
	}

	clusterer := NewSpendingClusterer(cfg, st)
	first, err := clusterer.Cluster()
	require.NoError(t, err)
	second, err := clusterer.Cluster()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompare(t *testing.T) {
	cfg, st := newTestStore(t)
	add(t, st, 600, "Food", "2025-06-01", "")
	add(t, st, 300, "Transport", "2025-06-02", "")
	add(t, st, 100, "Health", "2025-06-03", "")

	clusterer := NewSpendingClusterer(cfg, st)
	report, err := clusterer.Compare()
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, report.TotalSpending, 1e-9)
	assert.InDelta(t, 60.0, report.CategoryDistribution["Food"], 1e-9)
	assert.InDelta(t, 30.0, report.CategoryDistribution["Transport"], 1e-9)
	assert.Equal(t, "Food", report.DominantCategory)
	assert.Equal(t, []string{"Food", "Transport", "Health"}, report.Top3Categories)
	assert.Equal(t, 3, report.SpendingDiversity, "all three categories exceed five percent")
}

func TestCompareDiversityThreshold(t *testing.T) {
	cfg, st := newTestStore(t)
	add(t, st, 980, "Food", "2025-06-01", "")
	add(t, st, 20, "Transport", "2025-06-02", "")

	clusterer := NewSpendingClusterer(cfg, st)
	report, err := clusterer.Compare()
	require.NoError(t, err)
	assert.Equal(t, 1, report.SpendingDiversity, "two percent share does not count as diverse")
}

func TestCompareEmptyStore(t *testing.T) {
	cfg, st := newTestStore(t)

	clusterer := NewSpendingClusterer(cfg, st)
	_, err := clusterer.Compare()

	var nserr *walleterror.NoSpendingDataError
	require.ErrorAs(t, err, &nserr)
}
