package ml

import (
	"math"
	"math/rand"
)

const kmeansMaxIterations = 300

// kmeansFit runs Lloyd's algorithm over the points with a fixed-seed RNG so
// the clustering is reproducible. With fewer points than clusters every
// centroid is seeded from an existing point, mirroring how a single
// observation still yields a full set of k centers.
func kmeansFit(points [][]float64, k int, seed int64) ([][]float64, []int) {
	if len(points) == 0 || k <= 0 {
		return nil, nil
	}
	dims := len(points[0])
	rng := rand.New(rand.NewSource(seed))

	centroids := make([][]float64, k)
	for i := range centroids {
		src := points[rng.Intn(len(points))]
		centroids[i] = append([]float64(nil), src...)
	}

	assignments := make([]int, len(points))
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for pi, point := range points {
			best := nearestCentroid(point, centroids)
			if assignments[pi] != best {
				assignments[pi] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dims)
		}
		for pi, point := range points {
			ci := assignments[pi]
			counts[ci]++
			for d, v := range point {
				sums[ci][d] += v
			}
		}
		for ci := range centroids {
			if counts[ci] == 0 {
				// Empty cluster keeps its previous center.
				continue
			}
			for d := range centroids[ci] {
				centroids[ci][d] = sums[ci][d] / float64(counts[ci])
			}
		}
	}

	return centroids, assignments
}

func nearestCentroid(point []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.MaxFloat64
	for ci, centroid := range centroids {
		var dist float64
		for d, v := range point {
			diff := v - centroid[d]
			dist += diff * diff
		}
		if dist < bestDist {
			bestDist = dist
			best = ci
		}
	}
	return best
}
