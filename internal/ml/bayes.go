package ml

import (
	"math"
	"sort"
)

// multinomialNB is a multinomial naive Bayes classifier with Laplace
// smoothing over non-negative feature vectors. Classes are kept sorted so
// that training twice on the same data yields an identical model.
type multinomialNB struct {
	Classes       []string    `json:"classes"`
	ClassLogPrior []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
	Alpha         float64     `json:"alpha"`
}

// fitNaiveBayes trains the classifier on feature rows and their labels.
func fitNaiveBayes(features [][]float64, labels []string, alpha float64) *multinomialNB {
	classSet := make(map[string]bool)
	for _, label := range labels {
		classSet[label] = true
	}
	classes := make([]string, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	classIndex := make(map[string]int, len(classes))
	for i, class := range classes {
		classIndex[class] = i
	}

	numFeatures := 0
	if len(features) > 0 {
		numFeatures = len(features[0])
	}

	classCounts := make([]float64, len(classes))
	featureCounts := make([][]float64, len(classes))
	for i := range featureCounts {
		featureCounts[i] = make([]float64, numFeatures)
	}

	for i, row := range features {
		ci := classIndex[labels[i]]
		classCounts[ci]++
		for j, value := range row {
			featureCounts[ci][j] += value
		}
	}

	model := &multinomialNB{
		Classes:        classes,
		ClassLogPrior:  make([]float64, len(classes)),
		FeatureLogProb: make([][]float64, len(classes)),
		Alpha:          alpha,
	}

	total := float64(len(features))
	for ci := range classes {
		model.ClassLogPrior[ci] = math.Log(classCounts[ci] / total)

		var classTotal float64
		for _, count := range featureCounts[ci] {
			classTotal += count
		}
		denom := classTotal + alpha*float64(numFeatures)

		model.FeatureLogProb[ci] = make([]float64, numFeatures)
		for j, count := range featureCounts[ci] {
			model.FeatureLogProb[ci][j] = math.Log((count + alpha) / denom)
		}
	}

	return model
}

// predict returns the most likely class for the feature vector together
// with its posterior probability.
func (m *multinomialNB) predict(features []float64) (string, float64) {
	logLikelihoods := make([]float64, len(m.Classes))
	for ci := range m.Classes {
		ll := m.ClassLogPrior[ci]
		for j, value := range features {
			if value != 0 {
				ll += value * m.FeatureLogProb[ci][j]
			}
		}
		logLikelihoods[ci] = ll
	}

	// Log-sum-exp normalization keeps the posterior numerically stable.
	maxLL := logLikelihoods[0]
	best := 0
	for ci, ll := range logLikelihoods {
		if ll > maxLL {
			maxLL = ll
			best = ci
		}
	}

	var sum float64
	for _, ll := range logLikelihoods {
		sum += math.Exp(ll - maxLL)
	}

	return m.Classes[best], 1 / sum
}
