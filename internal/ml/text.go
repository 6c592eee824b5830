package ml

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches word tokens of two or more characters, the same
// shape the note vocabulary is built from.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// englishStopwords are dropped from the vocabulary before feature selection.
var englishStopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "am": true, "an": true, "and": true, "any": true, "are": true,
	"as": true, "at": true, "be": true, "because": true, "been": true,
	"before": true, "being": true, "below": true, "between": true, "both": true,
	"but": true, "by": true, "can": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "had": true, "has": true,
	"have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "him": true, "his": true, "how": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true, "me": true,
	"more": true, "most": true, "my": true, "no": true, "nor": true, "not": true,
	"now": true, "of": true, "off": true, "on": true, "once": true, "only": true,
	"or": true, "other": true, "our": true, "out": true, "over": true,
	"own": true, "same": true, "she": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"them": true, "then": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "to": true, "too": true,
	"under": true, "until": true, "up": true, "very": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "who": true, "whom": true, "why": true,
	"will": true, "with": true, "you": true, "your": true,
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// tfidfVectorizer turns free-text notes into bounded-size TF-IDF feature
// vectors: lower-cased word tokens, stopword-filtered, vocabulary capped at
// MaxFeatures terms, smoothed inverse document frequency, l2-normalized rows.
type tfidfVectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	MaxFeatures int            `json:"max_features"`
}

// fitTfidf builds the vocabulary from the corpus, keeping the MaxFeatures
// most frequent terms, and computes per-term smoothed IDF weights.
func fitTfidf(docs []string, maxFeatures int) *tfidfVectorizer {
	termCounts := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, token := range tokenize(doc) {
			if englishStopwords[token] {
				continue
			}
			termCounts[token]++
			if !seen[token] {
				seen[token] = true
				docFreq[token]++
			}
		}
	}

	terms := make([]string, 0, len(termCounts))
	for term := range termCounts {
		terms = append(terms, term)
	}
	// Most frequent first; ties broken alphabetically for determinism.
	sort.Slice(terms, func(i, j int) bool {
		if termCounts[terms[i]] != termCounts[terms[j]] {
			return termCounts[terms[i]] > termCounts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return &tfidfVectorizer{
		Vocabulary:  vocabulary,
		IDF:         idf,
		MaxFeatures: maxFeatures,
	}
}

// transform vectorizes a single document against the fitted vocabulary.
func (v *tfidfVectorizer) transform(doc string) []float64 {
	features := make([]float64, len(v.IDF))
	for _, token := range tokenize(doc) {
		if idx, ok := v.Vocabulary[token]; ok {
			features[idx]++
		}
	}

	var norm float64
	for i := range features {
		features[i] *= v.IDF[i]
		norm += features[i] * features[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range features {
			features[i] /= norm
		}
	}
	return features
}
