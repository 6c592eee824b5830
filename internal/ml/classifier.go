package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/fileutils"
	"github.com/daud-shahbaz/pywallet/internal/store"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"
)

const (
	vectorizerFile = "classifier_vectorizer.json"
	modelFile      = "classifier_model.json"

	// maxVocabularyFeatures bounds the TF-IDF vocabulary size.
	maxVocabularyFeatures = 100

	// nbSmoothing is the Laplace smoothing constant for the classifier.
	nbSmoothing = 1.0
)

// CategoryClassifier predicts an expense category from free-text notes.
// Training writes the vectorizer and model as JSON artifacts under the
// configured models directory; prediction loads them back on each call.
type CategoryClassifier struct {
	store *store.ExpenseStore
	cfg   *config.Config
}

// NewCategoryClassifier creates a classifier over the given store.
func NewCategoryClassifier(cfg *config.Config, st *store.ExpenseStore) *CategoryClassifier {
	return &CategoryClassifier{store: st, cfg: cfg}
}

func (c *CategoryClassifier) vectorizerPath() string {
	return filepath.Join(c.cfg.ModelsPath(), vectorizerFile)
}

func (c *CategoryClassifier) modelPath() string {
	return filepath.Join(c.cfg.ModelsPath(), modelFile)
}

// Train fits the vectorizer and naive Bayes model on every expense that
// carries a non-empty note and persists both artifacts together. It returns
// the number of training examples used.
func (c *CategoryClassifier) Train() (int, error) {
	noted := c.store.Table("").WithNotes()
	if noted.Len() < c.cfg.ML.MinNotesForTraining {
		return 0, &walleterror.InsufficientDataError{
			Operation: "classifier training",
			Required:  c.cfg.ML.MinNotesForTraining,
			Available: noted.Len(),
		}
	}

	docs := make([]string, 0, noted.Len())
	labels := make([]string, 0, noted.Len())
	for _, row := range noted.Rows {
		docs = append(docs, row.Note)
		labels = append(labels, row.Category)
	}

	vectorizer := fitTfidf(docs, maxVocabularyFeatures)
	features := make([][]float64, len(docs))
	for i, doc := range docs {
		features[i] = vectorizer.transform(doc)
	}
	model := fitNaiveBayes(features, labels, nbSmoothing)

	if err := fileutils.EnsureDirectoryExists(c.cfg.ModelsPath()); err != nil {
		return 0, &walleterror.StorageError{Path: c.cfg.ModelsPath(), Op: "mkdir", Err: err}
	}
	if err := writeArtifact(c.vectorizerPath(), vectorizer); err != nil {
		return 0, err
	}
	if err := writeArtifact(c.modelPath(), model); err != nil {
		return 0, err
	}

	log.WithField("examples", len(docs)).Info("Classifier trained")
	return len(docs), nil
}

func writeArtifact(path string, artifact interface{}) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return &walleterror.StorageError{Path: path, Op: "marshal", Err: err}
	}
	if err := fileutils.WriteFile(path, data, 0644); err != nil {
		return &walleterror.StorageError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// Prediction is the classifier's answer for one note. Recommended marks
// predictions confident enough to auto-apply.
type Prediction struct {
	PredictedCategory string  `json:"predicted_category"`
	Confidence        float64 `json:"confidence"`
	Note              string  `json:"note"`
	Recommended       bool    `json:"recommended"`
}

// Predict classifies a note using the persisted artifacts. When no trained
// model exists the error carries the configured fallback category.
func (c *CategoryClassifier) Predict(note string) (Prediction, error) {
	var vectorizer tfidfVectorizer
	if err := c.readArtifact(c.vectorizerPath(), &vectorizer); err != nil {
		return Prediction{}, err
	}
	var model multinomialNB
	if err := c.readArtifact(c.modelPath(), &model); err != nil {
		return Prediction{}, err
	}

	category, confidence := model.predict(vectorizer.transform(note))
	return Prediction{
		PredictedCategory: category,
		Confidence:        confidence,
		Note:              note,
		Recommended:       confidence > 0.5,
	}, nil
}

func (c *CategoryClassifier) readArtifact(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &walleterror.NotTrainedError{DefaultCategory: c.cfg.AI.FallbackCategory}
		}
		return &walleterror.StorageError{Path: path, Op: "read", Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A corrupt artifact is indistinguishable from an untrained model
		// as far as the caller is concerned: retraining fixes both.
		return &walleterror.NotTrainedError{DefaultCategory: c.cfg.AI.FallbackCategory}
	}
	return nil
}

// CategoryKeywords extracts the most common meaningful words from the notes
// of one category: top ten by frequency, then filtered to words longer than
// three characters. No notes means an empty list, not an error.
func (c *CategoryClassifier) CategoryKeywords(category string) []string {
	noted := c.store.Table("").Category(category).WithNotes()
	if noted.Empty() {
		return []string{}
	}

	wordCounts := make(map[string]int)
	for _, row := range noted.Rows {
		for _, word := range strings.Fields(strings.ToLower(row.Note)) {
			wordCounts[word]++
		}
	}

	words := make([]string, 0, len(wordCounts))
	for word := range wordCounts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if wordCounts[words[i]] != wordCounts[words[j]] {
			return wordCounts[words[i]] > wordCounts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > 10 {
		words = words[:10]
	}

	keywords := []string{}
	for _, word := range words {
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
