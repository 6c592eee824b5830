// Package store provides functionality for storing and retrieving expense data.
//
// The backing store is a single JSON array of transaction records, read and
// rewritten wholesale on every mutation. A store-level mutex serializes
// writers within this process; concurrent writers in other processes can
// still race (last writer wins), which is an accepted limitation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/dateutils"
	"github.com/daud-shahbaz/pywallet/internal/fileutils"
	"github.com/daud-shahbaz/pywallet/internal/models"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ExpenseStore manages loading and saving of expense records.
type ExpenseStore struct {
	path string
	cfg  *config.Config

	mu sync.Mutex
}

// NewExpenseStore creates a store backed by the given JSON file.
// An empty path falls back to the configured expenses file.
func NewExpenseStore(cfg *config.Config, path string) *ExpenseStore {
	if path == "" {
		path = cfg.ExpensesPath()
	}
	return &ExpenseStore{path: path, cfg: cfg}
}

// Path returns the backing file path.
func (s *ExpenseStore) Path() string {
	return s.path
}

// Load reads all records from the JSON file. An absent, unreadable or
// malformed file degrades to an empty store rather than an error: corrupt
// data means "no data", never a crash.
func (s *ExpenseStore) Load() []models.Transaction {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warnf("Could not read expense store %s, treating as empty", s.path)
		}
		return []models.Transaction{}
	}

	var records []models.Transaction
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).Warnf("Expense store %s is not a valid JSON array, treating as empty", s.path)
		return []models.Transaction{}
	}
	if records == nil {
		return []models.Transaction{}
	}
	return records
}

// Save serializes the full record sequence to the file, overwriting it.
func (s *ExpenseStore) Save(records []models.Transaction) error {
	if records == nil {
		records = []models.Transaction{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &walleterror.StorageError{Path: s.path, Op: "marshal", Err: err}
	}

	if err := fileutils.WriteFile(s.path, data, 0644); err != nil {
		return &walleterror.StorageError{Path: s.path, Op: "write", Err: err}
	}

	log.WithFields(logrus.Fields{
		"file":  s.path,
		"count": len(records),
	}).Debug("Saved expense store")
	return nil
}

// Table projects the store into a parsed-date tabular view, optionally
// restricted to one owner. Rows whose dates no longer parse are dropped with
// a warning so one corrupt record cannot poison every aggregation.
func (s *ExpenseStore) Table(owner string) models.Table {
	return buildTable(s.Load(), owner)
}

func buildTable(records []models.Transaction, owner string) models.Table {
	rows := make([]models.Row, 0, len(records))
	for _, rec := range records {
		if owner != "" && rec.Username != owner {
			continue
		}
		date, err := dateutils.ParseISODate(rec.Date)
		if err != nil {
			log.WithField("id", rec.ID).Warnf("Skipping record with unparseable date %q", rec.Date)
			continue
		}
		rows = append(rows, models.Row{
			ID:       rec.ID,
			Amount:   rec.Amount,
			Category: rec.Category,
			Date:     date,
			Note:     rec.Note,
			Username: rec.Username,
		})
	}
	return models.Table{Rows: rows}
}

// Add validates and appends a new expense, assigning the next id.
// Validation happens before any I/O; a validation failure leaves the store
// untouched.
func (s *ExpenseStore) Add(amount int64, category, date, note, owner string) (int, error) {
	if err := s.validate(amount, category, date, note); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Load()
	newID := nextID(records)

	records = append(records, models.Transaction{
		ID:       newID,
		Amount:   amount,
		Category: category,
		Date:     date,
		Note:     note,
		Username: owner,
	})

	if err := s.Save(records); err != nil {
		return 0, err
	}

	log.WithFields(logrus.Fields{
		"id":       newID,
		"amount":   amount,
		"category": category,
	}).Info("Expense added")
	return newID, nil
}

func (s *ExpenseStore) validate(amount int64, category, date, note string) error {
	v := s.cfg.Validation

	if amount < v.MinAmount || amount > v.MaxAmount {
		return &walleterror.ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("must be between %d and %d", v.MinAmount, v.MaxAmount),
		}
	}

	if !s.categoryAllowed(category) {
		return &walleterror.ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("must be one of %v", s.cfg.Categories),
		}
	}

	if _, err := dateutils.ParseISODate(date); err != nil {
		return &walleterror.ValidationError{
			Field:  "date",
			Reason: "must be in YYYY-MM-DD format",
		}
	}

	if len(note) > v.MaxNoteLength {
		return &walleterror.ValidationError{
			Field:  "note",
			Reason: fmt.Sprintf("must be less than %d characters", v.MaxNoteLength),
		}
	}

	return nil
}

func (s *ExpenseStore) categoryAllowed(category string) bool {
	for _, c := range s.cfg.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func nextID(records []models.Transaction) int {
	maxID := 0
	for _, rec := range records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	return maxID + 1
}

// Delete removes the record with the given id. A missing id is reported as
// NotFoundError, distinct from a storage failure, and leaves the store
// unchanged.
func (s *ExpenseStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Load()
	remaining := make([]models.Transaction, 0, len(records))
	for _, rec := range records {
		if rec.ID != id {
			remaining = append(remaining, rec)
		}
	}

	if len(remaining) == len(records) {
		return &walleterror.NotFoundError{ID: id}
	}

	if err := s.Save(remaining); err != nil {
		return err
	}

	log.WithField("id", id).Info("Expense deleted")
	return nil
}

// Get returns a single record by id.
func (s *ExpenseStore) Get(id int) (models.Transaction, bool) {
	for _, rec := range s.Load() {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.Transaction{}, false
}

// Filter describes the conjunctive criteria of a filtered view.
// Zero-valued criteria are no-ops. Date bounds compare lexically, which
// matches chronological order because stored dates are ISO formatted.
type Filter struct {
	Category  string
	StartDate string
	EndDate   string
	MinAmount *int64
	MaxAmount *int64
}

// FilterTable returns the tabular view of all records matching the filter.
func (s *ExpenseStore) FilterTable(f Filter) models.Table {
	var matched []models.Transaction
	for _, rec := range s.Load() {
		if f.Category != "" && rec.Category != f.Category {
			continue
		}
		if f.StartDate != "" && rec.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && rec.Date > f.EndDate {
			continue
		}
		if f.MinAmount != nil && rec.Amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && rec.Amount > *f.MaxAmount {
			continue
		}
		matched = append(matched, rec)
	}
	return buildTable(matched, "")
}
