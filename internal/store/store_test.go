package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daud-shahbaz/pywallet/internal/config"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.Data.Directory = dir
	cfg.Data.ExpensesFile = "expenses.json"
	cfg.Data.ModelsDir = "ml_models"
	cfg.Currency = "PKR"
	cfg.Categories = append([]string(nil), config.DefaultCategories...)
	cfg.Validation.MinAmount = 0
	cfg.Validation.MaxAmount = 1000000
	cfg.Validation.MaxNoteLength = 500
	cfg.ML.AnomalySigma = 2.0
	cfg.ML.MinNotesForTraining = 50
	cfg.ML.MinDataPoints = 20
	cfg.ML.KMeansClusters = 3
	cfg.ML.PredictionWindowMonths = 6
	cfg.ML.ForecastAheadMonths = 3
	cfg.AI.FallbackCategory = "Other"
	return cfg
}

func newTestStore(t *testing.T) *ExpenseStore {
	t.Helper()
	dir := t.TempDir()
	return NewExpenseStore(testConfig(dir), filepath.Join(dir, "expenses.json"))
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)

	id1, err := store.Add(500, "Food", "2025-01-10", "lunch", "")
	require.NoError(t, err)
	id2, err := store.Add(300, "Transport", "2025-01-11", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
}

func TestAddIDAfterDelete(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(500, "Food", "2025-01-10", "", "")
	require.NoError(t, err)
	id2, err := store.Add(300, "Food", "2025-01-11", "", "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(id2))

	id3, err := store.Add(700, "Food", "2025-01-12", "", "")
	require.NoError(t, err)
	// Max existing id is 1 after the delete, so 2 is handed out again; it
	// only grows monotonically relative to what is still stored.
	assert.Equal(t, 2, id3)
}

func TestAddValidation(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name     string
		amount   int64
		category string
		date     string
		note     string
		field    string
	}{
		{"negative amount", -1, "Food", "2025-01-10", "", "amount"},
		{"amount over max", 1000001, "Food", "2025-01-10", "", "amount"},
		{"unknown category", 100, "Bribes", "2025-01-10", "", "category"},
		{"bad date format", 100, "Food", "10/01/2025", "", "date"},
		{"non-date", 100, "Food", "not-a-date", "", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Add(tt.amount, tt.category, tt.date, tt.note, "")
			var verr *walleterror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// Nothing was persisted by the failed attempts.
	assert.Equal(t, 0, store.Table("").Len())
}

func TestAddNoteTooLong(t *testing.T) {
	store := newTestStore(t)

	note := make([]byte, 501)
	for i := range note {
		note[i] = 'x'
	}

	_, err := store.Add(100, "Food", "2025-01-10", string(note), "")
	var verr *walleterror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "note", verr.Field)
}

func TestAddBoundaryAmounts(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(0, "Food", "2025-01-10", "", "")
	assert.NoError(t, err, "minimum amount should be accepted")

	_, err = store.Add(1000000, "Food", "2025-01-10", "", "")
	assert.NoError(t, err, "maximum amount should be accepted")
}

func TestDeleteNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(100, "Food", "2025-01-10", "", "")
	require.NoError(t, err)

	err = store.Delete(99)
	var nferr *walleterror.NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, 99, nferr.ID)

	// The store is untouched.
	assert.Equal(t, 1, store.Table("").Len())
}

func TestGet(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Add(250, "Health", "2025-02-01", "pharmacy", "alice")
	require.NoError(t, err)

	rec, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, int64(250), rec.Amount)
	assert.Equal(t, "Health", rec.Category)
	assert.Equal(t, "alice", rec.Username)

	_, ok = store.Get(999)
	assert.False(t, ok)
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, store.Load())
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewExpenseStore(testConfig(dir), path)
	assert.Empty(t, store.Load())

	// A corrupt store behaves like an empty one: adds still work.
	_, err := store.Add(100, "Food", "2025-01-10", "", "")
	assert.NoError(t, err)
}

func TestTableSkipsUnparseableDates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	content := `[
  {"id": 1, "amount": 100, "category": "Food", "date": "2025-01-10", "note": "", "username": ""},
  {"id": 2, "amount": 200, "category": "Food", "date": "garbage", "note": "", "username": ""}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store := NewExpenseStore(testConfig(dir), path)
	table := store.Table("")
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, int64(100), table.Total())
}

func TestTableOwnerFilter(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(100, "Food", "2025-01-10", "", "alice")
	require.NoError(t, err)
	_, err = store.Add(200, "Food", "2025-01-11", "", "bob")
	require.NoError(t, err)

	assert.Equal(t, 2, store.Table("").Len())
	assert.Equal(t, int64(100), store.Table("alice").Total())
	assert.Equal(t, int64(200), store.Table("bob").Total())
}

func TestFilterTable(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(100, "Food", "2025-01-05", "", "")
	require.NoError(t, err)
	_, err = store.Add(500, "Transport", "2025-01-15", "", "")
	require.NoError(t, err)
	_, err = store.Add(900, "Food", "2025-02-01", "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, store.FilterTable(Filter{Category: "Food"}).Len())
	assert.Equal(t, 2, store.FilterTable(Filter{StartDate: "2025-01-10"}).Len())
	assert.Equal(t, 2, store.FilterTable(Filter{EndDate: "2025-01-31"}).Len())

	min := int64(400)
	max := int64(600)
	filtered := store.FilterTable(Filter{MinAmount: &min, MaxAmount: &max})
	assert.Equal(t, 1, filtered.Len())
	assert.Equal(t, int64(500), filtered.Total())

	// Conjunctive criteria.
	combined := store.FilterTable(Filter{Category: "Food", StartDate: "2025-01-10"})
	assert.Equal(t, 1, combined.Len())
	assert.Equal(t, int64(900), combined.Total())
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	cfg := testConfig(dir)

	store := NewExpenseStore(cfg, path)
	_, err := store.Add(100, "Food", "2025-01-10", "groceries", "")
	require.NoError(t, err)

	reopened := NewExpenseStore(cfg, path)
	records := reopened.Load()
	require.Len(t, records, 1)
	assert.Equal(t, "groceries", records[0].Note)
}

func TestDefaultPathFromConfig(t *testing.T) {
	cfg := testConfig(t.TempDir())
	store := NewExpenseStore(cfg, "")
	assert.Equal(t, cfg.ExpensesPath(), store.Path())
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &walleterror.NotFoundError{ID: 7}
	assert.Equal(t, "expense with ID 7 not found", err.Error())
}
