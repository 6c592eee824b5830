package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daud-shahbaz/pywallet/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBudgetsMissingFileUsesDefaults(t *testing.T) {
	store := NewBudgetStore(filepath.Join(t.TempDir(), "nope.yaml"), "")

	budgets, err := store.LoadBudgets()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBudgets, budgets)

	// Mutating the result must not leak into the defaults.
	budgets["Food"] = 99999
	assert.Equal(t, float64(10000), config.DefaultBudgets["Food"])
}

func TestLoadBudgetsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budgets.yaml")
	content := "Food: 12000\nTransport: 4000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store := NewBudgetStore(path, "")
	budgets, err := store.LoadBudgets()
	require.NoError(t, err)
	assert.Equal(t, float64(12000), budgets["Food"])
	assert.Equal(t, float64(4000), budgets["Transport"])
	assert.Len(t, budgets, 2)
}

func TestSaveAndLoadBudgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.yaml")
	store := NewBudgetStore(path, "")

	want := map[string]float64{"Food": 8000, "Travel": 15000}
	require.NoError(t, store.SaveBudgets(want))

	got, err := store.LoadBudgets()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCategoriesMissingFileUsesDefaults(t *testing.T) {
	store := NewBudgetStore("", filepath.Join(t.TempDir(), "nope.yaml"))

	categories, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCategories, categories)
}

func TestLoadCategoriesDirectArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- Food\n- Rent\n"), 0600))

	store := NewBudgetStore("", path)
	categories, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Rent"}, categories)
}

func TestLoadCategoriesTopLevelKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - Food\n  - Fun\n"), 0600))

	store := NewBudgetStore("", path)
	categories, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Fun"}, categories)
}
