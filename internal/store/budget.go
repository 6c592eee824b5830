package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daud-shahbaz/pywallet/internal/config"

	"gopkg.in/yaml.v3"
)

// BudgetStore manages loading and saving of budget and category configuration.
type BudgetStore struct {
	BudgetsFile    string
	CategoriesFile string
}

// NewBudgetStore creates a new store for budget-related configuration.
func NewBudgetStore(budgetsFile, categoriesFile string) *BudgetStore {
	return &BudgetStore{
		BudgetsFile:    budgetsFile,
		CategoriesFile: categoriesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *BudgetStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
		filepath.Join("data", filename),   // ./data/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/pywallet/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "pywallet", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadBudgets loads the category → monthly limit mapping from the YAML file.
// A missing file falls back to the configured defaults (not an error).
func (s *BudgetStore) LoadBudgets() (map[string]float64, error) {
	filename := s.BudgetsFile
	if filename == "" {
		filename = "budgets.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Budgets file not found: %s, using defaults", filename)
			return copyBudgets(config.DefaultBudgets), nil
		}
		return nil, fmt.Errorf("error resolving budgets file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading budgets file: %w", err)
	}

	var budgets map[string]float64
	if err := yaml.Unmarshal(data, &budgets); err != nil {
		return nil, fmt.Errorf("error parsing budgets file: %w", err)
	}
	if len(budgets) == 0 {
		return copyBudgets(config.DefaultBudgets), nil
	}

	log.Debugf("Loaded %d budgets from %s", len(budgets), filePath)
	return budgets, nil
}

// SaveBudgets saves the budget mapping to YAML
func (s *BudgetStore) SaveBudgets(budgets map[string]float64) error {
	filename := s.BudgetsFile
	if filename == "" {
		filename = "budgets.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving budgets file: %w", err)
	}

	// If file not found, use the data directory by default
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("data", filename)
		} else {
			filePath = filename
		}
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(budgets)
	if err != nil {
		return fmt.Errorf("error marshaling budgets: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing budgets: %w", err)
	}

	log.Debugf("Saved %d budgets to %s", len(budgets), filePath)
	return nil
}

// categoriesConfig is the top-level shape of the categories YAML file.
type categoriesConfig struct {
	Categories []string `yaml:"categories"`
}

// LoadCategories loads the allowed category set from the YAML file.
// A missing file falls back to the configured defaults.
func (s *BudgetStore) LoadCategories() ([]string, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Categories file not found: %s, using defaults", filename)
			return append([]string(nil), config.DefaultCategories...), nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// First try the proper structure: "categories: [...]"
	var cfg categoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Categories) > 0 {
		log.Debugf("Loaded %d categories from %s", len(cfg.Categories), filePath)
		return cfg.Categories, nil
	}

	// Fallback: a direct array without the top-level key
	var categories []string
	if err := yaml.Unmarshal(data, &categories); err == nil && len(categories) > 0 {
		log.Debugf("Loaded %d categories from %s using direct array", len(categories), filePath)
		return categories, nil
	}

	return append([]string(nil), config.DefaultCategories...), nil
}

func copyBudgets(src map[string]float64) map[string]float64 {
	budgets := make(map[string]float64, len(src))
	for category, limit := range src {
		budgets[category] = limit
	}
	return budgets
}
