// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultCategories is the fixed category set every transaction must belong to.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Health",
	"Education",
	"Housing",
	"Entertainment",
	"Savings",
	"Shopping",
	"Travel",
	"Gifts",
	"Utilities",
	"Insurance",
	"Other",
}

// DefaultBudgets maps each category to its default monthly limit in PKR.
var DefaultBudgets = map[string]float64{
	"Food":          10000,
	"Transport":     5000,
	"Health":        3000,
	"Education":     5000,
	"Housing":       20000,
	"Entertainment": 2000,
	"Savings":       10000,
	"Shopping":      3000,
	"Travel":        5000,
	"Gifts":         2000,
	"Utilities":     3000,
	"Insurance":     2000,
	"Other":         1000,
}

// MonthsAbbreviation maps month number - 1 to its short display name.
var MonthsAbbreviation = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory    string `mapstructure:"directory" yaml:"directory"`
		ExpensesFile string `mapstructure:"expenses_file" yaml:"expenses_file"`
		BudgetsFile  string `mapstructure:"budgets_file" yaml:"budgets_file"`
		ModelsDir    string `mapstructure:"models_dir" yaml:"models_dir"`
	} `mapstructure:"data" yaml:"data"`

	Currency string `mapstructure:"currency" yaml:"currency"`

	Categories []string `mapstructure:"categories" yaml:"categories"`

	Validation struct {
		MinAmount     int64 `mapstructure:"min_amount" yaml:"min_amount"`
		MaxAmount     int64 `mapstructure:"max_amount" yaml:"max_amount"`
		MaxNoteLength int   `mapstructure:"max_note_length" yaml:"max_note_length"`
	} `mapstructure:"validation" yaml:"validation"`

	ML struct {
		AnomalySigma           float64 `mapstructure:"anomaly_sigma" yaml:"anomaly_sigma"`
		MinNotesForTraining    int     `mapstructure:"min_notes_for_training" yaml:"min_notes_for_training"`
		MinDataPoints          int     `mapstructure:"min_data_points" yaml:"min_data_points"`
		KMeansClusters         int     `mapstructure:"kmeans_clusters" yaml:"kmeans_clusters"`
		PredictionWindowMonths int     `mapstructure:"prediction_window_months" yaml:"prediction_window_months"`
		ForecastAheadMonths    int     `mapstructure:"forecast_ahead_months" yaml:"forecast_ahead_months"`
	} `mapstructure:"ml" yaml:"ml"`

	AI struct {
		Enabled          bool   `mapstructure:"enabled" yaml:"enabled"`
		Model            string `mapstructure:"model" yaml:"model"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
		APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// ExpensesPath returns the full path to the JSON expense store.
func (c *Config) ExpensesPath() string {
	return filepath.Join(c.Data.Directory, c.Data.ExpensesFile)
}

// ModelsPath returns the directory holding trained classifier artifacts.
func (c *Config) ModelsPath() string {
	return filepath.Join(c.Data.Directory, c.Data.ModelsDir)
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.pywallet")
	v.AddConfigPath(".pywallet")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("PYWALLET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. API key always comes from the unprefixed environment variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.directory", "data")
	v.SetDefault("data.expenses_file", "expenses.json")
	v.SetDefault("data.budgets_file", "budgets.yaml")
	v.SetDefault("data.models_dir", "ml_models")

	v.SetDefault("currency", "PKR")
	v.SetDefault("categories", DefaultCategories)

	// Validation defaults
	v.SetDefault("validation.min_amount", 0)
	v.SetDefault("validation.max_amount", 1000000)
	v.SetDefault("validation.max_note_length", 500)

	// ML defaults
	v.SetDefault("ml.anomaly_sigma", 2.0)
	v.SetDefault("ml.min_notes_for_training", 50)
	v.SetDefault("ml.min_data_points", 20)
	v.SetDefault("ml.kmeans_clusters", 3)
	v.SetDefault("ml.prediction_window_months", 6)
	v.SetDefault("ml.forecast_ahead_months", 3)

	// AI coach defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.fallback_category", "Other")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}

	if config.Validation.MinAmount > config.Validation.MaxAmount {
		return fmt.Errorf("validation.min_amount %d exceeds validation.max_amount %d",
			config.Validation.MinAmount, config.Validation.MaxAmount)
	}

	if config.Validation.MaxNoteLength < 1 {
		return fmt.Errorf("validation.max_note_length must be positive, got: %d", config.Validation.MaxNoteLength)
	}

	if config.ML.AnomalySigma <= 0 {
		return fmt.Errorf("ml.anomaly_sigma must be positive, got: %f", config.ML.AnomalySigma)
	}

	if config.ML.KMeansClusters < 1 {
		return fmt.Errorf("ml.kmeans_clusters must be at least 1, got: %d", config.ML.KMeansClusters)
	}

	if config.ML.PredictionWindowMonths < 1 || config.ML.ForecastAheadMonths < 1 {
		return fmt.Errorf("ml prediction window and forecast horizon must be at least 1 month")
	}

	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
