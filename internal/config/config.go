package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the crossover tool
type Config struct {
	// Common
	Environment string
	LogLevel    string

	Input    InputConfig
	Analysis AnalysisConfig
	Output   OutputConfig
}

// InputConfig describes where the price series comes from
type InputConfig struct {
	Path   string
	Format string // "auto", "csv" or "parquet"

	// CSV layout
	HasHeader   bool
	LabelColumn int
	CloseColumn int
}

// AnalysisConfig holds the moving average windows
type AnalysisConfig struct {
	ShortWindow    int
	LongWindow     int
	CheckDrift     bool
	DriftTolerance float64
}

// OutputConfig controls rendering and the metrics textfile
type OutputConfig struct {
	Format          string // "text", "json" or "yaml"
	MetricsTextfile string
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Input: InputConfig{
			Path:        getEnv("INPUT_PATH", "data.csv"),
			Format:      getEnv("INPUT_FORMAT", "auto"),
			HasHeader:   getEnvAsBool("CSV_HAS_HEADER", true),
			LabelColumn: getEnvAsInt("CSV_LABEL_COLUMN", 0),
			CloseColumn: getEnvAsInt("CSV_CLOSE_COLUMN", 4),
		},
		Analysis: AnalysisConfig{
			ShortWindow:    getEnvAsInt("SHORT_WINDOW", 5),
			LongWindow:     getEnvAsInt("LONG_WINDOW", 10),
			CheckDrift:     getEnvAsBool("CHECK_DRIFT", false),
			DriftTolerance: getEnvAsFloat("DRIFT_TOLERANCE", 1e-6),
		},
		Output: OutputConfig{
			Format:          getEnv("OUTPUT_FORMAT", "text"),
			MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration. Window lengths are left to the
// analysis engine, which owns that error.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("INPUT_PATH is required")
	}
	switch c.Input.Format {
	case "auto", "csv", "parquet":
	default:
		return fmt.Errorf("INPUT_FORMAT must be auto, csv or parquet, got %q", c.Input.Format)
	}
	if c.Input.LabelColumn < 0 || c.Input.CloseColumn < 0 {
		return fmt.Errorf("CSV column indexes must not be negative")
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("OUTPUT_FORMAT must be text, json or yaml, got %q", c.Output.Format)
	}
	if c.Analysis.DriftTolerance < 0 {
		return fmt.Errorf("DRIFT_TOLERANCE must not be negative")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}
