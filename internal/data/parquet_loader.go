package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/mohamedkhairy/sma-crossover/internal/models"
)

// BarRecord is the Parquet schema for bar data.
type BarRecord struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
}

// ParquetLoader reads bars from a Parquet file. Rows are taken in file
// order; the label is the bar timestamp in RFC 3339.
type ParquetLoader struct{}

// NewParquetLoader creates a Parquet loader
func NewParquetLoader() *ParquetLoader {
	return &ParquetLoader{}
}

// Format returns "parquet"
func (l *ParquetLoader) Format() string {
	return "parquet"
}

// Load reads the file at path
func (l *ParquetLoader) Load(ctx context.Context, path string) (*models.BarSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := parquet.ReadFile[BarRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	set := models.NewBarSet(path, nil)
	for _, r := range records {
		bar := models.Bar{
			Label: time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339),
			Close: r.Close,
		}
		if bar.Validate() != nil {
			set.Skipped++
			continue
		}
		set.Append(bar)
	}
	return set, nil
}

// WriteParquetFile writes records to path, creating parent directories.
func WriteParquetFile(path string, records []BarRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}
