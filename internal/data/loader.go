package data

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mohamedkhairy/sma-crossover/internal/models"
)

var (
	// ErrUnknownFormat is returned for an input format with no registered loader
	ErrUnknownFormat = errors.New("unknown input format")
	// ErrMissingColumn is returned when a configured column is absent from every row
	ErrMissingColumn = errors.New("column not present in input")
)

// Loader reads an ordered price series from a file
type Loader interface {
	// Load reads path and returns its bars in file order
	Load(ctx context.Context, path string) (*models.BarSet, error)

	// Format returns the input format this loader handles (e.g., "csv")
	Format() string
}

// Options configures loaders. Only the CSV loader reads the column fields.
type Options struct {
	HasHeader   bool
	LabelColumn int
	CloseColumn int
}

// DefaultOptions matches the usual OHLC export: a header row, the date in
// the first column and the close in the fifth.
func DefaultOptions() Options {
	return Options{
		HasHeader:   true,
		LabelColumn: 0,
		CloseColumn: 4,
	}
}

// LoaderFactory creates loaders by format name
type LoaderFactory struct {
	factories map[string]func(Options) Loader
}

// NewLoaderFactory creates a factory with the built-in csv and parquet loaders
func NewLoaderFactory() *LoaderFactory {
	factory := &LoaderFactory{
		factories: make(map[string]func(Options) Loader),
	}

	_ = factory.RegisterLoader("csv", func(opts Options) Loader { return NewCSVLoader(opts) })
	_ = factory.RegisterLoader("parquet", func(Options) Loader { return NewParquetLoader() })

	return factory
}

// CreateLoader creates a loader for format. "auto" picks the format from the
// path's extension.
func (f *LoaderFactory) CreateLoader(format, path string, opts Options) (Loader, error) {
	if format == "" || format == "auto" {
		format = DetectFormat(path)
	}

	factoryFunc, exists := f.factories[format]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return factoryFunc(opts), nil
}

// RegisterLoader registers a loader constructor for a format
func (f *LoaderFactory) RegisterLoader(format string, factoryFunc func(Options) Loader) error {
	if _, exists := f.factories[format]; exists {
		return errors.New("loader format already registered: " + format)
	}
	f.factories[format] = factoryFunc
	return nil
}

// ListFormats returns the registered formats, sorted
func (f *LoaderFactory) ListFormats() []string {
	formats := make([]string, 0, len(f.factories))
	for format := range f.factories {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// DetectFormat guesses the input format from the file extension, falling
// back to csv
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return "parquet"
	default:
		return "csv"
	}
}
