package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mohamedkhairy/sma-crossover/internal/models"
	"github.com/mohamedkhairy/sma-crossover/pkg/logger"
)

// ctxCheckEvery is how many rows are read between context checks
const ctxCheckEvery = 4096

// CSVLoader reads comma separated rows. Rows whose close column is missing or
// does not parse as a number are skipped and counted, not treated as errors.
type CSVLoader struct {
	opts Options
}

// NewCSVLoader creates a CSV loader
func NewCSVLoader(opts Options) *CSVLoader {
	return &CSVLoader{opts: opts}
}

// Format returns "csv"
func (l *CSVLoader) Format() string {
	return "csv"
}

// Load reads the file at path
func (l *CSVLoader) Load(ctx context.Context, path string) (*models.BarSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	set, err := l.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	set.Source = path
	return set, nil
}

// Read parses rows from r
func (l *CSVLoader) Read(ctx context.Context, r io.Reader) (*models.BarSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	set := models.NewBarSet("", nil)
	rows, widest := 0, 0
	for line := 0; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 0 && l.opts.HasHeader {
			continue
		}
		rows++
		widest = max(widest, len(record))

		bar, ok := l.parse(record)
		if !ok {
			set.Skipped++
			continue
		}
		set.Append(bar)
	}

	if rows > 0 && set.Len() == 0 && widest <= l.opts.CloseColumn {
		return nil, fmt.Errorf("%w: close column %d, widest row has %d fields", ErrMissingColumn, l.opts.CloseColumn, widest)
	}

	if set.Skipped > 0 {
		logger.Debug("Skipped unparseable rows",
			logger.Int("skipped", set.Skipped),
			logger.Int("kept", set.Len()),
		)
	}
	return set, nil
}

func (l *CSVLoader) parse(record []string) (models.Bar, bool) {
	if l.opts.CloseColumn >= len(record) {
		return models.Bar{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(record[l.opts.CloseColumn]), 64)
	if err != nil {
		return models.Bar{}, false
	}

	bar := models.Bar{Close: price}
	if l.opts.LabelColumn < len(record) {
		bar.Label = record[l.opts.LabelColumn]
	}
	if bar.Validate() != nil {
		return models.Bar{}, false
	}
	return bar, true
}
