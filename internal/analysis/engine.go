// Package analysis runs one moving-average crossover analysis over a loaded
// price series.
package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mohamedkhairy/sma-crossover/internal/models"
	"github.com/mohamedkhairy/sma-crossover/pkg/crossover"
	"github.com/mohamedkhairy/sma-crossover/pkg/indicator"
	"github.com/mohamedkhairy/sma-crossover/pkg/logger"
)

// EngineConfig holds configuration for the analysis engine
type EngineConfig struct {
	ShortWindow    int
	LongWindow     int
	CheckDrift     bool    // recompute both averages from scratch and compare
	DriftTolerance float64 // largest drift logged without a warning
}

// DefaultEngineConfig returns default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ShortWindow:    5,
		LongWindow:     10,
		DriftTolerance: 1e-6,
	}
}

// DriftCheck compares the incremental SMA with a from-scratch recompute
type DriftCheck struct {
	Role     string  `json:"role" yaml:"role"`
	Window   int     `json:"window" yaml:"window"`
	MaxDrift float64 `json:"max_drift" yaml:"max_drift"`
	Position int     `json:"position" yaml:"position"` // -1 when nothing was compared
	Exceeded bool    `json:"exceeded" yaml:"exceeded"`
}

// Result is the outcome of one run
type Result struct {
	Bars     *models.BarSet
	Short    *indicator.AverageSeries
	Long     *indicator.AverageSeries
	Events   []crossover.Event
	Drift    []DriftCheck
	Duration time.Duration
}

// Engine computes both moving averages and detects their crossovers
type Engine struct {
	config EngineConfig
}

// NewEngine creates a new analysis engine
func NewEngine(config EngineConfig) *Engine {
	return &Engine{config: config}
}

// Config returns the engine configuration
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Run analyses bars. A window below 1 is the only error; too little data
// yields a result with no events.
func (e *Engine) Run(ctx context.Context, bars *models.BarSet) (*Result, error) {
	start := time.Now()
	log := logger.WithContext(ctx)

	if bars == nil {
		bars = models.NewBarSet("", nil)
	}
	if err := bars.Validate(); err != nil {
		logger.ErrorsTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	shortWindow, longWindow := e.config.ShortWindow, e.config.LongWindow
	if shortWindow >= longWindow {
		log.Warn("Short window is not shorter than long window; signals follow the same rule but lose their usual meaning",
			logger.Int("short_window", shortWindow),
			logger.Int("long_window", longWindow),
		)
	}

	short, long, err := e.computeAverages(bars.Closes)
	if err != nil {
		logger.ErrorsTotal.WithLabelValues("invalid_window").Inc()
		return nil, err
	}

	n := bars.Len()
	logger.ObservationsLoaded.Set(float64(n))
	logger.RowsSkipped.Add(float64(bars.Skipped))

	if n <= max(shortWindow, longWindow) {
		log.Info("Not enough observations for a crossover",
			logger.Int("observations", n),
			logger.Int("short_window", shortWindow),
			logger.Int("long_window", longWindow),
		)
	}

	events := crossover.DetectCrossovers(short, long, n)
	buys, sells := crossover.Split(events)
	logger.SignalsTotal.WithLabelValues(crossover.Buy.String()).Add(float64(len(buys)))
	logger.SignalsTotal.WithLabelValues(crossover.Sell.String()).Add(float64(len(sells)))

	result := &Result{
		Bars:   bars,
		Short:  short,
		Long:   long,
		Events: events,
	}

	if e.config.CheckDrift {
		result.Drift, err = e.checkDrift(ctx, bars.Closes, short, long)
		if err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	logger.RunDuration.Set(result.Duration.Seconds())

	log.Info("Crossover analysis complete",
		logger.Int("observations", n),
		logger.Int("buy_signals", len(buys)),
		logger.Int("sell_signals", len(sells)),
		logger.Duration("duration", result.Duration),
	)
	return result, nil
}

// computeAverages runs both windows concurrently and waits for both.
func (e *Engine) computeAverages(closes indicator.PriceSeries) (*indicator.AverageSeries, *indicator.AverageSeries, error) {
	var (
		wg                sync.WaitGroup
		short, long       *indicator.AverageSeries
		shortErr, longErr error
	)

	compute := func(role string, window int, out **indicator.AverageSeries, errOut *error) {
		defer wg.Done()
		begin := time.Now()
		*out, *errOut = indicator.ComputeSMA(closes, window)
		logger.SMADuration.WithLabelValues(role).Observe(time.Since(begin).Seconds())
	}

	wg.Add(2)
	go compute("short", e.config.ShortWindow, &short, &shortErr)
	go compute("long", e.config.LongWindow, &long, &longErr)
	wg.Wait()

	if err := errors.Join(shortErr, longErr); err != nil {
		return nil, nil, err
	}
	return short, long, nil
}

func (e *Engine) checkDrift(ctx context.Context, closes indicator.PriceSeries, short, long *indicator.AverageSeries) ([]DriftCheck, error) {
	log := logger.WithContext(ctx)
	checks := make([]DriftCheck, 0, 2)

	for _, c := range []struct {
		role   string
		series *indicator.AverageSeries
	}{
		{"short", short},
		{"long", long},
	} {
		ref, err := indicator.ReferenceSMA(closes, c.series.Window())
		if err != nil {
			return nil, err
		}
		drift, at := indicator.MaxDrift(c.series, ref)
		check := DriftCheck{
			Role:     c.role,
			Window:   c.series.Window(),
			MaxDrift: drift,
			Position: at,
			Exceeded: drift > e.config.DriftTolerance,
		}
		logger.MaxDrift.WithLabelValues(c.role).Set(drift)

		if check.Exceeded {
			log.Warn("Moving average drift above tolerance",
				logger.String("role", c.role),
				logger.Int("window", check.Window),
				logger.Float64("max_drift", drift),
				logger.Int("position", at),
				logger.Float64("tolerance", e.config.DriftTolerance),
			)
		} else {
			log.Debug("Moving average drift within tolerance",
				logger.String("role", c.role),
				logger.Float64("max_drift", drift),
			)
		}
		checks = append(checks, check)
	}
	return checks, nil
}
