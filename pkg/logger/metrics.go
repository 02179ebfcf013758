package logger

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the metrics of a run. It is kept apart from the default
// registry so the textfile only carries what the analysis produced.
var Registry = prometheus.NewRegistry()

var (
	// ObservationsLoaded is the number of prices handed to the engine
	ObservationsLoaded = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crossover_observations_loaded",
			Help: "Number of price observations in the analysed series",
		},
	)

	// RowsSkipped counts input rows dropped by the loader
	RowsSkipped = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crossover_input_rows_skipped_total",
			Help: "Input rows skipped because the price did not parse",
		},
	)

	// SMADuration observes the time spent computing one moving average
	SMADuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crossover_sma_duration_seconds",
			Help:    "Duration of a moving average computation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"role"},
	)

	// SignalsTotal counts detected crossovers by kind
	SignalsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossover_signals_total",
			Help: "Total number of crossover signals detected",
		},
		[]string{"kind"},
	)

	// MaxDrift is the largest gap between the incremental and reference SMA
	MaxDrift = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crossover_sma_max_drift",
			Help: "Largest absolute difference between incremental and recomputed SMA",
		},
		[]string{"role"},
	)

	// RunDuration is the wall time of the last run
	RunDuration = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crossover_run_duration_seconds",
			Help: "Wall time of the analysis run in seconds",
		},
	)

	// ErrorsTotal counts failed runs by error type
	ErrorsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossover_errors_total",
			Help: "Total number of errors",
		},
		[]string{"error_type"},
	)
)

// WriteMetricsTextfile writes Registry in the Prometheus text format, for
// pickup by a node exporter textfile collector.
func WriteMetricsTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
