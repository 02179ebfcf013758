package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohamedkhairy/sma-crossover/internal/analysis"
	"github.com/mohamedkhairy/sma-crossover/internal/config"
	"github.com/mohamedkhairy/sma-crossover/internal/data"
	"github.com/mohamedkhairy/sma-crossover/internal/report"
	"github.com/mohamedkhairy/sma-crossover/pkg/logger"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		input           string
		inputFormat     string
		shortWindow     int
		longWindow      int
		outputFormat    string
		metricsTextfile string
		checkDrift      bool
	)

	rootCmd := &cobra.Command{
		Use:   "crossover [input]",
		Short: "Detect moving average crossovers in a price series",
		Long: `crossover reads a series of closing prices, computes a short and a long
simple moving average and reports where the short average crosses the long one.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			flags := cmd.Flags()
			if len(args) == 1 {
				cfg.Input.Path = args[0]
			}
			if flags.Changed("input") {
				cfg.Input.Path = input
			}
			if flags.Changed("input-format") {
				cfg.Input.Format = inputFormat
			}
			if flags.Changed("short") {
				cfg.Analysis.ShortWindow = shortWindow
			}
			if flags.Changed("long") {
				cfg.Analysis.LongWindow = longWindow
			}
			if flags.Changed("format") {
				cfg.Output.Format = outputFormat
			}
			if flags.Changed("metrics-textfile") {
				cfg.Output.MetricsTextfile = metricsTextfile
			}
			if flags.Changed("check-drift") {
				cfg.Analysis.CheckDrift = checkDrift
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, out)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "Input file (overrides INPUT_PATH)")
	flags.StringVar(&inputFormat, "input-format", "auto", "Input format: auto, csv or parquet")
	flags.IntVarP(&shortWindow, "short", "s", 5, "Short moving average window")
	flags.IntVarP(&longWindow, "long", "l", 10, "Long moving average window")
	flags.StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json or yaml")
	flags.StringVar(&metricsTextfile, "metrics-textfile", "", "Write run metrics to this file in Prometheus text format")
	flags.BoolVar(&checkDrift, "check-drift", false, "Compare the incremental averages with a full recompute")

	rootCmd.AddCommand(versionCmd(out))
	return rootCmd
}

func versionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "crossover version %s\n", version)
		},
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		return err
	}
	defer logger.Sync()

	ctx = logger.WithRunID(ctx, logger.NewRunID())
	log := logger.WithContext(ctx)

	log.Info("Starting crossover analysis",
		logger.String("input", cfg.Input.Path),
		logger.String("input_format", cfg.Input.Format),
		logger.Int("short_window", cfg.Analysis.ShortWindow),
		logger.Int("long_window", cfg.Analysis.LongWindow),
	)

	loader, err := data.NewLoaderFactory().CreateLoader(cfg.Input.Format, cfg.Input.Path, data.Options{
		HasHeader:   cfg.Input.HasHeader,
		LabelColumn: cfg.Input.LabelColumn,
		CloseColumn: cfg.Input.CloseColumn,
	})
	if err != nil {
		return err
	}

	bars, err := loader.Load(ctx, cfg.Input.Path)
	if err != nil {
		logger.ErrorsTotal.WithLabelValues("load").Inc()
		return err
	}
	log.Info("Loaded price series",
		logger.String("format", loader.Format()),
		logger.Int("observations", bars.Len()),
		logger.Int("skipped_rows", bars.Skipped),
	)

	renderer, err := report.NewRenderer(cfg.Output.Format)
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(analysis.EngineConfig{
		ShortWindow:    cfg.Analysis.ShortWindow,
		LongWindow:     cfg.Analysis.LongWindow,
		CheckDrift:     cfg.Analysis.CheckDrift,
		DriftTolerance: cfg.Analysis.DriftTolerance,
	})
	result, err := engine.Run(ctx, bars)
	if err != nil {
		writeMetrics(cfg.Output.MetricsTextfile)
		return err
	}

	if err := renderer.Render(out, report.Build(result)); err != nil {
		return err
	}

	writeMetrics(cfg.Output.MetricsTextfile)
	return nil
}

func writeMetrics(path string) {
	if path == "" {
		return
	}
	if err := logger.WriteMetricsTextfile(path); err != nil {
		logger.Warn("Failed to write metrics textfile", logger.ErrorField(err))
		return
	}
	logger.Debug("Wrote metrics textfile", logger.String("path", path))
}
