// Package report maps crossover events back to their input rows and renders
// them.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/mohamedkhairy/sma-crossover/internal/analysis"
	"github.com/mohamedkhairy/sma-crossover/pkg/crossover"
)

// Entry is one signal annotated with its row
type Entry struct {
	Position int             `json:"position" yaml:"position"`
	Label    string          `json:"label" yaml:"label"`
	Kind     crossover.Kind  `json:"kind" yaml:"kind"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	ShortAvg float64         `json:"short_avg" yaml:"short_avg"`
	LongAvg  float64         `json:"long_avg" yaml:"long_avg"`
}

// Report is the rendered view of an analysis result
type Report struct {
	Source       string                `json:"source" yaml:"source"`
	ShortWindow  int                   `json:"short_window" yaml:"short_window"`
	LongWindow   int                   `json:"long_window" yaml:"long_window"`
	Observations int                   `json:"observations" yaml:"observations"`
	Skipped      int                   `json:"skipped_rows" yaml:"skipped_rows"`
	Buys         []Entry               `json:"buys" yaml:"buys"`
	Sells        []Entry               `json:"sells" yaml:"sells"`
	Drift        []analysis.DriftCheck `json:"drift,omitempty" yaml:"drift,omitempty"`
	Elapsed      string                `json:"elapsed" yaml:"elapsed"`
}

// Build creates a Report from a result. Buys and sells keep position order.
func Build(res *analysis.Result) *Report {
	rep := &Report{
		Source:       res.Bars.Source,
		ShortWindow:  res.Short.Window(),
		LongWindow:   res.Long.Window(),
		Observations: res.Bars.Len(),
		Skipped:      res.Bars.Skipped,
		Buys:         []Entry{},
		Sells:        []Entry{},
		Drift:        res.Drift,
		Elapsed:      res.Duration.String(),
	}

	for _, e := range res.Events {
		bar, ok := res.Bars.At(e.Position)
		if !ok {
			continue
		}
		entry := Entry{
			Position: e.Position,
			Label:    bar.Label,
			Kind:     e.Kind,
			Price:    decimal.NewFromFloat(bar.Close),
		}
		entry.ShortAvg, _ = res.Short.At(e.Position)
		entry.LongAvg, _ = res.Long.At(e.Position)

		switch e.Kind {
		case crossover.Buy:
			rep.Buys = append(rep.Buys, entry)
		case crossover.Sell:
			rep.Sells = append(rep.Sells, entry)
		}
	}
	return rep
}
