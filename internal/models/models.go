package models

import (
	"math"

	"github.com/mohamedkhairy/sma-crossover/pkg/indicator"
)

// Bar is one input row: an opaque label (usually the timestamp as written
// in the source file) and its closing price
type Bar struct {
	Label string  `json:"label" yaml:"label" parquet:"label"`
	Close float64 `json:"close" yaml:"close" parquet:"close"`
}

// Validate validates a Bar
func (b *Bar) Validate() error {
	if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
		return ErrInvalidPrice
	}
	return nil
}

// BarSet is the ordered input of one analysis run. Labels and Closes are
// parallel and share position order.
type BarSet struct {
	Source  string                `json:"source"`
	Labels  []string              `json:"labels"`
	Closes  indicator.PriceSeries `json:"closes"`
	Skipped int                   `json:"skipped"` // rows dropped by the loader
}

// NewBarSet builds a BarSet from bars, keeping their order
func NewBarSet(source string, bars []Bar) *BarSet {
	set := &BarSet{
		Source: source,
		Labels: make([]string, 0, len(bars)),
		Closes: make(indicator.PriceSeries, 0, len(bars)),
	}
	for _, b := range bars {
		set.Append(b)
	}
	return set
}

// Append adds a bar at the end of the set
func (s *BarSet) Append(b Bar) {
	s.Labels = append(s.Labels, b.Label)
	s.Closes = append(s.Closes, b.Close)
}

// Len returns the number of bars
func (s *BarSet) Len() int {
	return len(s.Closes)
}

// At returns the bar at position i
func (s *BarSet) At(i int) (Bar, bool) {
	if i < 0 || i >= len(s.Closes) {
		return Bar{}, false
	}
	label := ""
	if i < len(s.Labels) {
		label = s.Labels[i]
	}
	return Bar{Label: label, Close: s.Closes[i]}, true
}

// Validate checks that labels and closes line up
func (s *BarSet) Validate() error {
	if len(s.Labels) != len(s.Closes) {
		return ErrMisalignedLabels
	}
	return nil
}
