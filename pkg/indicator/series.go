package indicator

import "fmt"

// PriceSeries is an ordered sequence of observations indexed by position.
// Position order is chronological and is never changed by this package.
type PriceSeries []float64

// Len returns the number of observations
func (p PriceSeries) Len() int {
	return len(p)
}

// AverageSeries holds one moving-average slot per input position.
// Slots before Window()-1 carry no value; use At to read a position.
type AverageSeries struct {
	window int
	values []float64
	first  int // first defined position, or len(values) when none is defined
}

func newAverageSeries(window, length int) *AverageSeries {
	return &AverageSeries{
		window: window,
		values: make([]float64, length),
		first:  length,
	}
}

// Window returns the window length the series was computed with
func (a *AverageSeries) Window() int {
	return a.window
}

// Len returns the number of positions, defined or not
func (a *AverageSeries) Len() int {
	return len(a.values)
}

// At returns the average at position i. The second result is false when the
// position is out of range or the window had not filled yet.
func (a *AverageSeries) At(i int) (float64, bool) {
	if a == nil || i < a.first || i >= len(a.values) {
		return 0, false
	}
	return a.values[i], true
}

// Value is like At but reports an undefined position as ErrUndefinedValue.
func (a *AverageSeries) Value(i int) (float64, error) {
	v, ok := a.At(i)
	if !ok {
		return 0, fmt.Errorf("%w: position %d (window %d, length %d)", ErrUndefinedValue, i, a.Window(), a.Len())
	}
	return v, nil
}

// Defined reports whether position i holds a computed average
func (a *AverageSeries) Defined(i int) bool {
	_, ok := a.At(i)
	return ok
}

// FirstDefined returns the first defined position and false when the series
// has none.
func (a *AverageSeries) FirstDefined() (int, bool) {
	if a == nil || a.first >= len(a.values) {
		return 0, false
	}
	return a.first, true
}

// DefinedCount returns how many positions hold a value
func (a *AverageSeries) DefinedCount() int {
	if a == nil {
		return 0
	}
	return len(a.values) - a.first
}
