package crossover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/sma-crossover/pkg/indicator"
)

func detect(t *testing.T, closes indicator.PriceSeries, short, long int) []Event {
	t.Helper()
	s, err := indicator.ComputeSMA(closes, short)
	require.NoError(t, err)
	l, err := indicator.ComputeSMA(closes, long)
	require.NoError(t, err)
	return DetectCrossovers(s, l, len(closes))
}

func assertWellFormed(t *testing.T, events []Event, short, long, length int) {
	t.Helper()
	lo := max(short, long)
	for i, e := range events {
		assert.GreaterOrEqual(t, e.Position, lo, "event %d before both windows settle", i)
		assert.LessOrEqual(t, e.Position, length-1, "event %d past end of series", i)
		assert.Contains(t, []Kind{Buy, Sell}, e.Kind)
		if i > 0 {
			assert.Greater(t, e.Position, events[i-1].Position, "positions must strictly increase")
		}
	}
}

func TestDetectCrossovers_RisingRamp(t *testing.T) {
	// On a strict ramp the short average is already above the long one at
	// the first comparable pair, so no transition is ever observed.
	closes := indicator.PriceSeries{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	events := detect(t, closes, 2, 4)

	assertWellFormed(t, events, 2, 4, len(closes))
	_, sells := Split(events)
	assert.Empty(t, sells)
	assert.Empty(t, events)
}

func TestDetectCrossovers_FlatThenRamp(t *testing.T) {
	closes := indicator.PriceSeries{5, 5, 5, 5, 5, 6, 7, 8, 9, 10}
	events := detect(t, closes, 2, 4)

	assertWellFormed(t, events, 2, 4, len(closes))
	assert.Equal(t, []Event{{Position: 5, Kind: Buy}}, events)
}

func TestDetectCrossovers_FlatSeries(t *testing.T) {
	closes := make(indicator.PriceSeries, 50)
	for i := range closes {
		closes[i] = 100.0
	}

	for _, pair := range [][2]int{{1, 2}, {2, 3}, {5, 10}, {10, 5}, {3, 3}} {
		events := detect(t, closes, pair[0], pair[1])
		assert.Empty(t, events, "windows %v", pair)
	}
}

func TestDetectCrossovers_VShape(t *testing.T) {
	closes := indicator.PriceSeries{10, 10, 10, 10, 9, 8, 7, 6, 7, 8, 9, 10}
	events := detect(t, closes, 2, 3)

	assertWellFormed(t, events, 2, 3, len(closes))
	require.Len(t, events, 2)
	assert.Equal(t, Event{Position: 4, Kind: Sell}, events[0])
	assert.Equal(t, Event{Position: 9, Kind: Buy}, events[1])
}

func TestDetectCrossovers_InsufficientData(t *testing.T) {
	closes := indicator.PriceSeries{1, 2, 3}
	events := detect(t, closes, 2, 10)
	assert.Empty(t, events)
}

func averagesOf(t *testing.T, short, long indicator.PriceSeries) (*indicator.AverageSeries, *indicator.AverageSeries) {
	t.Helper()
	s, err := indicator.ComputeSMA(short, 1)
	require.NoError(t, err)
	l, err := indicator.ComputeSMA(long, 1)
	require.NoError(t, err)
	return s, l
}

func TestDetectCrossovers_EqualityDoesNotEmit(t *testing.T) {
	// Above at 2, then touching from 3 onwards.
	s, l := averagesOf(t,
		indicator.PriceSeries{0, 1, 2, 1, 1, 1},
		indicator.PriceSeries{0, 1, 1, 1, 1, 1},
	)
	assert.Equal(t, []Event{{Position: 2, Kind: Buy}}, DetectCrossovers(s, l, 6))
}

func TestDetectCrossovers_TouchThenRiseAgain(t *testing.T) {
	// A touch counts as at-or-below, so leaving it upwards is another Buy.
	s, l := averagesOf(t,
		indicator.PriceSeries{0, 1, 2, 1, 2},
		indicator.PriceSeries{0, 1, 1, 1, 1},
	)
	assert.Equal(t, []Event{
		{Position: 2, Kind: Buy},
		{Position: 4, Kind: Buy},
	}, DetectCrossovers(s, l, 5))
}

func TestDetectCrossovers_TieThenCross(t *testing.T) {
	// Hand-built averages: equal at 2, above at 3, equal at 4, below at 5.
	s, l := averagesOf(t,
		indicator.PriceSeries{0, 0, 1, 2, 1, 0},
		indicator.PriceSeries{0, 0, 1, 1, 1, 1},
	)

	events := DetectCrossovers(s, l, 6)
	assert.Equal(t, []Event{
		{Position: 3, Kind: Buy},
		{Position: 5, Kind: Sell},
	}, events)
}

func TestDetectCrossovers_Oscillating(t *testing.T) {
	closes := indicator.PriceSeries{}
	for i := 0; i < 200; i++ {
		v := 100.0
		switch i % 8 {
		case 1, 2, 3:
			v = 104
		case 5, 6, 7:
			v = 96
		}
		closes = append(closes, v)
	}
	events := detect(t, closes, 2, 5)

	assertWellFormed(t, events, 2, 5, len(closes))
	require.NotEmpty(t, events)

	seen := make(map[int]bool)
	for i, e := range events {
		assert.False(t, seen[e.Position], "duplicate position %d", e.Position)
		seen[e.Position] = true
		if i > 0 {
			assert.NotEqual(t, events[i-1].Kind, e.Kind, "buys and sells must alternate")
		}
	}
}

func TestDetectCrossovers_LengthBeyondSeries(t *testing.T) {
	closes := indicator.PriceSeries{10, 10, 10, 10, 9, 8, 7, 6, 7, 8, 9, 10}
	s, err := indicator.ComputeSMA(closes, 2)
	require.NoError(t, err)
	l, err := indicator.ComputeSMA(closes, 3)
	require.NoError(t, err)

	// Positions past the end are undefined and skipped.
	assert.Len(t, DetectCrossovers(s, l, len(closes)+5), 2)
	assert.Empty(t, DetectCrossovers(s, l, 0))
}

func TestDetectCrossovers_NilSeries(t *testing.T) {
	s, err := indicator.ComputeSMA(indicator.PriceSeries{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Nil(t, DetectCrossovers(nil, s, 3))
	assert.Nil(t, DetectCrossovers(s, nil, 3))
}

func TestSplit(t *testing.T) {
	events := []Event{
		{Position: 3, Kind: Buy},
		{Position: 7, Kind: Sell},
		{Position: 9, Kind: Buy},
	}
	buys, sells := Split(events)
	assert.Equal(t, []Event{{Position: 3, Kind: Buy}, {Position: 9, Kind: Buy}}, buys)
	assert.Equal(t, []Event{{Position: 7, Kind: Sell}}, sells)
}

func TestKind_Text(t *testing.T) {
	b, err := Buy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "buy", string(b))
	assert.Equal(t, "sell", Sell.String())

	_, err = Kind(0).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "kind(0)", Kind(0).String())
}
