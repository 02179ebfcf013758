package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// referenceEpoch anchors the synthetic candle periods handed to techan. The
// series is indexed by position only, so any strictly increasing clock works.
var referenceEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ReferenceSMA recomputes the moving average from scratch at every position
// using techan's decimal arithmetic. It is quadratic in window size and only
// meant as a yardstick for the drift carried by ComputeSMA.
func ReferenceSMA(series PriceSeries, window int) (*AverageSeries, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidWindow, window)
	}

	out := newAverageSeries(window, len(series))
	if len(series) < window {
		return out, nil
	}

	ts := techan.NewTimeSeries()
	for i, price := range series {
		candle := techan.NewCandle(techan.NewTimePeriod(referenceEpoch.Add(time.Duration(i)*time.Minute), time.Minute))
		candle.ClosePrice = big.NewDecimal(price)
		if !ts.AddCandle(candle) {
			return nil, fmt.Errorf("reference series rejected candle at position %d", i)
		}
	}

	sma := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(ts), window)
	for i := window - 1; i < len(series); i++ {
		out.values[i] = sma.Calculate(i).Float()
	}
	out.first = window - 1
	return out, nil
}

// MaxDrift returns the largest absolute difference between a and b over the
// positions defined in both, along with the position where it occurs. The
// position is -1 when no position is defined in both.
func MaxDrift(a, b *AverageSeries) (float64, int) {
	worst, at := 0.0, -1
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		av, aok := a.At(i)
		bv, bok := b.At(i)
		if !aok || !bok {
			continue
		}
		if d := math.Abs(av - bv); at < 0 || d > worst {
			worst, at = d, i
		}
	}
	return worst, at
}
