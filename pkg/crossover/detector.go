package crossover

import "github.com/mohamedkhairy/sma-crossover/pkg/indicator"

// DetectCrossovers scans positions max(short window, long window) through
// length-1 and emits an event wherever the relative order of the two
// averages flips:
//
//	Buy  when short[i] > long[i] and short[i-1] <= long[i-1]
//	Sell when short[i] < long[i] and short[i-1] >= long[i-1]
//
// Equality at i never emits. Positions where either average is undefined at
// i or i-1 are skipped, so an unfilled window is never compared.
func DetectCrossovers(short, long *indicator.AverageSeries, length int) []Event {
	if short == nil || long == nil {
		return nil
	}

	var events []Event
	for i := max(short.Window(), long.Window()); i < length; i++ {
		s, okS := short.At(i)
		l, okL := long.At(i)
		ps, okPS := short.At(i - 1)
		pl, okPL := long.At(i - 1)
		if !okS || !okL || !okPS || !okPL {
			continue
		}

		switch {
		case s > l && ps <= pl:
			events = append(events, Event{Position: i, Kind: Buy})
		case s < l && ps >= pl:
			events = append(events, Event{Position: i, Kind: Sell})
		}
	}
	return events
}
