// Package crossover detects points where a short moving average crosses a
// long one.
package crossover

import "fmt"

// Kind is the direction of a crossover
type Kind int

const (
	// Buy marks the short average moving strictly above the long average
	Buy Kind = iota + 1
	// Sell marks the short average moving strictly below the long average
	Sell
)

// String returns "buy" or "sell"
func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Buy, Sell:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown signal kind %d", int(k))
	}
}

// Event is a single crossover at a position of the price series
type Event struct {
	Position int  `json:"position" yaml:"position"`
	Kind     Kind `json:"kind" yaml:"kind"`
}

// Split partitions events into buys and sells, keeping position order
func Split(events []Event) (buys, sells []Event) {
	for _, e := range events {
		switch e.Kind {
		case Buy:
			buys = append(buys, e)
		case Sell:
			sells = append(sells, e)
		}
	}
	return buys, sells
}
