package contracts

import "fmt"

// Signal is the categorical trading stance derived from momentum and
// sentiment
type Signal string

const (
	SignalBuy   Signal = "BUY"
	SignalSell  Signal = "SELL"
	SignalWatch Signal = "WATCH"
	SignalHold  Signal = "HOLD"
)

// ParseSignal validates a caller-supplied signal string
func ParseSignal(s string) (Signal, error) {
	switch Signal(s) {
	case SignalBuy, SignalSell, SignalWatch, SignalHold:
		return Signal(s), nil
	default:
		return "", fmt.Errorf("unknown signal %q", s)
	}
}

// AlertDecision is the outcome of classifying a momentum/sentiment pair.
// Computed fresh per request, never persisted as-is.
type AlertDecision struct {
	Signal     Signal `json:"signal"`
	ShouldFire bool   `json:"should_fire"`
}
