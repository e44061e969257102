package alerting

import "github.com/pulselabs/trendpulse/internal/contracts"

// Classification thresholds. Rules are evaluated in fixed order; the first
// match wins.
const (
	buyMomentumMin   = 70
	buySentimentMin  = 0.2
	sellMomentumMax  = 30
	sellSentimentMax = -0.3
	watchMomentumMin = 50

	alertWatchMomentumMin = 80
)

// Classify derives a signal from a momentum/sentiment pair:
// BUY when momentum >= 70 and sentiment > 0.2, else SELL when momentum <= 30
// or sentiment < -0.3, else WATCH when momentum >= 50 and sentiment > 0,
// else HOLD.
func Classify(momentum int, sentiment float64) contracts.Signal {
	if momentum >= buyMomentumMin && sentiment > buySentimentMin {
		return contracts.SignalBuy
	}
	if momentum <= sellMomentumMax || sentiment < sellSentimentMax {
		return contracts.SignalSell
	}
	if momentum >= watchMomentumMin && sentiment > 0 {
		return contracts.SignalWatch
	}
	return contracts.SignalHold
}

// ShouldAlert reports whether a signal crosses the actionability threshold:
// BUY at momentum >= 70, SELL at momentum <= 30, WATCH at momentum >= 80.
// HOLD never alerts.
func ShouldAlert(signal contracts.Signal, momentum int) bool {
	switch signal {
	case contracts.SignalBuy:
		return momentum >= buyMomentumMin
	case contracts.SignalSell:
		return momentum <= sellMomentumMax
	case contracts.SignalWatch:
		return momentum >= alertWatchMomentumMin
	default:
		return false
	}
}

// Decide combines classification and the alert threshold. An explicit
// signal, when non-empty, bypasses Classify but never ShouldAlert.
func Decide(momentum int, sentiment float64, explicit contracts.Signal) contracts.AlertDecision {
	signal := explicit
	if signal == "" {
		signal = Classify(momentum, sentiment)
	}

	return contracts.AlertDecision{
		Signal:     signal,
		ShouldFire: ShouldAlert(signal, momentum),
	}
}
