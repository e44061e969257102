package alerting

import (
	"context"

	"github.com/pulselabs/trendpulse/internal/contracts"
)

// Alert carries the display fields delivered alongside a decision. Delivery
// success or failure never feeds back into scoring.
type Alert struct {
	Ticker    string           `json:"ticker"`
	Signal    contracts.Signal `json:"signal"`
	Momentum  int              `json:"momentum"`
	Sentiment float64          `json:"sentiment"`
	Source    string           `json:"source"`
}

// Notifier delivers an alert over one outbound channel
type Notifier interface {
	// Name identifies the channel ("discord", "email")
	Name() string

	// Configured reports whether the channel has credentials to deliver
	Configured() bool

	// Send delivers the alert
	Send(ctx context.Context, alert Alert) error
}
