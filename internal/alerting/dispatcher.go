package alerting

import (
	"context"
	"fmt"

	"github.com/pulselabs/trendpulse/pkg/logger"
)

// Dispatcher fans an alert out to the requested delivery channels
type Dispatcher struct {
	notifiers map[string]Notifier
	order     []string
	logger    *logger.Logger
}

// NewDispatcher creates a dispatcher over the given notifiers
func NewDispatcher(log *logger.Logger, notifiers ...Notifier) *Dispatcher {
	d := &Dispatcher{
		notifiers: make(map[string]Notifier, len(notifiers)),
		logger:    log,
	}
	for _, n := range notifiers {
		d.notifiers[n.Name()] = n
		d.order = append(d.order, n.Name())
	}
	return d
}

// Channels returns the names of all registered notifiers in registration
// order
func (d *Dispatcher) Channels() []string {
	return append([]string(nil), d.order...)
}

// Dispatch sends the alert over each requested channel and reports
// per-channel success. Unknown channels are skipped; channels without
// credentials report false. The alert pipeline never fails because a
// channel did.
func (d *Dispatcher) Dispatch(ctx context.Context, alert Alert, channels []string) map[string]bool {
	if len(channels) == 0 {
		channels = d.order
	}

	results := make(map[string]bool, len(channels))
	for _, name := range channels {
		notifier, ok := d.notifiers[name]
		if !ok {
			d.logger.WithField("channel", name).Warn("Unknown alert channel requested")
			continue
		}

		if !notifier.Configured() {
			results[name] = false
			continue
		}

		if err := notifier.Send(ctx, alert); err != nil {
			d.logger.WithError(err).WithFields(map[string]interface{}{
				"channel": name,
				"ticker":  alert.Ticker,
			}).Error("Alert delivery failed")
			results[name] = false
			continue
		}

		results[name] = true
	}

	return results
}

// ValidateChannels rejects channel names with no registered notifier
func (d *Dispatcher) ValidateChannels(channels []string) error {
	for _, name := range channels {
		if _, ok := d.notifiers[name]; !ok {
			return fmt.Errorf("unknown alert channel %q", name)
		}
	}
	return nil
}
