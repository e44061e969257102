package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulselabs/trendpulse/internal/alerting"
	"github.com/pulselabs/trendpulse/internal/contracts"
)

// alertCmd represents the alert command
var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Send a manual alert for a ticker",
	Long: `Classifies the given momentum and sentiment, checks the alert
threshold, and dispatches to the configured channels.

Example:
  go run ./cmd/trendpulse alert --ticker NVDA --momentum 85 --sentiment 0.6
  go run ./cmd/trendpulse alert --ticker BTC --momentum 90 --sentiment 0.8 --channels discord`,
	RunE: runAlert,
}

var (
	alertTicker    string
	alertMomentum  int
	alertSentiment float64
	alertSignal    string
	alertChannels  []string
)

func init() {
	rootCmd.AddCommand(alertCmd)

	alertCmd.Flags().StringVar(&alertTicker, "ticker", "", "ticker symbol (required)")
	alertCmd.Flags().IntVar(&alertMomentum, "momentum", 0, "momentum score 0-100 (required)")
	alertCmd.Flags().Float64Var(&alertSentiment, "sentiment", 0, "sentiment score -1.0 to 1.0")
	alertCmd.Flags().StringVar(&alertSignal, "signal", "", "explicit signal (BUY|SELL|WATCH|HOLD), overrides classification")
	alertCmd.Flags().StringSliceVar(&alertChannels, "channels", nil, "delivery channels (default: all configured)")

	alertCmd.MarkFlagRequired("ticker")
	alertCmd.MarkFlagRequired("momentum")
}

func runAlert(cmd *cobra.Command, args []string) error {
	if alertMomentum < 0 || alertMomentum > 100 {
		return fmt.Errorf("momentum must be between 0 and 100")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var explicit contracts.Signal
	if alertSignal != "" {
		explicit, err = contracts.ParseSignal(alertSignal)
		if err != nil {
			return err
		}
	}

	if err := a.dispatcher.ValidateChannels(alertChannels); err != nil {
		return err
	}

	decision := alerting.Decide(alertMomentum, alertSentiment, explicit)
	if !decision.ShouldFire {
		fmt.Printf("Signal %s at momentum %d is below the alert threshold, nothing sent\n",
			decision.Signal, alertMomentum)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	outcomes := a.dispatcher.Dispatch(ctx, alerting.Alert{
		Ticker:    contracts.NormalizeTicker(alertTicker),
		Signal:    decision.Signal,
		Momentum:  alertMomentum,
		Sentiment: alertSentiment,
		Source:    "manual",
	}, alertChannels)

	for channel, ok := range outcomes {
		status := "sent"
		if !ok {
			status = "failed"
		}
		fmt.Printf("%s: %s\n", channel, status)
	}

	return nil
}
