package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trendpulse",
	Short: "TrendPulse - social momentum scanner for stocks and crypto",
	Long: `TrendPulse Unified CLI

Scans Reddit and X trends for ticker mentions, scores momentum and
sentiment, and fires Discord or email alerts on actionable signals.

Usage:
  go run ./cmd/trendpulse [command]

Examples:
  go run ./cmd/trendpulse api
  go run ./cmd/trendpulse scan
  go run ./cmd/trendpulse scheduler
  go run ./cmd/trendpulse alert --ticker NVDA --momentum 85 --sentiment 0.6`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
