package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan and print the ranked results",
	Long: `Fetches both sources once, scores momentum and sentiment, and prints
the ranked result as JSON. Caching, persistence and alerts apply the
same as for scheduled scans.

Example:
  go run ./cmd/trendpulse scan
  go run ./cmd/trendpulse scan --timeout 2m`,
	RunE: runScan,
}

var scanTimeout time.Duration

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 90*time.Second, "overall scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	result, err := a.scanner.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}
