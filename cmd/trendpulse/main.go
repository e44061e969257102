package main

import (
	"os"

	"github.com/pulselabs/trendpulse/cmd/trendpulse/commands"
)

// main is the entry point for the TrendPulse CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
