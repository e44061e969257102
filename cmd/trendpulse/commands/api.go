package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulselabs/trendpulse/internal/api"
	"github.com/pulselabs/trendpulse/internal/api/handlers"
	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/internal/scheduler"
	"github.com/pulselabs/trendpulse/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server with the background scan scheduler.

Endpoints:
  GET  /health          - Health check
  GET  /api/trends      - Latest ranked tickers
  GET  /api/trends/ws   - Websocket stream of scan results
  POST /api/alert       - Trigger an alert dispatch

Example:
  go run ./cmd/trendpulse api
  go run ./cmd/trendpulse api --port 8080 --no-scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort     string
	noScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "disable the in-process scan scheduler")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	log := a.log

	// Handlers
	trendsHandler := handlers.NewTrendsHandler(a.scanner, a.cfg.Scan.CacheTTL, log)
	alertHandler := handlers.NewAlertHandler(a.dispatcher, log)
	streamHandler := handlers.NewStreamHandler(log)

	// Every completed scan is pushed to websocket clients
	a.scanner.OnResult(func(result *contracts.RankedResult) {
		streamHandler.Broadcast(result)
	})

	router := api.NewRouter(trendsHandler, alertHandler, streamHandler, log)
	server := api.New(a.cfg, log, router)

	// Background scan scheduler
	if !noScheduler {
		sched := scheduler.New(log)
		if err := sched.AddJob(jobs.NewScanJob(a.scanner, a.cfg, log)); err != nil {
			return fmt.Errorf("register scan job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", a.cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
