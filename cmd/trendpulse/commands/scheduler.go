package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pulselabs/trendpulse/internal/scheduler"
	"github.com/pulselabs/trendpulse/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the scan scheduler without the API server",
	Long: `Runs the periodic scan job headless. Useful when the API is served
by a separate process or the deployment only needs alerts.

Example:
  go run ./cmd/trendpulse scheduler`,
	RunE: runScheduler,
}

var runImmediately bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&runImmediately, "now", false, "run one scan immediately on startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewScanJob(a.scanner, a.cfg, a.log)); err != nil {
		return fmt.Errorf("register scan job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if runImmediately {
		if err := sched.RunJob("scan"); err != nil {
			return fmt.Errorf("run initial scan: %w", err)
		}
	}

	fmt.Printf("Scheduler running, scan schedule: %s\n", a.cfg.Scan.CronSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
