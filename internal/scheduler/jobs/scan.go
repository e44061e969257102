package jobs

import (
	"context"
	"fmt"

	"github.com/pulselabs/trendpulse/internal/scan"
	"github.com/pulselabs/trendpulse/pkg/config"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// ScanJob runs the full source scan on a fixed interval
type ScanJob struct {
	service *scan.Service
	config  *config.Config
	logger  *logger.Logger
}

// NewScanJob creates a new scan job
func NewScanJob(service *scan.Service, cfg *config.Config, log *logger.Logger) *ScanJob {
	return &ScanJob{
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return "scan"
}

// Schedule returns the cron schedule from configuration
func (j *ScanJob) Schedule() string {
	return j.config.Scan.CronSchedule
}

// Run executes one scan
func (j *ScanJob) Run(ctx context.Context) error {
	result, err := j.service.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"tickers": len(result.Trends),
	}).Info("Scheduled scan finished")

	return nil
}
