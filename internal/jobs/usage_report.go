// File: internal/jobs/usage_report.go
package jobs

import (
	"context"
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/config"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	runTimeout = 5 * time.Minute
	stopWait   = 10 * time.Second

	// limiterIdle is how long an IP bucket may stay unused before pruning.
	limiterIdle = 30 * time.Minute
	pruneSpec   = "@every 10m"
)

// StatsReader is the part of usagelog.Service the report reads.
type StatsReader interface {
	GetUsageStats(ctx context.Context) (*usagelog.Stats, error)
}

// Pruner drops idle per-client state. middleware.RateLimiter satisfies it.
type Pruner interface {
	Enabled() bool
	Prune(idle time.Duration) int
}

// UsageReportJob periodically logs a usage summary and prunes idle
// rate-limit buckets.
type UsageReportJob struct {
	stats         StatsReader
	pruner        Pruner
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewUsageReportJob creates a new UsageReportJob. pruner may be nil.
func NewUsageReportJob(stats StatsReader, pruner Pruner, logger *zap.Logger, cfg *config.Config) *UsageReportJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &UsageReportJob{
		stats:         stats,
		pruner:        pruner,
		logger:        logger.Named("UsageReportJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron jobs.
func (j *UsageReportJob) SetupAndStart() error {
	if spec := j.cfg.UsageReportJobSchedule; spec == "" {
		j.logger.Warn("Usage report schedule not defined (USAGE_REPORT_JOB_SCHEDULE). Report will not run.")
	} else {
		jobID, err := j.cronScheduler.AddFunc(spec, j.runReport)
		if err != nil {
			j.logger.Error("Failed to schedule usage report", zap.String("spec", spec), zap.Error(err))
			return err
		}
		j.logger.Info("Usage report scheduled", zap.String("spec", spec), zap.Any("jobID", jobID))
	}

	if j.pruner != nil && j.pruner.Enabled() {
		if _, err := j.cronScheduler.AddFunc(pruneSpec, j.runPrune); err != nil {
			return err
		}
	}

	j.cronScheduler.Start()
	return nil
}

func (j *UsageReportJob) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	stats, err := j.stats.GetUsageStats(ctx)
	if err != nil {
		j.logger.Error("Usage report run failed", zap.Error(err))
		return
	}

	fields := []zap.Field{zap.Int64("total_logs", stats.Total)}
	for _, c := range stats.ByClient {
		fields = append(fields, zap.Int64("client."+string(c.ClientType), c.Count))
	}
	for _, f := range stats.ByFeature {
		fields = append(fields, zap.Int64("feature."+string(f.FeatureType), f.Count))
	}
	j.logger.Info("Usage report", fields...)
}

func (j *UsageReportJob) runPrune() {
	if removed := j.pruner.Prune(limiterIdle); removed > 0 {
		j.logger.Debug("Pruned idle rate limit buckets", zap.Int("removed", removed))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *UsageReportJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping usage report scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Usage report scheduler stopped gracefully.")
	case <-time.After(stopWait):
		j.logger.Warn("Usage report scheduler stop timed out.")
	}
}
