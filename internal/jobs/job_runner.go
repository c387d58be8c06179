package jobs

import (
	"context"
	"database/sql"
	"time"

	"velotrack-backoffice/internal/config"
	"velotrack-backoffice/internal/logger"
	"velotrack-backoffice/internal/repository/postgres"
	"velotrack-backoffice/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email    service.EmailService
	Schedule service.ScheduleService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendLowStockAlerts()
}

// GenerateWeeklyMaintenance runs the weekly-schedule batch generator and
// mails the run summary to the workshop mailbox.
func (jr *JobRunner) GenerateWeeklyMaintenance() {
	jr.runWithRecovery("generate-weekly-maintenance", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := jr.services.Schedule.GenerateWeekly(ctx)
		if err != nil {
			logger.Error("Weekly generation failed", "error", err)
			return
		}
		logger.Info("Weekly generation finished", "summary", report.Summary)

		if err := jr.services.Email.SendWeeklyGenerationSummary(ctx, report); err != nil {
			logger.Warn("Failed to send weekly generation summary", "error", err)
		}
	})
}

// SendLowStockAlerts mails a digest of parts under their minimum stock level.
func (jr *JobRunner) SendLowStockAlerts() {
	jr.runWithRecovery("send-low-stock-alerts", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		parts, err := jr.store.PartRepository.ListBelowMinStock(ctx)
		if err != nil {
			logger.Error("Failed to query low-stock parts", "error", err)
			return
		}
		if len(parts) == 0 {
			logger.Info("No parts below minimum stock")
			return
		}
		if err := jr.services.Email.SendLowStockAlert(ctx, parts); err != nil {
			logger.Warn("Failed to send low stock alert", "error", err)
		}
	})
}
