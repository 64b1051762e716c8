package jobs

import (
	"context"
	"time"

	"insuretrack/internal/contract"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

const RunInterval = 24 * time.Hour

type ReminderRunner interface {
	Run(ctx context.Context) (*contract.ReminderRunReport, apierror.ErrorResponse)
}

// ReminderJob drives the daily reminder pass. The pass itself is
// idempotent, so overlapping with a manually triggered run is safe;
// the later one just gets refused by the run lock.
type ReminderJob struct {
	runner ReminderRunner
}

func NewReminderJob(runner ReminderRunner) *ReminderJob {
	return &ReminderJob{runner: runner}
}

func (j *ReminderJob) Start(ctx context.Context) {
	ticker := time.NewTicker(RunInterval)
	defer ticker.Stop()

	log.Info("Reminder cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping reminder cron...")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *ReminderJob) runOnce(ctx context.Context) {
	report, apierr := j.runner.Run(ctx)
	if apierr != nil {
		log.Errorf("Reminder cron: run refused or failed (code %d)", apierr.Code())
		return
	}
	log.Infof("Reminder cron: scanned %d COIs, %d actions, %d errors",
		report.Scanned, len(report.Actions), report.Errors)
}
