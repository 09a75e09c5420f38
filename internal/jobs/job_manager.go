package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"lavka/internal/pkg/metrics"
)

// Config holds the job schedules.
type Config struct {
	// AssignmentSchedule is a cron expression with seconds; empty disables the job.
	AssignmentSchedule string
	// AssignmentTimeout bounds a single assignment run; zero means no limit.
	AssignmentTimeout time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderAssignmentJob *OrderAssignmentJob
}

func NewJobManager(
	assignOrdersHandler AssignOrdersHandler,
	cfg Config,
	collectors *metrics.Collectors,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAssignmentJob: NewOrderAssignmentJob(
			assignOrdersHandler,
			cfg.AssignmentSchedule,
			cfg.AssignmentTimeout,
			collectors,
			logger,
		),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start order assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.orderAssignmentJob.Stop()
}
