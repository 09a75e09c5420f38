package jobs

import (
	"context"
	"log/slog"
	"time"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/domain/services"
	"lavka/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// AssignOrdersHandler runs one assignment over the current backlog.
type AssignOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (services.Assignment, error)
}

// OrderAssignmentJob periodically assigns the order backlog for the current date.
// Runs never overlap: a tick that fires while the previous run is still
// in progress is skipped.
type OrderAssignmentJob struct {
	handler  AssignOrdersHandler
	schedule string
	timeout  time.Duration
	metrics  *metrics.Collectors
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderAssignmentJob creates the job. schedule is a six-field cron
// expression (with seconds); an empty schedule disables the job.
func NewOrderAssignmentJob(
	handler AssignOrdersHandler,
	schedule string,
	timeout time.Duration,
	collectors *metrics.Collectors,
	logger *slog.Logger,
) *OrderAssignmentJob {
	logger = logger.With("component", "order_assignment_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))

	return &OrderAssignmentJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		metrics:  collectors,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
		now:    time.Now,
	}
}

// Start schedules the job. It fails on a malformed schedule.
func (j *OrderAssignmentJob) Start() error {
	if j.schedule == "" {
		j.logger.Info("Order assignment job disabled")
		return nil
	}

	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Order assignment job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the job and waits for a run in progress to finish.
func (j *OrderAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Order assignment job stopped")
}

func (j *OrderAssignmentJob) run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd := commands.NewAssignOrdersCommand(j.now())
	result, err := j.handler.Handle(ctx, cmd)
	j.metrics.ObserveAssignment("cron", result.AssignedCount(), err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order assignment job failed", "date", cmd.Date().Format(time.DateOnly), "error", err)
		return
	}

	if result.AssignedCount() > 0 {
		j.logger.InfoContext(ctx, "Orders assigned",
			"date", cmd.Date().Format(time.DateOnly),
			"assigned", result.AssignedCount(),
			"couriers", len(result.Batches),
			"unassigned", len(result.Unassigned),
		)
	}
}
