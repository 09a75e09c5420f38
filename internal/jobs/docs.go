// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs are built on github.com/robfig/cron/v3 with six-field (seconds) schedules.
//
// # Available Jobs
//
// 1. OrderAssignmentJob - runs the batch assignment for the current date on a
// configurable schedule, the same operation POST /orders/assign triggers.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(assignOrdersHandler, jobs.Config{
//		AssignmentSchedule: "0 */5 * * * *",
//		AssignmentTimeout:  30 * time.Second,
//	}, collectors, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted in assignment_runs_total{trigger="cron",result="error"};
// the next tick tries again. Panics are recovered by the cron chain.
package jobs
