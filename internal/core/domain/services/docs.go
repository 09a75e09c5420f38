// Package services provides the domain services that work across the courier
// and order aggregates. None of them perform I/O; callers load snapshots,
// invoke a service and persist the outcome.
//
// The package includes:
//   - CompletionValidator: decides whether a courier may complete an order at an instant
//   - AssignmentEngine: splits the order backlog into per-courier batches
//   - MetricsCalculator: derives earnings and rating over a time range
package services
