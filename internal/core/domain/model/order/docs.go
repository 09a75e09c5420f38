// Package order provides the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: weight, region, delivery hours, cost and the completion instant
//   - Status: the Created -> Assigned -> Completed state machine
//
// Key business rules:
//   - Weight and cost are non-negative, delivery hours are non-empty
//   - An order is completed at most once; a second completion is rejected
//   - Assignment records the courier and the date of the batch
//   - Completed orders can no longer be assigned
package order
