// Package courier provides the Courier aggregate and its transport type.
//
// The package includes:
//   - Type: FOOT, BIKE or AUTO, carrying the earnings and rating multipliers
//   - Courier: the aggregate root holding regions, working hours and completed orders
//
// Key business rules:
//   - A courier serves a non-empty set of regions and has at least one working window
//   - Completed orders are only ever appended, by the completion flow
//   - Identity and type never change after registration
package courier
