package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained after Begin share one transaction, so a completion's
// order and courier writes land together or not at all. Repositories obtained
// without Begin read through the plain connection.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// CourierRepository returns a CourierRepository bound to the current transaction, if any.
	CourierRepository() CourierRepository

	// OrderRepository returns an OrderRepository bound to the current transaction, if any.
	OrderRepository() OrderRepository
}
