// Package ports defines the persistence contracts of the domain layer.
// Adapters implement them; application handlers depend only on them.
package ports

import (
	"context"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier. The id must not exist yet.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier, in practice its completed orders.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns an errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.ID) (*courier.Courier, error)

	// GetAll returns every courier in registration (ascending id) order.
	// This is the roster snapshot the assignment engine works on.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// MaxID returns the greatest stored courier id, or 0 for an empty table.
	MaxID(ctx context.Context) (kernel.ID, error)
}
