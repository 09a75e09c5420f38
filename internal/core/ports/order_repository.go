package ports

import (
	"context"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The id must not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an assignment or a completion of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns an errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetByIDs returns the orders with the given ids in ascending id order.
	// Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []kernel.ID) ([]*order.Order, error)

	// GetAllInCreatedStatus returns the unassigned, uncompleted backlog in ascending id order.
	GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error)

	// MaxID returns the greatest stored order id, or 0 for an empty table.
	MaxID(ctx context.Context) (kernel.ID, error)
}
