package commands

import (
	"context"

	"lavka/internal/core/domain/model/order"
)

// CreateOrdersCommandHandler allocates ids for a batch of orders and stores
// them in one transaction.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	ids        IDSource
	locks      *CatalogLocks
}

func NewCreateOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	ids IDSource,
	locks *CatalogLocks,
) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
		locks:      locks,
	}
}

// Handle returns the created orders in request order.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.LockOrders()
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	drafts := cmd.Drafts()
	created := make([]*order.Order, 0, len(drafts))

	for _, d := range drafts {
		id, err := h.ids.Next()
		if err != nil {
			return nil, err
		}

		o, err := order.NewOrder(id, d.Weight, d.Region, d.DeliveryHours, d.Cost)
		if err != nil {
			return nil, err
		}

		if err = orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
		created = append(created, o)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
