package commands

import (
	"context"
	"fmt"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/domain/services"
)

// AssignOrdersCommandHandler batches the Created backlog among all couriers
// and marks every batched order Assigned.
//
// Example:
//
//	handler := NewAssignOrdersCommandHandler(uowFactory, engine, locks)
//	result, err := handler.Handle(ctx, NewAssignOrdersCommand(time.Now()))
//	if err != nil {
//	    return err
//	}
//	log.Printf("assigned %d orders, %d left", result.AssignedCount(), len(result.Unassigned))
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	engine     services.AssignmentEngine
	locks      *CatalogLocks
}

func NewAssignOrdersCommandHandler(
	uowFactory UoWFactory,
	engine services.AssignmentEngine,
	locks *CatalogLocks,
) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		locks:      locks,
	}
}

// Handle returns the engine result once the batches are persisted.
// An empty backlog or roster is not an error: the result has no batches.
func (h AssignOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd AssignOrdersCommand,
) (services.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return services.Assignment{}, err
	}

	unlock := h.locks.LockAll()
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	backlog, err := orderRepo.GetAllInCreatedStatus(ctx)
	if err != nil {
		return services.Assignment{}, err
	}

	couriers, err := courierRepo.GetAll(ctx)
	if err != nil {
		return services.Assignment{}, err
	}

	result, err := h.engine.Assign(couriers, backlog, cmd.Date())
	if err != nil {
		return services.Assignment{}, err
	}

	byID := make(map[kernel.ID]*order.Order, len(backlog))
	for _, o := range backlog {
		byID[o.ID()] = o
	}

	for _, courierID := range result.Couriers() {
		for _, orderID := range result.Batches[courierID] {
			o, ok := byID[orderID]
			if !ok {
				return services.Assignment{}, fmt.Errorf("order %s is not in the backlog", orderID)
			}

			if err = o.Assign(courierID, cmd.Date()); err != nil {
				return services.Assignment{}, err
			}

			if err = orderRepo.Update(ctx, o); err != nil {
				return services.Assignment{}, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Assignment{}, err
	}

	return result, nil
}
