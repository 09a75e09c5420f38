package commands

import (
	"context"
	"fmt"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/domain/services"
)

// CompleteOrdersCommandHandler applies a completion batch.
//
// Entries are checked by services.CompletionValidator in request order against
// aggregates loaded once per id, so the second report of one order inside a
// batch fails with services.ErrAlreadyCompleted. The first failing entry
// aborts the batch and nothing is written.
//
// Example:
//
//	completed, err := handler.Handle(ctx, cmd)
//	var rejected *services.CompletionRejectedError
//	switch {
//	case errors.As(err, &rejected):
//	    log.Printf("order %s: %v", rejected.OrderID, rejected.Reason)
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("unknown courier or order")
//	}
type CompleteOrdersCommandHandler struct {
	uowFactory UoWFactory
	validator  services.CompletionValidator
	locks      *CatalogLocks
}

func NewCompleteOrdersCommandHandler(
	uowFactory UoWFactory,
	validator services.CompletionValidator,
	locks *CatalogLocks,
) CompleteOrdersCommandHandler {
	return CompleteOrdersCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		locks:      locks,
	}
}

// Handle returns the completed orders in request order.
func (h CompleteOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteOrdersCommand,
) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.LockAll()
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	batch := newCompletionBatch()
	entries := cmd.Entries()
	completed := make([]*order.Order, 0, len(entries))

	for i, e := range entries {
		o, err := batch.order(ctx, orderRepo.Get, e.OrderID)
		if err != nil {
			return nil, fmt.Errorf("complete_info[%d]: %w", i, err)
		}

		c, err := batch.courier(ctx, courierRepo.Get, e.CourierID)
		if err != nil {
			return nil, fmt.Errorf("complete_info[%d]: %w", i, err)
		}

		if err = h.validator.Apply(c, o, e.CompleteTime); err != nil {
			return nil, fmt.Errorf("complete_info[%d]: %w", i, err)
		}
		completed = append(completed, o)
	}

	for _, o := range batch.orders {
		if err := orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	for _, c := range batch.couriers {
		if err := courierRepo.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return completed, nil
}

// completionBatch caches the aggregates of one batch in first-load order.
type completionBatch struct {
	orders       []*order.Order
	couriers     []*courier.Courier
	ordersByID   map[kernel.ID]*order.Order
	couriersByID map[kernel.ID]*courier.Courier
}

func newCompletionBatch() *completionBatch {
	return &completionBatch{
		ordersByID:   make(map[kernel.ID]*order.Order),
		couriersByID: make(map[kernel.ID]*courier.Courier),
	}
}

func (b *completionBatch) order(
	ctx context.Context,
	load func(context.Context, kernel.ID) (*order.Order, error),
	id kernel.ID,
) (*order.Order, error) {
	if o, ok := b.ordersByID[id]; ok {
		return o, nil
	}

	o, err := load(ctx, id)
	if err != nil {
		return nil, err
	}

	b.ordersByID[id] = o
	b.orders = append(b.orders, o)
	return o, nil
}

func (b *completionBatch) courier(
	ctx context.Context,
	load func(context.Context, kernel.ID) (*courier.Courier, error),
	id kernel.ID,
) (*courier.Courier, error) {
	if c, ok := b.couriersByID[id]; ok {
		return c, nil
	}

	c, err := load(ctx, id)
	if err != nil {
		return nil, err
	}

	b.couriersByID[id] = c
	b.couriers = append(b.couriers, c)
	return c, nil
}
