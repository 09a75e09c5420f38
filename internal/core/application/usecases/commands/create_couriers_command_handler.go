package commands

import (
	"context"

	"lavka/internal/core/domain/model/courier"
)

// CreateCouriersCommandHandler allocates ids for a batch of couriers and stores
// them in one transaction.
//
// Example:
//
//	handler := NewCreateCouriersCommandHandler(uowFactory, courierIDs, locks)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("courier registration failed: %w", err)
//	}
//	for _, c := range created {
//	    fmt.Println(c.ID())
//	}
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
	ids        IDSource
	locks      *CatalogLocks
}

func NewCreateCouriersCommandHandler(
	uowFactory CourierUoWFactory,
	ids IDSource,
	locks *CatalogLocks,
) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
		locks:      locks,
	}
}

// Handle returns the created couriers in request order.
// Ids allocated for a batch that fails to commit are not reused.
func (h CreateCouriersCommandHandler) Handle(
	ctx context.Context,
	cmd CreateCouriersCommand,
) ([]*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.LockCouriers()
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	drafts := cmd.Drafts()
	created := make([]*courier.Courier, 0, len(drafts))

	for _, d := range drafts {
		id, err := h.ids.Next()
		if err != nil {
			return nil, err
		}

		c, err := courier.NewCourier(id, d.Type, d.Regions, d.WorkingHours)
		if err != nil {
			return nil, err
		}

		if err = courierRepo.Add(ctx, c); err != nil {
			return nil, err
		}
		created = append(created, c)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
