// Package commands contains the write side of the service: registration of
// couriers and orders, completion batches and assignment runs.
// Every handler validates its command, opens a unit of work and commits only
// when all writes of the batch succeeded.
package commands

import (
	"context"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW is used by commands that only write orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is used by commands that only write couriers.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans both aggregates: completion batches and assignment runs.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// IDSource hands out identities for new aggregates.
	// *kernel.IDAllocator implements it.
	IDSource interface {
		Next() (kernel.ID, error)
	}
)
