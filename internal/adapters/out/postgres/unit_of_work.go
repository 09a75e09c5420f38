// Package postgres provides the GORM-backed unit of work for the courier and
// order repositories.
//
// A unit of work hands out repositories bound to one transaction, so that a
// batch of creates, a completion batch (order + courier writes) or an
// assignment run is committed as a whole.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.CourierRepository().Update(ctx, c); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine; create one per command.
package postgres

import (
	"context"

	"lavka/internal/adapters/out/postgres/courierrepo"
	"lavka/internal/adapters/out/postgres/orderrepo"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written through the unit of work.
type TrackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// CommitObserver is told how many aggregates of each kind a committed
// transaction wrote.
type CommitObserver interface {
	ObserveCommit(aggregate string, written int)
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one *gorm.DB.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer CommitObserver
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// WithObserver reports every successful commit of the created units of work to o.
func (f *GormUnitOfWorkFactory) WithObserver(o CommitObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: f.db, observer: o}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		observer: f.observer,
		tracked:  make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork wraps a GORM transaction and records the aggregates written in it.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	observer CommitObserver
	tracked  []TrackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.tracked = uow.tracked[:0]
	return nil
}

// Commit commits the open transaction and reports the written aggregates
// to the observer. It returns gorm.ErrInvalidTransaction when there is none.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.publish()
	return nil
}

// Rollback discards the open transaction and forgets tracked aggregates.
// After a successful Commit it returns gorm.ErrInvalidTransaction, which
// deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	return err
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate is called by the repositories after every successful write.
// Writes made outside a transaction are never reported.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.tracked = append(uow.tracked, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) publish() {
	tracked := uow.tracked
	uow.tracked = uow.tracked[:0]
	if uow.observer == nil {
		return
	}

	var couriers, orders int
	for _, t := range tracked {
		switch t.Aggregate.(type) {
		case *courier.Courier:
			couriers++
		case *order.Order:
			orders++
		}
	}

	if couriers > 0 {
		uow.observer.ObserveCommit("courier", couriers)
	}
	if orders > 0 {
		uow.observer.ObserveCommit("order", orders)
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
