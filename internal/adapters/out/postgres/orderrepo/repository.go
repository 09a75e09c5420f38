package orderrepo

import (
	"context"
	"errors"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by id.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the existing orders among ids, ordered by id.
func (r *GormOrderRepository) GetByIDs(ctx context.Context, ids []kernel.ID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetAllInCreatedStatus retrieves the backlog, ordered by id.
func (r *GormOrderRepository) GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", int(order.Created)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// MaxID returns the greatest order id, 0 when there are no orders.
func (r *GormOrderRepository) MaxID(ctx context.Context) (kernel.ID, error) {
	var maxID int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return 0, err
	}

	return kernel.ID(maxID), nil
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
