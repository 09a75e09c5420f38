package orderrepo

import (
	"time"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"

	"github.com/lib/pq"
)

type OrderDTO struct {
	ID            int64          `gorm:"primaryKey;autoIncrement:false"`
	Weight        float64        `gorm:"type:double precision;not null"`
	Region        int            `gorm:"not null;index"`
	DeliveryHours pq.StringArray `gorm:"type:text[];not null"`
	Cost          int            `gorm:"not null"`
	Status        int            `gorm:"not null;index"`
	CourierID     *int64         `gorm:"index"`
	AssignedDate  *time.Time     `gorm:"type:date;index"`
	CompleteTime  *time.Time     `gorm:"type:timestamptz"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *int64
	if id := aggregate.Courier(); id != nil {
		raw := id.Int64()
		courierID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Int64(),
		Weight:        aggregate.Weight(),
		Region:        aggregate.Region(),
		DeliveryHours: kernel.FormatTimeWindows(aggregate.DeliveryHours()),
		Cost:          aggregate.Cost(),
		Status:        int(aggregate.Status()),
		CourierID:     courierID,
		AssignedDate:  aggregate.AssignedDate(),
		CompleteTime:  aggregate.CompleteTime(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	hours, err := kernel.ParseTimeWindows(dto.DeliveryHours)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.ID
	if dto.CourierID != nil {
		id := kernel.ID(*dto.CourierID)
		courierID = &id
	}

	return order.RestoreOrder(
		kernel.ID(dto.ID),
		dto.Weight,
		dto.Region,
		hours,
		dto.Cost,
		order.Status(dto.Status),
		courierID,
		dto.AssignedDate,
		dto.CompleteTime,
	)
}
