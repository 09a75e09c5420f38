package courierrepo

import (
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"

	"github.com/lib/pq"
)

type CourierDTO struct {
	ID              int64          `gorm:"primaryKey;autoIncrement:false"`
	CourierType     string         `gorm:"type:varchar(8);not null"`
	Regions         pq.Int64Array  `gorm:"type:bigint[];not null"`
	WorkingHours    pq.StringArray `gorm:"type:text[];not null"`
	CompletedOrders pq.Int64Array  `gorm:"type:bigint[]"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	regions := make(pq.Int64Array, 0, len(aggregate.Regions()))
	for _, r := range aggregate.Regions() {
		regions = append(regions, int64(r))
	}

	var completed pq.Int64Array
	if ids := aggregate.CompletedOrders(); len(ids) > 0 {
		completed = make(pq.Int64Array, 0, len(ids))
		for _, id := range ids {
			completed = append(completed, id.Int64())
		}
	}

	return CourierDTO{
		ID:              aggregate.ID().Int64(),
		CourierType:     aggregate.Type().String(),
		Regions:         regions,
		WorkingHours:    kernel.FormatTimeWindows(aggregate.WorkingHours()),
		CompletedOrders: completed,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	courierType, err := courier.ParseType(dto.CourierType)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseTimeWindows(dto.WorkingHours)
	if err != nil {
		return nil, err
	}

	regions := make([]int, 0, len(dto.Regions))
	for _, r := range dto.Regions {
		regions = append(regions, int(r))
	}

	completed := make([]kernel.ID, 0, len(dto.CompletedOrders))
	for _, id := range dto.CompletedOrders {
		completed = append(completed, kernel.ID(id))
	}

	return courier.RestoreCourier(kernel.ID(dto.ID), courierType, regions, hours, completed)
}
