package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetCourierAssignmentsQueryHandler groups orders by the courier they were
// batched to on the date. Completed orders keep their batch and are listed too.
type GetCourierAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierAssignmentsQueryHandler(db *gorm.DB) GetCourierAssignmentsQueryHandler {
	return GetCourierAssignmentsQueryHandler{db: db}
}

func (h GetCourierAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierAssignmentsQuery,
) (GetCourierAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierAssignmentsQueryResponse{}, err
	}

	response := GetCourierAssignmentsQueryResponse{
		Date:     query.Date(),
		Couriers: make([]CourierAssignment, 0),
	}

	stmt := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Where("assigned_date = ?::date", query.Date().Format(time.DateOnly)).
		Where("courier_id IS NOT NULL")
	if courierID := query.CourierID(); courierID != nil {
		stmt = stmt.Where("courier_id = ?", courierID.Int64())
	}

	rows, err := stmt.Order("courier_id").Order("id").Rows()
	if err != nil {
		return GetCourierAssignmentsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return GetCourierAssignmentsQueryResponse{}, wrapScanError("order", scanErr)
		}

		last := len(response.Couriers) - 1
		if last < 0 || response.Couriers[last].CourierID != *o.CourierID {
			response.Couriers = append(response.Couriers, CourierAssignment{CourierID: *o.CourierID})
			last++
		}
		response.Couriers[last].Orders = append(response.Couriers[last].Orders, o)
	}

	if err = rows.Err(); err != nil {
		return GetCourierAssignmentsQueryResponse{}, err
	}

	return response, nil
}
