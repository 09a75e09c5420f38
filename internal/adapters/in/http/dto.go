package http

import (
	"time"

	"lavka/internal/core/application/usecases/queries"
	"lavka/internal/core/domain/services"
)

type CourierDto struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type OrderDto struct {
	OrderID       int64      `json:"order_id"`
	Weight        float64    `json:"weight"`
	Regions       int        `json:"regions"`
	DeliveryHours []string   `json:"delivery_hours"`
	Cost          int        `json:"cost"`
	CompleteTime  *time.Time `json:"complete_time,omitempty"`
}

// ---- POST /couriers

type CreateCourierDto struct {
	CourierType  *string  `json:"courier_type" validate:"required,oneof=FOOT BIKE AUTO"`
	Regions      []int    `json:"regions" validate:"required,min=1"`
	WorkingHours []string `json:"working_hours" validate:"required,min=1,dive,time_window"`
}

type CreateCourierRequest struct {
	Couriers []CreateCourierDto `json:"couriers" validate:"required,min=1,dive"`
}

type CreateCouriersResponse struct {
	Couriers []CourierDto `json:"couriers"`
}

// ---- GET /couriers

type GetCouriersResponse struct {
	Couriers []CourierDto `json:"couriers"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
}

// ---- GET /couriers/meta-info/{courier_id}

type GetCourierMetaInfoResponse struct {
	CourierDto
	CompletedOrders []int64 `json:"completed_orders,omitempty"`
	Earnings        *int    `json:"earnings,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
}

// ---- GET /couriers/assignments

type CourierGroupOrders struct {
	CourierID int64      `json:"courier_id"`
	Orders    []OrderDto `json:"orders"`
}

type OrderAssignResponse struct {
	Date     string               `json:"date"`
	Couriers []CourierGroupOrders `json:"couriers"`
}

// ---- POST /orders

type CreateOrderDto struct {
	Weight        *float64 `json:"weight" validate:"required,gte=0"`
	Regions       *int     `json:"regions" validate:"required"`
	DeliveryHours []string `json:"delivery_hours" validate:"required,min=1,dive,time_window"`
	Cost          *int     `json:"cost" validate:"required,gte=0"`
}

type CreateOrderRequest struct {
	Orders []CreateOrderDto `json:"orders" validate:"required,min=1,dive"`
}

// ---- POST /orders/complete

type CompleteOrderDto struct {
	CourierID    *int64     `json:"courier_id" validate:"required,gt=0"`
	OrderID      *int64     `json:"order_id" validate:"required,gt=0"`
	CompleteTime *time.Time `json:"complete_time" validate:"required"`
}

type CompleteOrderRequest struct {
	CompleteInfo []CompleteOrderDto `json:"complete_info" validate:"required,min=1,dive"`
}

// ---- POST /orders/assign

type AssignedBatchDto struct {
	CourierID int64   `json:"courier_id"`
	OrderIDs  []int64 `json:"order_ids"`
}

type AssignOrdersResponse struct {
	Date       string             `json:"date"`
	Couriers   []AssignedBatchDto `json:"couriers"`
	Unassigned []int64            `json:"unassigned"`
}

func toCourierDto(c queries.CourierResponse) CourierDto {
	return CourierDto{
		CourierID:    c.ID.Int64(),
		CourierType:  c.Type,
		Regions:      c.Regions,
		WorkingHours: c.WorkingHours,
	}
}

func toOrderDto(o queries.OrderResponse) OrderDto {
	return OrderDto{
		OrderID:       o.ID.Int64(),
		Weight:        o.Weight,
		Regions:       o.Region,
		DeliveryHours: o.DeliveryHours,
		Cost:          o.Cost,
		CompleteTime:  o.CompleteTime,
	}
}

func toOrderDtos(orders []queries.OrderResponse) []OrderDto {
	out := make([]OrderDto, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDto(o))
	}
	return out
}

func toAssignOrdersResponse(a services.Assignment) AssignOrdersResponse {
	response := AssignOrdersResponse{
		Date:       a.Date.Format(time.DateOnly),
		Couriers:   make([]AssignedBatchDto, 0, len(a.Batches)),
		Unassigned: make([]int64, 0, len(a.Unassigned)),
	}

	for _, courierID := range a.Couriers() {
		batch := AssignedBatchDto{CourierID: courierID.Int64()}
		for _, orderID := range a.Batches[courierID] {
			batch.OrderIDs = append(batch.OrderIDs, orderID.Int64())
		}
		response.Couriers = append(response.Couriers, batch)
	}

	for _, orderID := range a.Unassigned {
		response.Unassigned = append(response.Unassigned, orderID.Int64())
	}

	return response
}
