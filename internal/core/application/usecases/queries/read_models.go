// Package queries contains the read side of the service.
// Catalogue reads go straight to the tables through gorm raw SQL; the courier
// meta-info goes through the repositories because it needs the domain rules.
package queries

import (
	"fmt"
	"time"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/pkg/errs"

	"github.com/lib/pq"
)

const (
	DefaultLimit  = 1
	DefaultOffset = 0
)

// CourierResponse is the courier read model.
type CourierResponse struct {
	ID              kernel.ID
	Type            string
	Regions         []int
	WorkingHours    []string
	CompletedOrders []kernel.ID
}

// OrderResponse is the order read model.
type OrderResponse struct {
	ID            kernel.ID
	Weight        float64
	Region        int
	DeliveryHours []string
	Cost          int
	Status        string
	CourierID     *kernel.ID
	AssignedDate  *time.Time
	CompleteTime  *time.Time
}

// Page is an offset/limit window over a catalogue ordered by id.
// Limit has no upper bound: the database stops at the end of the table.
type Page struct {
	Offset int
	Limit  int
}

func NewPage(offset int, limit int) (Page, error) {
	if offset < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if limit < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded")
	}
	return Page{Offset: offset, Limit: limit}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

const courierColumns = `id, courier_type, regions, working_hours, completed_orders`

func scanCourier(row scanner) (CourierResponse, error) {
	var (
		id           int64
		courierType  string
		regions      pq.Int64Array
		workingHours pq.StringArray
		completed    pq.Int64Array
	)

	if err := row.Scan(&id, &courierType, &regions, &workingHours, &completed); err != nil {
		return CourierResponse{}, err
	}

	response := CourierResponse{
		ID:              kernel.ID(id),
		Type:            courierType,
		Regions:         make([]int, 0, len(regions)),
		WorkingHours:    []string(workingHours),
		CompletedOrders: make([]kernel.ID, 0, len(completed)),
	}
	for _, r := range regions {
		response.Regions = append(response.Regions, int(r))
	}
	for _, orderID := range completed {
		response.CompletedOrders = append(response.CompletedOrders, kernel.ID(orderID))
	}

	return response, nil
}

const orderColumns = `id, weight, region, delivery_hours, cost, status, courier_id, assigned_date, complete_time`

func scanOrder(row scanner) (OrderResponse, error) {
	var (
		id            int64
		deliveryHours pq.StringArray
		status        int
		courierID     *int64
		response      OrderResponse
	)

	if err := row.Scan(
		&id,
		&response.Weight,
		&response.Region,
		&deliveryHours,
		&response.Cost,
		&status,
		&courierID,
		&response.AssignedDate,
		&response.CompleteTime,
	); err != nil {
		return OrderResponse{}, err
	}

	response.ID = kernel.ID(id)
	response.DeliveryHours = []string(deliveryHours)
	response.Status = order.Status(status).String()
	if courierID != nil {
		cid := kernel.ID(*courierID)
		response.CourierID = &cid
	}
	if response.AssignedDate != nil {
		d := response.AssignedDate.UTC()
		response.AssignedDate = &d
	}
	if response.CompleteTime != nil {
		ct := response.CompleteTime.UTC()
		response.CompleteTime = &ct
	}

	return response, nil
}

// NewCourierResponse builds the read model of an aggregate returned by a command.
func NewCourierResponse(c *courier.Courier) CourierResponse {
	return CourierResponse{
		ID:              c.ID(),
		Type:            c.Type().String(),
		Regions:         c.Regions(),
		WorkingHours:    kernel.FormatTimeWindows(c.WorkingHours()),
		CompletedOrders: c.CompletedOrders(),
	}
}

// NewOrderResponse builds the read model of an aggregate returned by a command.
func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID(),
		Weight:        o.Weight(),
		Region:        o.Region(),
		DeliveryHours: kernel.FormatTimeWindows(o.DeliveryHours()),
		Cost:          o.Cost(),
		Status:        o.Status().String(),
		CourierID:     o.Courier(),
		AssignedDate:  o.AssignedDate(),
		CompleteTime:  o.CompleteTime(),
	}
}

func wrapScanError(entity string, err error) error {
	return fmt.Errorf("scan %s: %w", entity, err)
}
