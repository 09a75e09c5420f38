package order

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrDeliveryHoursAreRequired is returned when an order has no delivery window.
	ErrDeliveryHoursAreRequired = errs.NewValueIsRequiredError("delivery hours")
)

// Order is the aggregate root for a delivery order.
//
// After creation the only mutations are assignment to a courier batch and the
// one-way completion, which records the completing courier and instant.
//
// Example:
//
//	hours, _ := kernel.ParseTimeWindows([]string{"10:00-12:00"})
//	o, err := order.NewOrder(1, 2.5, 5, hours, 300)
//	if err != nil {
//	    return err
//	}
//	err = o.Complete(courierID, time.Date(2023, 5, 1, 11, 15, 0, 0, time.UTC))
type Order struct {
	id            kernel.ID
	weight        float64
	region        int
	deliveryHours []kernel.TimeWindow
	cost          int

	status       Status
	courierID    *kernel.ID
	assignedDate *time.Time
	completeTime *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Created status.
//
// Parameters:
//   - id: identity handed out by the order id allocator
//   - weight: non-negative, finite
//   - region: any integer region number
//   - deliveryHours: non-empty list of constructed windows
//   - cost: non-negative
//
// Returns:
//   - *Order: the new aggregate
//   - error: all validation failures joined together
func NewOrder(
	id kernel.ID,
	weight float64,
	region int,
	deliveryHours []kernel.TimeWindow,
	cost int,
) (*Order, error) {
	o := &Order{
		region: region,
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
		o.setDeliveryHours(deliveryHours),
		o.setCost(cost),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state and checks that the
// status agrees with the courier and completion fields.
func RestoreOrder(
	id kernel.ID,
	weight float64,
	region int,
	deliveryHours []kernel.TimeWindow,
	cost int,
	status Status,
	courierID *kernel.ID,
	assignedDate *time.Time,
	completeTime *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, weight, region, deliveryHours, cost)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		status.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if status == Completed && completeTime == nil {
		return nil, errs.NewValueIsRequiredError("complete time")
	}
	if status != Completed && completeTime != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"complete time",
			fmt.Errorf("%s order cannot have a complete time", status),
		)
	}

	o.status = status
	if courierID != nil {
		cid := *courierID
		o.courierID = &cid
	}
	if assignedDate != nil {
		d := truncateToDate(*assignedDate)
		o.assignedDate = &d
	}
	if completeTime != nil {
		ct := completeTime.UTC()
		o.completeTime = &ct
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	if o == nil || other == nil {
		return false
	}
	return o.id == other.id
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) Weight() float64 {
	return o.weight
}

func (o *Order) Region() int {
	return o.region
}

// DeliveryHours returns a copy of the delivery windows.
func (o *Order) DeliveryHours() []kernel.TimeWindow {
	return slices.Clone(o.deliveryHours)
}

func (o *Order) Cost() int {
	return o.cost
}

func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned or completing courier, or nil.
func (o *Order) Courier() *kernel.ID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// AssignedDate returns the date of the batch the order was placed in, or nil.
func (o *Order) AssignedDate() *time.Time {
	if o.assignedDate == nil {
		return nil
	}
	d := *o.assignedDate
	return &d
}

// CompleteTime returns the completion instant in UTC, or nil.
func (o *Order) CompleteTime() *time.Time {
	if o.completeTime == nil {
		return nil
	}
	ct := *o.completeTime
	return &ct
}

// IsCompleted reports whether the order already has a completion instant.
func (o *Order) IsCompleted() bool {
	return o.completeTime != nil
}

// IsDeliverableAt reports whether a minute of day falls into any delivery window.
func (o *Order) IsDeliverableAt(minute int) bool {
	return kernel.AnyContains(o.deliveryHours, minute)
}

// Assign places the order into the batch of courierID for the given date.
// Only the calendar date (UTC) of date is kept.
func (o *Order) Assign(courierID kernel.ID, date time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	d := truncateToDate(date)
	o.status = newStatus
	o.courierID = &courierID
	o.assignedDate = &d
	return nil
}

// Complete records the one-way completion by courierID at the given instant.
// A second call returns ErrOrderAlreadyCompleted and changes nothing.
func (o *Order) Complete(courierID kernel.ID, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.completeTime != nil {
		return ErrOrderAlreadyCompleted
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	ct := at.UTC()
	o.status = newStatus
	o.courierID = &courierID
	o.completeTime = &ct
	return nil
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%v is not a non-negative number", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setDeliveryHours(deliveryHours []kernel.TimeWindow) error {
	if len(deliveryHours) == 0 {
		return ErrDeliveryHoursAreRequired
	}

	for _, w := range deliveryHours {
		if err := w.Validate(); err != nil {
			return err
		}
	}

	o.deliveryHours = slices.Clone(deliveryHours)
	return nil
}

func (o *Order) setCost(cost int) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid", fmt.Errorf("%d is negative", cost))
	}
	o.cost = cost
	return nil
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
