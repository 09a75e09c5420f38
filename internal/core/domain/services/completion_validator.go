package services

import (
	"errors"
	"fmt"
	"time"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
)

// Completion rejections, in the order they are checked.
var (
	ErrAlreadyCompleted      = order.ErrOrderAlreadyCompleted
	ErrRegionMismatch        = errors.New("order region is not served by the courier")
	ErrOutsideCourierHours   = errors.New("completion time is outside the courier working hours")
	ErrOutsideDeliveryWindow = errors.New("completion time is outside the order delivery hours")
)

// CompletionRejectedError names the courier, the order and the failed check.
// errors.Is matches it against the rejection sentinels above.
type CompletionRejectedError struct {
	CourierID kernel.ID
	OrderID   kernel.ID
	Reason    error
}

func (e *CompletionRejectedError) Error() string {
	return fmt.Sprintf("completion of order %d by courier %d is rejected: %v", e.OrderID, e.CourierID, e.Reason)
}

func (e *CompletionRejectedError) Unwrap() error {
	return e.Reason
}

// CompletionValidator decides whether a courier may mark an order complete.
//
// Checks, first failure wins:
//  1. the order has no completion yet (ErrAlreadyCompleted)
//  2. the courier serves the order's region (ErrRegionMismatch)
//  3. the minute of day is inside a courier working window (ErrOutsideCourierHours)
//  4. the minute of day is inside an order delivery window (ErrOutsideDeliveryWindow)
//
// Example:
//
//	v := services.NewCompletionValidator()
//	if err := v.Apply(c, o, at); err != nil {
//	    var rejected *services.CompletionRejectedError
//	    if errors.As(err, &rejected) { ... }
//	}
//	// persist c and o in one transaction
type CompletionValidator struct{}

func NewCompletionValidator() CompletionValidator {
	return CompletionValidator{}
}

// Validate returns nil when the completion is admissible.
func (v CompletionValidator) Validate(c *courier.Courier, o *order.Order, at time.Time) error {
	if err := errors.Join(c.Validate(), o.Validate()); err != nil {
		return err
	}

	reject := func(reason error) error {
		return &CompletionRejectedError{CourierID: c.ID(), OrderID: o.ID(), Reason: reason}
	}

	if o.IsCompleted() {
		return reject(ErrAlreadyCompleted)
	}

	if !c.ServesRegion(o.Region()) {
		return reject(ErrRegionMismatch)
	}

	minute := kernel.MinuteOfDay(at)
	if !c.IsWorkingAt(minute) {
		return reject(ErrOutsideCourierHours)
	}

	if !o.IsDeliverableAt(minute) {
		return reject(ErrOutsideDeliveryWindow)
	}

	return nil
}

// Apply validates and then performs both halves of the completion in memory:
// the order gets its instant and the courier records the order id.
func (v CompletionValidator) Apply(c *courier.Courier, o *order.Order, at time.Time) error {
	if err := v.Validate(c, o, at); err != nil {
		return err
	}

	if err := o.Complete(c.ID(), at); err != nil {
		return err
	}

	return c.RecordCompletion(o.ID())
}
