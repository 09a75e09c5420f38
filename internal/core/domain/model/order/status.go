package order

import (
	"errors"
	"fmt"

	"lavka/internal/pkg/errs"
)

// ErrOrderAlreadyCompleted is returned when completing an order twice.
var ErrOrderAlreadyCompleted = errors.New("order is already completed")

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Created ──┬──> Assigned ──┬──> Completed
//	          │               │
//	          └───────────────┘
//	   (completion does not require an assignment)
//
// Assigned orders may be assigned again; Completed is final.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	// Created orders wait in the backlog.
	Created
	// Assigned orders belong to a courier's batch.
	Assigned
	// Completed orders carry a completion instant.
	Completed
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Created:   "Created",
	Assigned:  "Assigned",
	Completed: "Completed",
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if s != Created && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return statusNames[Unknown]
}

// ValidateCanHaveCourier checks that Assigned and Completed orders have a courier
// and Created orders do not.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Assign moves Created or Assigned to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Created && s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return Assigned, nil
}

// Complete moves Created or Assigned to Completed.
// Completing a Completed order yields ErrOrderAlreadyCompleted.
func (s Status) Complete() (Status, error) {
	switch s {
	case Created, Assigned:
		return Completed, nil
	case Completed:
		return Unknown, ErrOrderAlreadyCompleted
	case Unknown:
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to complete", s),
	)
}
