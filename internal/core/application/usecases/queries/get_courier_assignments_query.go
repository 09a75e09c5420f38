package queries

import (
	"errors"
	"time"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/guard"
)

var ErrGetCourierAssignmentsQueryIsNotConstructed = errors.New(
	"GetCourierAssignmentsQuery must be created via NewGetCourierAssignmentsQuery constructor",
)

// GetCourierAssignmentsQuery lists the batches persisted for a date,
// optionally for a single courier.
type GetCourierAssignmentsQuery struct {
	date      time.Time
	courierID *kernel.ID

	guard guard.ConstructorGuard
}

// NewGetCourierAssignmentsQuery keeps only the UTC calendar date of date.
// A nil courierID selects every courier.
func NewGetCourierAssignmentsQuery(date time.Time, courierID *kernel.ID) (GetCourierAssignmentsQuery, error) {
	query := GetCourierAssignmentsQuery{guard: guard.NewConstructorGuard()}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return GetCourierAssignmentsQuery{}, err
		}
		id := *courierID
		query.courierID = &id
	}

	u := date.UTC()
	query.date = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return query, nil
}

func (q GetCourierAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierAssignmentsQueryIsNotConstructed)
}

func (q GetCourierAssignmentsQuery) Date() time.Time {
	return q.date
}

func (q GetCourierAssignmentsQuery) CourierID() *kernel.ID {
	if q.courierID == nil {
		return nil
	}
	id := *q.courierID
	return &id
}

// CourierAssignment is one courier's batch for the date, orders by id.
type CourierAssignment struct {
	CourierID kernel.ID
	Orders    []OrderResponse
}

type GetCourierAssignmentsQueryResponse struct {
	Date     time.Time
	Couriers []CourierAssignment
}
