package queries

import (
	"errors"
	"time"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

var ErrGetCourierMetaInfoQueryIsNotConstructed = errors.New(
	"GetCourierMetaInfoQuery must be created via NewGetCourierMetaInfoQuery constructor",
)

// GetCourierMetaInfoQuery asks for a courier's earnings and rating over [start, end).
//
// Example:
//
//	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
//	query, err := NewGetCourierMetaInfoQuery(courierID, start, start.AddDate(0, 0, 1))
//	info, err := handler.Handle(ctx, query)
//	if info.Earnings != nil {
//	    fmt.Println(*info.Earnings, *info.Rating)
//	}
type GetCourierMetaInfoQuery struct {
	courierID kernel.ID
	start     time.Time
	end       time.Time

	guard guard.ConstructorGuard
}

func NewGetCourierMetaInfoQuery(courierID kernel.ID, start time.Time, end time.Time) (GetCourierMetaInfoQuery, error) {
	var startErr, endErr error
	if start.IsZero() {
		startErr = errs.NewValueIsRequiredError("start date")
	}
	if end.IsZero() {
		endErr = errs.NewValueIsRequiredError("end date")
	}
	if err := errors.Join(courierID.Validate(), startErr, endErr); err != nil {
		return GetCourierMetaInfoQuery{}, err
	}

	return GetCourierMetaInfoQuery{
		courierID: courierID,
		start:     start,
		end:       end,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierMetaInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierMetaInfoQueryIsNotConstructed)
}

func (q GetCourierMetaInfoQuery) CourierID() kernel.ID {
	return q.courierID
}

func (q GetCourierMetaInfoQuery) Start() time.Time {
	return q.start
}

func (q GetCourierMetaInfoQuery) End() time.Time {
	return q.end
}

// GetCourierMetaInfoQueryResponse carries the courier and, when the range
// holds at least one full hour and one completion, its earnings and rating.
type GetCourierMetaInfoQueryResponse struct {
	Courier  CourierResponse
	Earnings *int
	Rating   *int
}
