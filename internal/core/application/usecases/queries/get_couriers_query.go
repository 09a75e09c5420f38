package queries

import (
	"errors"

	"lavka/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery reads one page of the courier catalogue, ordered by id.
//
// Example:
//
//	query, err := NewGetCouriersQuery(0, 10)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	for _, c := range page.Couriers {
//	    fmt.Println(c.ID, c.Type, c.Regions)
//	}
type GetCouriersQuery struct {
	page Page

	guard guard.ConstructorGuard
}

// NewGetCouriersQuery rejects a negative offset or limit.
func NewGetCouriersQuery(offset int, limit int) (GetCouriersQuery, error) {
	page, err := NewPage(offset, limit)
	if err != nil {
		return GetCouriersQuery{}, err
	}

	return GetCouriersQuery{page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

func (q GetCouriersQuery) Page() Page {
	return q.page
}

// GetCouriersQueryResponse echoes the page bounds next to the couriers.
type GetCouriersQueryResponse struct {
	Couriers []CourierResponse
	Limit    int
	Offset   int
}
