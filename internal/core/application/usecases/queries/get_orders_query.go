package queries

import (
	"errors"

	"lavka/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery reads one page of the order catalogue, ordered by id.
type GetOrdersQuery struct {
	page Page

	guard guard.ConstructorGuard
}

func NewGetOrdersQuery(offset int, limit int) (GetOrdersQuery, error) {
	page, err := NewPage(offset, limit)
	if err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Page() Page {
	return q.page
}
