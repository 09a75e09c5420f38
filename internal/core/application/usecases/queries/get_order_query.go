package queries

import (
	"context"
	"database/sql"
	"errors"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	id kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id kernel.ID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ID() kernel.ID {
	return q.id
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when there is no such order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.ID().Int64()).Row()
	if err := row.Err(); err != nil {
		return OrderResponse{}, err
	}

	response, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.ID().String())
	}
	if err != nil {
		return OrderResponse{}, wrapScanError("order", err)
	}

	return response, nil
}
