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

var ErrGetCourierQueryIsNotConstructed = errors.New(
	"GetCourierQuery must be created via NewGetCourierQuery constructor",
)

// GetCourierQuery reads one courier by id.
type GetCourierQuery struct {
	id kernel.ID

	guard guard.ConstructorGuard
}

func NewGetCourierQuery(id kernel.ID) (GetCourierQuery, error) {
	if err := id.Validate(); err != nil {
		return GetCourierQuery{}, err
	}
	return GetCourierQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

func (q GetCourierQuery) ID() kernel.ID {
	return q.id
}

type GetCourierQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when there is no such courier.
func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (CourierResponse, error) {
	if err := query.Validate(); err != nil {
		return CourierResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+courierColumns+`
		FROM couriers
		WHERE id = ?
	`, query.ID().Int64()).Row()
	if err := row.Err(); err != nil {
		return CourierResponse{}, err
	}

	response, err := scanCourier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CourierResponse{}, errs.NewObjectNotFoundError("courier", query.ID().String())
	}
	if err != nil {
		return CourierResponse{}, wrapScanError("courier", err)
	}

	return response, nil
}
