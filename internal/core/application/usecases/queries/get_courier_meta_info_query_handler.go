package queries

import (
	"context"

	"lavka/internal/core/domain/services"
	"lavka/internal/core/ports"
)

// GetCourierMetaInfoQueryHandler loads the courier and its completed orders
// through the repositories and runs services.MetricsCalculator over them.
type GetCourierMetaInfoQueryHandler struct {
	repositories ports.UnitOfWorkFactory
	calculator   services.MetricsCalculator
}

func NewGetCourierMetaInfoQueryHandler(
	repositories ports.UnitOfWorkFactory,
	calculator services.MetricsCalculator,
) GetCourierMetaInfoQueryHandler {
	return GetCourierMetaInfoQueryHandler{
		repositories: repositories,
		calculator:   calculator,
	}
}

// Handle returns errs.ErrObjectNotFound for an unknown courier.
func (h GetCourierMetaInfoQueryHandler) Handle(
	ctx context.Context,
	query GetCourierMetaInfoQuery,
) (GetCourierMetaInfoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierMetaInfoQueryResponse{}, err
	}

	uow := h.repositories.Create()

	c, err := uow.CourierRepository().Get(ctx, query.CourierID())
	if err != nil {
		return GetCourierMetaInfoQueryResponse{}, err
	}

	completed, err := uow.OrderRepository().GetByIDs(ctx, c.CompletedOrders())
	if err != nil {
		return GetCourierMetaInfoQueryResponse{}, err
	}

	metrics, ok, err := h.calculator.Compute(c, completed, query.Start(), query.End())
	if err != nil {
		return GetCourierMetaInfoQueryResponse{}, err
	}

	response := GetCourierMetaInfoQueryResponse{Courier: NewCourierResponse(c)}
	if ok {
		response.Earnings = &metrics.Earnings
		response.Rating = &metrics.Rating
	}

	return response, nil
}
