package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	page := query.Page()
	orders := make([]OrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY id
		LIMIT ? OFFSET ?
	`, page.Limit, page.Offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, wrapScanError("order", scanErr)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
