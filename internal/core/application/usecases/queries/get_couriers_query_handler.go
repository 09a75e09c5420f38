package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCouriersQueryHandler reads the couriers table directly.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle returns an empty, non-nil list past the end of the catalogue.
// The page limit is only passed to SQL; it never sizes a buffer.
func (h GetCouriersQueryHandler) Handle(ctx context.Context, query GetCouriersQuery) (GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCouriersQueryResponse{}, err
	}

	page := query.Page()
	response := GetCouriersQueryResponse{
		Couriers: make([]CourierResponse, 0),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+courierColumns+`
		FROM couriers
		ORDER BY id
		LIMIT ? OFFSET ?
	`, page.Limit, page.Offset).Rows()
	if err != nil {
		return GetCouriersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		courier, scanErr := scanCourier(rows)
		if scanErr != nil {
			return GetCouriersQueryResponse{}, wrapScanError("courier", scanErr)
		}
		response.Couriers = append(response.Couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return GetCouriersQueryResponse{}, err
	}

	return response, nil
}
