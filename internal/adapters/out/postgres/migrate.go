package postgres

import (
	"lavka/internal/adapters/out/postgres/courierrepo"
	"lavka/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the couriers and orders tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&courierrepo.CourierDTO{}, &orderrepo.OrderDTO{})
}
