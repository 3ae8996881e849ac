package db

import "time"

// WarehouseStock is one per-SKU stock record. QuantityPrimary is the
// walk-in shop, QuantitySecondary the fulfillment warehouse. PreOrder is
// only meaningful when both quantities are zero.
type WarehouseStock struct {
	ID                string
	Sku               string
	QuantityPrimary   int64
	QuantitySecondary int64
	PreOrder          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
