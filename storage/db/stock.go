package db

import (
	"context"
	"time"
)

const getStockBySku = `-- name: GetStockBySku :one
SELECT id, sku, quantity_primary, quantity_secondary, pre_order, created_at, updated_at
FROM warehouse_stock
WHERE sku = ?
`

func (q *Queries) GetStockBySku(ctx context.Context, sku string) (WarehouseStock, error) {
	row := q.db.QueryRowContext(ctx, getStockBySku, sku)
	var i WarehouseStock
	err := row.Scan(
		&i.ID,
		&i.Sku,
		&i.QuantityPrimary,
		&i.QuantitySecondary,
		&i.PreOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listStock = `-- name: ListStock :many
SELECT id, sku, quantity_primary, quantity_secondary, pre_order, created_at, updated_at
FROM warehouse_stock
ORDER BY sku
`

func (q *Queries) ListStock(ctx context.Context) ([]WarehouseStock, error) {
	rows, err := q.db.QueryContext(ctx, listStock)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WarehouseStock
	for rows.Next() {
		var i WarehouseStock
		if err := rows.Scan(
			&i.ID,
			&i.Sku,
			&i.QuantityPrimary,
			&i.QuantitySecondary,
			&i.PreOrder,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listStaleStock = `-- name: ListStaleStock :many
SELECT id, sku, quantity_primary, quantity_secondary, pre_order, created_at, updated_at
FROM warehouse_stock
WHERE updated_at < ?
ORDER BY updated_at
`

// ListStaleStock returns records whose last feed write is older than the
// given instant, oldest first.
func (q *Queries) ListStaleStock(ctx context.Context, updatedBefore time.Time) ([]WarehouseStock, error) {
	rows, err := q.db.QueryContext(ctx, listStaleStock, updatedBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WarehouseStock
	for rows.Next() {
		var i WarehouseStock
		if err := rows.Scan(
			&i.ID,
			&i.Sku,
			&i.QuantityPrimary,
			&i.QuantitySecondary,
			&i.PreOrder,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertStock = `-- name: UpsertStock :one
INSERT INTO warehouse_stock (id, sku, quantity_primary, quantity_secondary, pre_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(sku) DO UPDATE SET
    quantity_primary = excluded.quantity_primary,
    quantity_secondary = excluded.quantity_secondary,
    pre_order = excluded.pre_order,
    updated_at = excluded.updated_at
RETURNING id, sku, quantity_primary, quantity_secondary, pre_order, created_at, updated_at
`

type UpsertStockParams struct {
	ID                string
	Sku               string
	QuantityPrimary   int64
	QuantitySecondary int64
	PreOrder          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UpsertStock writes a feed tuple, last write wins. The generated ID is
// only used when the SKU is new; an existing row keeps its identity.
func (q *Queries) UpsertStock(ctx context.Context, arg UpsertStockParams) (WarehouseStock, error) {
	row := q.db.QueryRowContext(ctx, upsertStock,
		arg.ID,
		arg.Sku,
		arg.QuantityPrimary,
		arg.QuantitySecondary,
		arg.PreOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i WarehouseStock
	err := row.Scan(
		&i.ID,
		&i.Sku,
		&i.QuantityPrimary,
		&i.QuantitySecondary,
		&i.PreOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countStock = `-- name: CountStock :one
SELECT COUNT(*) FROM warehouse_stock
`

func (q *Queries) CountStock(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countStock)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteStock = `-- name: DeleteStock :exec
DELETE FROM warehouse_stock WHERE sku = ?
`

func (q *Queries) DeleteStock(ctx context.Context, sku string) error {
	_, err := q.db.ExecContext(ctx, deleteStock, sku)
	return err
}
