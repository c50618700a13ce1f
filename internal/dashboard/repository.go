package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository exposes the aggregate queries behind the stats endpoint.
type Repository interface {
	CountActiveProducts(ctx context.Context) (int64, error)
	CountOrdersToday(ctx context.Context) (int64, error)
	CountLowStockItems(ctx context.Context) (int64, error)
	TotalInventoryValue(ctx context.Context) (float64, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) CountActiveProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active = true`).Scan(&count)
	return count, err
}

func (r *repository) CountOrdersToday(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE order_date = CURRENT_DATE`).Scan(&count)
	return count, err
}

func (r *repository) CountLowStockItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM (
    SELECT p.product_id
    FROM products p
    LEFT JOIN inventory i ON p.product_id = i.product_id
    WHERE p.is_active = true
    GROUP BY p.product_id, p.reorder_level
    HAVING COALESCE(SUM(i.quantity_on_hand), 0) < p.reorder_level
) low`).Scan(&count)
	return count, err
}

// totalValueQuery sums over every inventory row. Soft-deleted products keep
// their stock, so the valuation must not filter on the product's active flag.
const totalValueQuery = `SELECT COALESCE(SUM(i.quantity_on_hand * p.unit_cost), 0)
FROM inventory i
JOIN products p ON i.product_id = p.product_id`

func (r *repository) TotalInventoryValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, totalValueQuery).Scan(&total)
	return total, err
}
