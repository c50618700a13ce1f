package products

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// Repository persists products in PostgreSQL.
type Repository interface {
	ListActive(ctx context.Context) ([]ProductWithStock, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) (Product, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `product_id, sku, product_name, description, category, supplier_id, unit_price, unit_cost, reorder_level, reorder_quantity, is_active, created_at, updated_at`

// ListActive returns active products with summed on-hand quantity; stock
// status is derived from the quantity and reorder level.
func (r *repository) ListActive(ctx context.Context) ([]ProductWithStock, error) {
	rows, err := r.db.Query(ctx, `SELECT p.product_id, p.sku, p.product_name, p.description, p.category, p.supplier_id,
       p.unit_price, p.unit_cost, p.reorder_level, p.reorder_quantity, p.is_active, p.created_at, p.updated_at,
       COALESCE(SUM(i.quantity_on_hand), 0) AS quantity
FROM products p
LEFT JOIN inventory i ON p.product_id = i.product_id
WHERE p.is_active = true
GROUP BY p.product_id
ORDER BY p.product_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []ProductWithStock{}
	for rows.Next() {
		var p ProductWithStock
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.SupplierID,
			&p.UnitPrice, &p.UnitCost, &p.ReorderLevel, &p.ReorderQuantity, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &p.Quantity); err != nil {
			return nil, err
		}
		p.Status = StockStatus(p.Quantity, p.ReorderLevel)
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.SupplierID,
		&p.UnitPrice, &p.UnitCost, &p.ReorderLevel, &p.ReorderQuantity, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx, `INSERT INTO products (sku, product_name, description, category, supplier_id, unit_price, unit_cost, reorder_level, reorder_quantity, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,true,$10,$10)
RETURNING product_id`,
		product.SKU, product.Name, product.Description, product.Category, product.SupplierID,
		product.UnitPrice, product.UnitCost, product.ReorderLevel, product.ReorderQuantity, now).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, httpx.ErrDuplicate
		}
		return Product{}, err
	}
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `UPDATE products
SET product_name = $1, description = $2, category = $3, unit_price = $4,
    unit_cost = $5, reorder_level = $6, reorder_quantity = $7, updated_at = NOW()
WHERE product_id = $8
RETURNING `+productColumns,
		product.Name, product.Description, product.Category, product.UnitPrice,
		product.UnitCost, product.ReorderLevel, product.ReorderQuantity, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.SupplierID,
		&p.UnitPrice, &p.UnitCost, &p.ReorderLevel, &p.ReorderQuantity, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// SoftDelete marks the product inactive; the row is kept for history.
func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_active = false, updated_at = NOW() WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
