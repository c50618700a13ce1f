package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wareflow/wareflow/internal/inventory"
	"github.com/wareflow/wareflow/internal/platform/db"
)

// Repository persists orders in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the service.
type TxRepository interface {
	InsertOrder(ctx context.Context, order Order) (Order, error)
	InsertItem(ctx context.Context, item Item) error
	AllocateStock(ctx context.Context, productID, warehouseID, quantity int64) error
	RecordAllocation(ctx context.Context, orderNumber string, productID, warehouseID, quantity int64) error
	GetStatusForUpdate(ctx context.Context, orderID int64) (Status, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) (Order, error)
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("orders repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

const orderColumns = `order_id, order_number, order_type, customer_id, supplier_id, warehouse_id, order_date, status, created_at, updated_at`

// Get returns the order header with partner names and its items.
func (r *Repository) Get(ctx context.Context, id int64) (OrderDetail, error) {
	var detail OrderDetail
	err := r.pool.QueryRow(ctx, `SELECT o.order_id, o.order_number, o.order_type, o.customer_id, o.supplier_id,
       o.warehouse_id, o.order_date, o.status, o.created_at, o.updated_at,
       c.customer_name, s.supplier_name
FROM orders o
LEFT JOIN customers c ON o.customer_id = c.customer_id
LEFT JOIN suppliers s ON o.supplier_id = s.supplier_id
WHERE o.order_id = $1`, id).Scan(
		&detail.ID, &detail.OrderNumber, &detail.OrderType, &detail.CustomerID, &detail.SupplierID,
		&detail.WarehouseID, &detail.OrderDate, &detail.Status, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.CustomerName, &detail.SupplierName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OrderDetail{}, ErrOrderNotFound
		}
		return OrderDetail{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT oi.order_item_id, oi.order_id, oi.product_id, oi.quantity_ordered, oi.unit_price,
       p.product_name, p.sku
FROM order_items oi
JOIN products p ON oi.product_id = p.product_id
WHERE oi.order_id = $1
ORDER BY oi.order_item_id`, id)
	if err != nil {
		return OrderDetail{}, err
	}
	defer rows.Close()

	detail.Items = []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.QuantityOrdered, &item.UnitPrice,
			&item.ProductName, &item.SKU); err != nil {
			return OrderDetail{}, err
		}
		detail.Items = append(detail.Items, item)
	}
	return detail, rows.Err()
}

// List returns order summaries with optional type/status filters.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]OrderSummary, error) {
	query := `SELECT o.order_id, o.order_number, o.order_type, o.customer_id, o.supplier_id,
       o.warehouse_id, o.order_date, o.status, o.created_at, o.updated_at,
       COALESCE(c.customer_name, s.supplier_name) AS partner_name,
       COUNT(oi.order_item_id) AS item_count,
       COALESCE(SUM(oi.quantity_ordered * oi.unit_price), 0) AS total_amount
FROM orders o
LEFT JOIN customers c ON o.customer_id = c.customer_id
LEFT JOIN suppliers s ON o.supplier_id = s.supplier_id
LEFT JOIN order_items oi ON o.order_id = oi.order_id
WHERE 1=1`
	args := []any{}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND o.order_type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	query += ` GROUP BY o.order_id, c.customer_name, s.supplier_name ORDER BY o.order_date DESC, o.order_id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []OrderSummary{}
	for rows.Next() {
		var s OrderSummary
		if err := rows.Scan(&s.ID, &s.OrderNumber, &s.OrderType, &s.CustomerID, &s.SupplierID,
			&s.WarehouseID, &s.OrderDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.PartnerName, &s.ItemCount, &s.TotalAmount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *txRepository) InsertOrder(ctx context.Context, order Order) (Order, error) {
	err := r.tx.QueryRow(ctx, `INSERT INTO orders (order_number, order_type, customer_id, supplier_id, warehouse_id, order_date, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
RETURNING `+orderColumns,
		order.OrderNumber, string(order.OrderType), order.CustomerID, order.SupplierID,
		order.WarehouseID, order.OrderDate, string(order.Status)).Scan(
		&order.ID, &order.OrderNumber, &order.OrderType, &order.CustomerID, &order.SupplierID,
		&order.WarehouseID, &order.OrderDate, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	return order, err
}

func (r *txRepository) InsertItem(ctx context.Context, item Item) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO order_items (order_id, product_id, quantity_ordered, unit_price)
VALUES ($1,$2,$3,$4)`, item.OrderID, item.ProductID, item.QuantityOrdered, item.UnitPrice)
	return err
}

// AllocateStock reserves quantity against the (product, warehouse) inventory
// rows. On-hand quantity is untouched; fulfilment decrements it later.
func (r *txRepository) AllocateStock(ctx context.Context, productID, warehouseID, quantity int64) error {
	_, err := r.tx.Exec(ctx, `UPDATE inventory
SET quantity_allocated = quantity_allocated + $1
WHERE product_id = $2 AND warehouse_id = $3`, quantity, productID, warehouseID)
	return err
}

// RecordAllocation appends the allocation movement to the inventory ledger.
// Before/after reflect the summed allocated quantity for the product at the
// warehouse, taken after AllocateStock in the same transaction.
func (r *txRepository) RecordAllocation(ctx context.Context, orderNumber string, productID, warehouseID, quantity int64) error {
	var allocated int64
	err := r.tx.QueryRow(ctx, `SELECT COALESCE(SUM(quantity_allocated), 0) FROM inventory
WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID).Scan(&allocated)
	if err != nil {
		return err
	}
	_, err = r.tx.Exec(ctx, `INSERT INTO inventory_transactions
(product_id, warehouse_id, transaction_type, quantity_change, quantity_before, quantity_after, reason, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())`,
		productID, warehouseID, string(inventory.TransactionTypeAllocation), quantity,
		allocated-quantity, allocated, "order "+orderNumber)
	return err
}

func (r *txRepository) GetStatusForUpdate(ctx context.Context, orderID int64) (Status, error) {
	var status Status
	err := r.tx.QueryRow(ctx, `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	return status, nil
}

func (r *txRepository) UpdateStatus(ctx context.Context, orderID int64, status Status) (Order, error) {
	var order Order
	err := r.tx.QueryRow(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE order_id = $2
RETURNING `+orderColumns, string(status), orderID).Scan(
		&order.ID, &order.OrderNumber, &order.OrderType, &order.CustomerID, &order.SupplierID,
		&order.WarehouseID, &order.OrderDate, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, err
	}
	return order, nil
}
