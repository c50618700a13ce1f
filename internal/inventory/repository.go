package inventory

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wareflow/wareflow/internal/platform/db"
)

// Repository persists inventory data in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the service.
type TxRepository interface {
	GetQuantityForUpdate(ctx context.Context, productID, locationID int64, lotNumber string) (int64, error)
	UpsertRecord(ctx context.Context, rec Record) error
	InsertTransaction(ctx context.Context, tx Transaction) error
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// ListStock returns inventory rows joined with product, location and warehouse.
func (r *Repository) ListStock(ctx context.Context, filter StockFilter) ([]StockRow, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	query := `SELECT i.inventory_id, i.product_id, i.location_id, i.warehouse_id, COALESCE(i.lot_number, ''),
       i.quantity_on_hand, i.quantity_allocated, i.last_movement_date,
       p.product_name, p.sku, l.location_code, w.warehouse_name
FROM inventory i
JOIN products p ON i.product_id = p.product_id
JOIN locations l ON i.location_id = l.location_id
JOIN warehouses w ON i.warehouse_id = w.warehouse_id
WHERE 1=1`
	args := []any{}
	if filter.WarehouseID > 0 {
		args = append(args, filter.WarehouseID)
		query += ` AND i.warehouse_id = $` + strconv.Itoa(len(args))
	}
	if filter.ProductID > 0 {
		args = append(args, filter.ProductID)
		query += ` AND i.product_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY p.product_name, l.location_code`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stock := []StockRow{}
	for rows.Next() {
		var row StockRow
		if err := rows.Scan(&row.ID, &row.ProductID, &row.LocationID, &row.WarehouseID, &row.LotNumber,
			&row.QuantityOnHand, &row.QuantityAllocated, &row.LastMovementDate,
			&row.ProductName, &row.SKU, &row.LocationCode, &row.WarehouseName); err != nil {
			return nil, err
		}
		stock = append(stock, row)
	}
	return stock, rows.Err()
}

// GetQuantityForUpdate reads the current on-hand quantity holding a row lock so
// concurrent adjustments on the same key serialise.
func (r *txRepository) GetQuantityForUpdate(ctx context.Context, productID, locationID int64, lotNumber string) (int64, error) {
	var qty int64
	err := r.tx.QueryRow(ctx, `SELECT quantity_on_hand FROM inventory
WHERE product_id=$1 AND location_id=$2 AND COALESCE(lot_number,'')=$3 FOR UPDATE`,
		productID, locationID, lotNumber).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrRecordNotFound
		}
		return 0, err
	}
	return qty, nil
}

func (r *txRepository) UpsertRecord(ctx context.Context, rec Record) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO inventory (product_id, location_id, warehouse_id, lot_number, quantity_on_hand, last_movement_date)
VALUES ($1,$2,$3,$4,$5,NOW())
ON CONFLICT (product_id, location_id, lot_number)
DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand, last_movement_date = NOW()`,
		rec.ProductID, rec.LocationID, rec.WarehouseID, rec.LotNumber, rec.QuantityOnHand)
	return err
}

func (r *txRepository) InsertTransaction(ctx context.Context, tx Transaction) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO inventory_transactions
(product_id, location_id, warehouse_id, transaction_type, quantity_change, quantity_before, quantity_after, reason, performed_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,COALESCE($10, NOW()))`,
		tx.ProductID, tx.LocationID, tx.WarehouseID, string(tx.Type), tx.QuantityChange,
		tx.QuantityBefore, tx.QuantityAfter, tx.Reason, nullInt(tx.PerformedBy), nullTime(tx.OccurredAt))
	return err
}

func nullInt(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
