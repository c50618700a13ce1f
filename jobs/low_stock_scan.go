package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wareflow/wareflow/internal/shared"
)

// AuditRecorder persists reorder alerts into the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// LowStockScanJob sweeps active products whose on-hand total fell below the
// reorder level and records a reorder alert for each.
type LowStockScanJob struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
	Audit  AuditRecorder
	clock  func() time.Time
}

// NewLowStockScanJob initialises the low stock scan handler.
func NewLowStockScanJob(pool *pgxpool.Pool, logger *slog.Logger, audit AuditRecorder) *LowStockScanJob {
	return &LowStockScanJob{
		Pool:   pool,
		Logger: logger,
		Audit:  audit,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type lowStockRow struct {
	ProductID    int64
	SKU          string
	Name         string
	OnHand       int64
	ReorderLevel int64
	ReorderQty   int64
}

// Handle executes the low stock sweep.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := j.now()
	logger := j.logger()
	logger.Info("starting low stock scan")

	low, err := j.scan(ctx)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	for _, row := range low {
		logger.Warn("product below reorder level",
			slog.Int64("product_id", row.ProductID),
			slog.String("sku", row.SKU),
			slog.Int64("on_hand", row.OnHand),
			slog.Int64("reorder_level", row.ReorderLevel),
		)
		if j.Audit != nil {
			err := j.Audit.Record(ctx, shared.AuditLog{
				Action:   "inventory:reorder_alert",
				Entity:   "product",
				EntityID: strconv.FormatInt(row.ProductID, 10),
				Meta: map[string]any{
					"sku":              row.SKU,
					"product_name":     row.Name,
					"quantity_on_hand": row.OnHand,
					"reorder_level":    row.ReorderLevel,
					"reorder_quantity": row.ReorderQty,
				},
			})
			if err != nil {
				logger.Error("record reorder alert failed", slog.Any("error", err), slog.Int64("product_id", row.ProductID))
			}
		}
	}

	logger.Info("completed low stock scan",
		slog.Int("alerts", len(low)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *LowStockScanJob) scan(ctx context.Context) ([]lowStockRow, error) {
	if j.Pool == nil {
		return nil, errors.New("low stock scan: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT p.product_id, p.sku, p.product_name, COALESCE(SUM(i.quantity_on_hand), 0) AS on_hand, p.reorder_level, p.reorder_quantity
FROM products p
LEFT JOIN inventory i ON p.product_id = i.product_id
WHERE p.is_active = true
GROUP BY p.product_id, p.sku, p.product_name, p.reorder_level, p.reorder_quantity
HAVING COALESCE(SUM(i.quantity_on_hand), 0) < p.reorder_level
ORDER BY p.product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	low := []lowStockRow{}
	for rows.Next() {
		var row lowStockRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.OnHand, &row.ReorderLevel, &row.ReorderQty); err != nil {
			return nil, err
		}
		low = append(low, row)
	}
	return low, rows.Err()
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

func (j *LowStockScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
