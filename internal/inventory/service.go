package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wareflow/wareflow/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListStock(ctx context.Context, filter StockFilter) ([]StockRow, error)
}

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheInvalidator drops derived read-model caches after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service coordinates inventory ledger operations.
type Service struct {
	repo     RepositoryPort
	audit    AuditPort
	inval    CacheInvalidator
	allowNeg bool
}

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	// AllowNegativeStock keeps the historical behaviour of letting on-hand
	// quantities go below zero. Disabling it makes Adjust fail with
	// ErrNegativeStock instead.
	AllowNegativeStock bool
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort, cfg ServiceConfig) *Service {
	return &Service{repo: repo, audit: audit, allowNeg: cfg.AllowNegativeStock}
}

// WithCacheInvalidator makes successful adjustments bump the given cache.
func (s *Service) WithCacheInvalidator(inval CacheInvalidator) *Service {
	s.inval = inval
	return s
}

// Adjust applies a signed quantity change to one inventory row and appends the
// matching transaction-log entry, all inside a single database transaction.
// It returns the resulting on-hand quantity.
func (s *Service) Adjust(ctx context.Context, input AdjustmentInput) (int64, error) {
	if input.ProductID <= 0 || input.LocationID <= 0 || input.WarehouseID <= 0 {
		return 0, errors.New("inventory: product, location and warehouse required")
	}
	if input.QuantityChange == 0 {
		return 0, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	var newQty int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetQuantityForUpdate(ctx, input.ProductID, input.LocationID, input.LotNumber)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return err
		}
		newQty = current + input.QuantityChange
		if !s.allowNeg && newQty < 0 {
			return ErrNegativeStock
		}
		rec := Record{
			ProductID:      input.ProductID,
			LocationID:     input.LocationID,
			WarehouseID:    input.WarehouseID,
			LotNumber:      input.LotNumber,
			QuantityOnHand: newQty,
		}
		if err := tx.UpsertRecord(ctx, rec); err != nil {
			return err
		}
		return tx.InsertTransaction(ctx, Transaction{
			ProductID:      input.ProductID,
			LocationID:     input.LocationID,
			WarehouseID:    input.WarehouseID,
			Type:           TransactionTypeAdjustment,
			QuantityChange: input.QuantityChange,
			QuantityBefore: current,
			QuantityAfter:  newQty,
			Reason:         input.Reason,
			PerformedBy:    input.PerformedBy,
			OccurredAt:     now,
		})
	})
	if err != nil {
		return 0, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  input.PerformedBy,
			Action:   "inventory:adjustment",
			Entity:   "inventory",
			EntityID: fmt.Sprintf("%d:%d", input.ProductID, input.LocationID),
			Meta: map[string]any{
				"warehouse_id":    input.WarehouseID,
				"quantity_change": input.QuantityChange,
				"new_quantity":    newQty,
				"reason":          input.Reason,
			},
		})
	}
	if s.inval != nil {
		_ = s.inval.Invalidate(ctx)
	}
	return newQty, nil
}

// ListStock lists inventory rows with their product, location and warehouse.
func (s *Service) ListStock(ctx context.Context, filter StockFilter) ([]StockRow, error) {
	return s.repo.ListStock(ctx, filter)
}
