package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wareflow/wareflow/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (OrderDetail, error)
	List(ctx context.Context, filter ListFilter) ([]OrderSummary, error)
}

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheInvalidator drops derived read-model caches after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service coordinates order creation and lifecycle changes.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
	inval CacheInvalidator
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// WithCacheInvalidator makes successful order creation bump the given cache.
func (s *Service) WithCacheInvalidator(inval CacheInvalidator) *Service {
	s.inval = inval
	return s
}

// Create inserts the order header and all line items as one unit. Outbound
// orders additionally reserve stock by bumping quantity_allocated on the
// matching inventory rows; any failure rolls the whole order back.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (Order, error) {
	if input.OrderType != OrderTypeInbound && input.OrderType != OrderTypeOutbound {
		return Order{}, ErrInvalidType
	}
	if len(input.Items) == 0 {
		return Order{}, ErrNoItems
	}
	if (input.CustomerID == nil) == (input.SupplierID == nil) {
		return Order{}, ErrPartner
	}
	if input.WarehouseID <= 0 {
		return Order{}, errors.New("orders: warehouse required")
	}

	number := input.OrderNumber
	if number == "" {
		number = generateOrderNumber()
	}

	var created Order
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		header := Order{
			OrderNumber: number,
			OrderType:   input.OrderType,
			CustomerID:  input.CustomerID,
			SupplierID:  input.SupplierID,
			WarehouseID: input.WarehouseID,
			OrderDate:   input.OrderDate,
			Status:      StatusPending,
		}
		var err error
		created, err = tx.InsertOrder(ctx, header)
		if err != nil {
			return err
		}
		for _, item := range input.Items {
			if err := tx.InsertItem(ctx, Item{
				OrderID:         created.ID,
				ProductID:       item.ProductID,
				QuantityOrdered: item.Quantity,
				UnitPrice:       item.UnitPrice,
			}); err != nil {
				return err
			}
			if input.OrderType == OrderTypeOutbound {
				if err := tx.AllocateStock(ctx, item.ProductID, input.WarehouseID, item.Quantity); err != nil {
					return err
				}
				if err := tx.RecordAllocation(ctx, created.OrderNumber, item.ProductID, input.WarehouseID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  input.CreatedBy,
			Action:   "orders:create",
			Entity:   "order",
			EntityID: fmt.Sprintf("%d", created.ID),
			Meta: map[string]any{
				"order_number": created.OrderNumber,
				"order_type":   string(created.OrderType),
				"item_count":   len(input.Items),
			},
		})
	}
	if s.inval != nil {
		_ = s.inval.Invalidate(ctx)
	}
	return created, nil
}

// Get returns one order with partner names and items.
func (s *Service) Get(ctx context.Context, id int64) (OrderDetail, error) {
	if id <= 0 {
		return OrderDetail{}, ErrOrderNotFound
	}
	return s.repo.Get(ctx, id)
}

// List returns order summaries matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]OrderSummary, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves the order to a new lifecycle state, validating the
// transition against the current state under a row lock.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next Status, actorID int64) (Order, error) {
	if !next.Valid() {
		return Order{}, ErrUnknownStatus
	}
	var updated Order
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetStatusForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
		}
		updated, err = tx.UpdateStatus(ctx, id, next)
		return err
	})
	if err != nil {
		return Order{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "orders:status",
			Entity:   "order",
			EntityID: fmt.Sprintf("%d", id),
			Meta:     map[string]any{"status": string(next)},
		})
	}
	return updated, nil
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
