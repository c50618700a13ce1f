package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	quantities map[string]int64
	txns       []Transaction
	failInsert bool
}

type memoryTx struct {
	quantities map[string]int64
	txns       []Transaction
	failInsert bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{quantities: make(map[string]int64)}
}

func key(productID, locationID int64, lot string) string {
	return fmt.Sprintf("%d:%d:%s", productID, locationID, lot)
}

// WithTx stages mutations and applies them only when fn succeeds, mirroring
// database rollback semantics.
func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	staged := make(map[string]int64, len(r.quantities))
	for k, v := range r.quantities {
		staged[k] = v
	}
	tx := &memoryTx{quantities: staged, failInsert: r.failInsert}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	r.quantities = tx.quantities
	r.txns = append(r.txns, tx.txns...)
	return nil
}

func (r *memoryRepo) ListStock(ctx context.Context, filter StockFilter) ([]StockRow, error) {
	return []StockRow{}, nil
}

func (tx *memoryTx) GetQuantityForUpdate(ctx context.Context, productID, locationID int64, lot string) (int64, error) {
	if qty, ok := tx.quantities[key(productID, locationID, lot)]; ok {
		return qty, nil
	}
	return 0, ErrRecordNotFound
}

func (tx *memoryTx) UpsertRecord(ctx context.Context, rec Record) error {
	tx.quantities[key(rec.ProductID, rec.LocationID, rec.LotNumber)] = rec.QuantityOnHand
	return nil
}

func (tx *memoryTx) InsertTransaction(ctx context.Context, t Transaction) error {
	if tx.failInsert {
		return errors.New("insert transaction failed")
	}
	tx.txns = append(tx.txns, t)
	return nil
}

func TestAdjustCreatesRecordWhenAbsent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, ServiceConfig{AllowNegativeStock: true})
	ctx := context.Background()

	newQty, err := svc.Adjust(ctx, AdjustmentInput{ProductID: 1, LocationID: 2, WarehouseID: 1, QuantityChange: 10, Reason: "initial receipt"})
	require.NoError(t, err)
	require.Equal(t, int64(10), newQty)
	require.Equal(t, int64(10), repo.quantities[key(1, 2, "")])
	require.Len(t, repo.txns, 1)
	require.Equal(t, int64(0), repo.txns[0].QuantityBefore)
	require.Equal(t, int64(10), repo.txns[0].QuantityAfter)
	require.Equal(t, TransactionTypeAdjustment, repo.txns[0].Type)
}

func TestAdjustChainsAuditTrail(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, ServiceConfig{AllowNegativeStock: true})
	ctx := context.Background()

	changes := []int64{5, -2, 7}
	var sum int64
	for _, c := range changes {
		_, err := svc.Adjust(ctx, AdjustmentInput{ProductID: 3, LocationID: 4, WarehouseID: 1, QuantityChange: c})
		require.NoError(t, err)
		sum += c
	}

	require.Equal(t, sum, repo.quantities[key(3, 4, "")])
	require.Len(t, repo.txns, len(changes))
	for i, txn := range repo.txns {
		require.Equal(t, changes[i], txn.QuantityChange)
		require.Equal(t, txn.QuantityBefore+txn.QuantityChange, txn.QuantityAfter)
		if i > 0 {
			require.Equal(t, repo.txns[i-1].QuantityAfter, txn.QuantityBefore)
		}
	}
}

func TestAdjustRollsBackOnAuditInsertFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[key(1, 1, "")] = 5
	repo.failInsert = true
	svc := NewService(repo, nil, ServiceConfig{AllowNegativeStock: true})

	_, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 1, LocationID: 1, WarehouseID: 1, QuantityChange: 3})
	require.Error(t, err)
	require.Equal(t, int64(5), repo.quantities[key(1, 1, "")])
	require.Empty(t, repo.txns)
}

func TestAdjustAllowsNegativeByDefaultConfig(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, ServiceConfig{AllowNegativeStock: true})

	newQty, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 1, LocationID: 1, WarehouseID: 1, QuantityChange: -3})
	require.NoError(t, err)
	require.Equal(t, int64(-3), newQty)
}

func TestAdjustNegativeStockGuard(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, ServiceConfig{AllowNegativeStock: false})

	_, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 1, LocationID: 1, WarehouseID: 1, QuantityChange: -1})
	require.ErrorIs(t, err, ErrNegativeStock)
	require.Empty(t, repo.txns)
}

func TestAdjustRejectsZeroChange(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, ServiceConfig{AllowNegativeStock: true})

	_, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 1, LocationID: 1, WarehouseID: 1, QuantityChange: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}
