package dashboard

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	products      int64
	orders        int64
	lowStock      int64
	value         float64
	productCalls  int
	orderCalls    int
	lowStockCalls int
	valueCalls    int
}

func (m *mockRepo) CountActiveProducts(ctx context.Context) (int64, error) {
	m.productCalls++
	return m.products, nil
}

func (m *mockRepo) CountOrdersToday(ctx context.Context) (int64, error) {
	m.orderCalls++
	return m.orders, nil
}

func (m *mockRepo) CountLowStockItems(ctx context.Context) (int64, error) {
	m.lowStockCalls++
	return m.lowStock, nil
}

func (m *mockRepo) TotalInventoryValue(ctx context.Context) (float64, error) {
	m.valueCalls++
	return m.value, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute))
}

func TestGetStatsAggregates(t *testing.T) {
	repo := &mockRepo{products: 42, orders: 7, lowStock: 3, value: 12345.67}
	svc := newTestService(t, repo)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), stats.TotalProducts)
	require.Equal(t, int64(7), stats.OrdersToday)
	require.Equal(t, int64(3), stats.LowStockItems)
	require.InDelta(t, 12345.67, stats.TotalValue, 0.001)
}

func TestGetStatsServesFromCache(t *testing.T) {
	repo := &mockRepo{products: 10}
	svc := newTestService(t, repo)

	_, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	_, err = svc.GetStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, repo.productCalls)
	require.Equal(t, 1, repo.orderCalls)
	require.Equal(t, 1, repo.lowStockCalls)
	require.Equal(t, 1, repo.valueCalls)
}

func TestInvalidateBumpsVersion(t *testing.T) {
	repo := &mockRepo{products: 10}
	svc := newTestService(t, repo)

	_, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))

	repo.products = 11
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(11), stats.TotalProducts)
	require.Equal(t, 2, repo.productCalls)
}

func TestGetStatsWorksWithoutRedis(t *testing.T) {
	repo := &mockRepo{products: 5}
	svc := NewService(repo, NewCache(nil, time.Minute))

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(5), stats.TotalProducts)
}
