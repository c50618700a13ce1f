package products

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	products map[int64]Product
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[int64]Product)}
}

func (r *fakeRepo) ListActive(ctx context.Context) ([]ProductWithStock, error) {
	list := []ProductWithStock{}
	for _, p := range r.products {
		if p.IsActive {
			list = append(list, ProductWithStock{Product: p, Status: StockStatus(0, p.ReorderLevel)})
		}
	}
	return list, nil
}

func (r *fakeRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *fakeRepo) Create(ctx context.Context, product Product) (Product, error) {
	r.nextID++
	product.ID = r.nextID
	product.IsActive = true
	r.products[product.ID] = product
	return product, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, product Product) (Product, error) {
	existing, ok := r.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	existing.Name = product.Name
	r.products[id] = existing
	return existing, nil
}

func (r *fakeRepo) SoftDelete(ctx context.Context, id int64) error {
	p, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.IsActive = false
	r.products[id] = p
	return nil
}

func newTestRouter(repo Repository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo))
	r := chi.NewRouter()
	r.Route("/api/products", handler.MountRoutes)
	return r
}

func TestGetProductNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Product not found", body["error"])
}

func TestCreateProductReturns201(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	payload := `{"sku":"WID-001","product_name":"Widget","unit_price":9.5,"unit_cost":4.2,"reorder_level":10,"reorder_quantity":50}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "WID-001", created.SKU)
	require.True(t, created.IsActive)
}

func TestCreateProductRejectsMissingSKU(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"product_name":"Widget"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	_, err := NewService(repo).Create(context.Background(), Product{SKU: "WID-001", Name: "Widget"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Product deleted successfully", body["message"])

	// The row survives but disappears from active listings.
	stored, ok := repo.products[1]
	require.True(t, ok)
	require.False(t, stored.IsActive)

	listReq := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)
	var list []ProductWithStock
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Empty(t, list)
}
