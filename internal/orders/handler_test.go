package orders

import (
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

func newTestRouter(repo *memoryRepo) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo, nil))
	r := chi.NewRouter()
	r.Route("/api/orders", handler.MountRoutes)
	return r
}

func TestCreateOrderEndpointReturns201(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	payload := `{"order_type":"outbound","customer_id":7,"warehouse_id":1,"order_date":"2025-06-01","items":[{"product_id":42,"quantity":5,"unit_price":9.99}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, StatusPending, created.Status)
	require.True(t, strings.HasPrefix(created.OrderNumber, "ORD-"))
	require.Equal(t, int64(5), repo.allocations[allocKey(42, 1)])
}

func TestCreateOrderEndpointRejectsBadDate(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	payload := `{"order_type":"outbound","customer_id":7,"warehouse_id":1,"order_date":"June 1st","items":[{"product_id":42,"quantity":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Invalid order_date", body["error"])
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Order not found", body["error"])
}

func TestUpdateStatusEndpointConflictOnBadTransition(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	payload := `{"order_type":"outbound","customer_id":7,"warehouse_id":1,"order_date":"2025-06-01","items":[{"product_id":1,"quantity":1}]}`
	createReq := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(payload))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, createReq)
	require.Equal(t, http.StatusCreated, createRec.Code)
	var created Order
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{"status":"shipped"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{"status":"allocated"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, StatusAllocated, updated.Status)
}
