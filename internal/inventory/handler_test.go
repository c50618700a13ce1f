package inventory

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

func newTestRouter(repo *memoryRepo, cfg ServiceConfig) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo, nil, cfg))
	r := chi.NewRouter()
	r.Route("/api/inventory", handler.MountRoutes)
	return r
}

func TestAdjustEndpointReturnsNewQuantity(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[key(1, 2, "")] = 4
	router := newTestRouter(repo, ServiceConfig{AllowNegativeStock: true})

	payload := `{"product_id":1,"location_id":2,"warehouse_id":1,"quantity_change":6,"reason":"cycle count","user_id":9}`
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/adjust", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body adjustResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Inventory adjusted successfully", body.Message)
	require.Equal(t, int64(10), body.NewQuantity)
}

func TestAdjustEndpointRejectsMissingProduct(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), ServiceConfig{AllowNegativeStock: true})

	payload := `{"location_id":2,"warehouse_id":1,"quantity_change":6}`
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/adjust", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdjustEndpointRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), ServiceConfig{AllowNegativeStock: true})

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/adjust", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Invalid request body", body["error"])
}

func TestAdjustEndpointReportsNegativeStock(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), ServiceConfig{AllowNegativeStock: false})

	payload := `{"product_id":1,"location_id":2,"warehouse_id":1,"quantity_change":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/adjust", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
