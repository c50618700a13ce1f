package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wareflow/wareflow/internal/dashboard"
	"github.com/wareflow/wareflow/internal/inventory"
	"github.com/wareflow/wareflow/internal/masterdata/locations"
	"github.com/wareflow/wareflow/internal/masterdata/products"
	"github.com/wareflow/wareflow/internal/masterdata/warehouses"
	"github.com/wareflow/wareflow/internal/observability"
	"github.com/wareflow/wareflow/internal/orders"
	"github.com/wareflow/wareflow/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	ProductHandler   *products.Handler
	OrderHandler     *orders.Handler
	InventoryHandler *inventory.Handler
	DashboardHandler *dashboard.Handler
	LocationHandler  *locations.Handler
	WarehouseHandler *warehouses.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router for the warehouse API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","message":"Warehouse Management API is running"}`))
	})

	if params.ProductHandler != nil {
		r.Route("/api/products", params.ProductHandler.MountRoutes)
	}
	if params.OrderHandler != nil {
		r.Route("/api/orders", params.OrderHandler.MountRoutes)
	}
	if params.InventoryHandler != nil {
		r.Route("/api/inventory", params.InventoryHandler.MountRoutes)
	}
	if params.DashboardHandler != nil {
		r.Route("/api/dashboard", params.DashboardHandler.MountRoutes)
	}
	if params.LocationHandler != nil {
		r.Route("/api/locations", params.LocationHandler.MountRoutes)
	}
	if params.WarehouseHandler != nil {
		r.Route("/api/warehouses", params.WarehouseHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/api/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
