package inventory

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the inventory module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs inventory handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/adjust", h.handleAdjust)
}

type adjustRequest struct {
	ProductID      int64  `json:"product_id" validate:"required,gt=0"`
	LocationID     int64  `json:"location_id" validate:"required,gt=0"`
	WarehouseID    int64  `json:"warehouse_id" validate:"required,gt=0"`
	LotNumber      string `json:"lot_number" validate:"max=50"`
	QuantityChange int64  `json:"quantity_change" validate:"required"`
	Reason         string `json:"reason" validate:"max=255"`
	UserID         int64  `json:"user_id" validate:"gte=0"`
}

type adjustResponse struct {
	Message     string `json:"message"`
	NewQuantity int64  `json:"new_quantity"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var filter StockFilter
	q := r.URL.Query()
	if v := q.Get("warehouse_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid warehouse_id")
			return
		}
		filter.WarehouseID = id
	}
	if v := q.Get("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid product_id")
			return
		}
		filter.ProductID = id
	}

	stock, err := h.service.ListStock(r.Context(), filter)
	if err != nil {
		h.logger.Error("list stock failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stock)
}

func (h *Handler) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	newQty, err := h.service.Adjust(r.Context(), AdjustmentInput{
		ProductID:      req.ProductID,
		LocationID:     req.LocationID,
		WarehouseID:    req.WarehouseID,
		LotNumber:      req.LotNumber,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		PerformedBy:    req.UserID,
	})
	if err != nil {
		switch err {
		case ErrInvalidQuantity, ErrNegativeStock:
			httpx.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("adjust inventory failed", slog.Any("error", err),
				slog.Int64("product_id", req.ProductID), slog.Int64("location_id", req.LocationID))
			httpx.RespondError(w, err)
		}
		return
	}

	h.logger.Info("inventory adjusted",
		slog.Int64("product_id", req.ProductID),
		slog.Int64("location_id", req.LocationID),
		slog.Int64("quantity_change", req.QuantityChange),
		slog.Int64("new_quantity", newQty))
	httpx.JSON(w, http.StatusOK, adjustResponse{Message: "Inventory adjusted successfully", NewQuantity: newQty})
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return "Invalid field: " + errs[0].Field()
	}
	return "Validation failed"
}
