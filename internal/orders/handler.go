package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the orders module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs orders handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Patch("/{id}/status", h.handleUpdateStatus)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}
	summaries, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			httpx.Error(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("get order failed", slog.Any("error", err), slog.Int64("order_id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	orderDate, err := time.Parse("2006-01-02", req.OrderDate)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid order_date")
		return
	}

	items := make([]ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ItemInput{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}

	created, err := h.service.Create(r.Context(), CreateOrderInput{
		OrderNumber: req.OrderNumber,
		OrderType:   OrderType(req.OrderType),
		CustomerID:  req.CustomerID,
		SupplierID:  req.SupplierID,
		WarehouseID: req.WarehouseID,
		OrderDate:   orderDate,
		Items:       items,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoItems), errors.Is(err, ErrPartner), errors.Is(err, ErrInvalidType):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("create order failed", slog.Any("error", err), slog.String("order_number", req.OrderNumber))
			httpx.RespondError(w, err)
		}
		return
	}

	h.logger.Info("order created",
		slog.Int64("order_id", created.ID),
		slog.String("order_number", created.OrderNumber),
		slog.String("order_type", string(created.OrderType)))
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status), 0)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			httpx.Error(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, ErrUnknownStatus):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			httpx.Error(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("update order status failed", slog.Any("error", err), slog.Int64("order_id", id))
			httpx.RespondError(w, err)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return "Invalid field: " + errs[0].Field()
	}
	return "Validation failed"
}
