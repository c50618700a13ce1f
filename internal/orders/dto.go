package orders

// CreateOrderRequest is the JSON body for POST /api/orders. Dates use the
// YYYY-MM-DD format existing clients already send.
type CreateOrderRequest struct {
	OrderNumber string               `json:"order_number" validate:"max=50"`
	OrderType   string               `json:"order_type" validate:"required,oneof=inbound outbound"`
	CustomerID  *int64               `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	SupplierID  *int64               `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	WarehouseID int64                `json:"warehouse_id" validate:"required,gt=0"`
	OrderDate   string               `json:"order_date" validate:"required"`
	Items       []CreateOrderItemReq `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemReq is one requested line item.
type CreateOrderItemReq struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// UpdateStatusRequest is the JSON body for PATCH /api/orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=30"`
}
