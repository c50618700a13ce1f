package orders

import (
	"errors"
	"time"
)

// OrderType distinguishes receiving from shipping orders.
type OrderType string

const (
	// OrderTypeInbound receives stock from a supplier.
	OrderTypeInbound OrderType = "inbound"
	// OrderTypeOutbound ships stock to a customer.
	OrderTypeOutbound OrderType = "outbound"
)

// Status is the order lifecycle state. The wire values match what existing
// consumers of the API already send and store.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAllocated Status = "allocated"
	StatusPicked    Status = "picked"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusAllocated, StatusCancelled},
	StatusAllocated: {StatusPicked, StatusCancelled},
	StatusPicked:    {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the order header.
type Order struct {
	ID          int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OrderType   OrderType `json:"order_type"`
	CustomerID  *int64    `json:"customer_id,omitempty"`
	SupplierID  *int64    `json:"supplier_id,omitempty"`
	WarehouseID int64     `json:"warehouse_id"`
	OrderDate   time.Time `json:"order_date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is an order line, created atomically with its parent order.
type Item struct {
	ID              int64   `json:"order_item_id"`
	OrderID         int64   `json:"order_id"`
	ProductID       int64   `json:"product_id"`
	QuantityOrdered int64   `json:"quantity_ordered"`
	UnitPrice       float64 `json:"unit_price"`
	ProductName     string  `json:"product_name,omitempty"`
	SKU             string  `json:"sku,omitempty"`
}

// OrderDetail is an order header with partner names and its items.
type OrderDetail struct {
	Order
	CustomerName *string `json:"customer_name,omitempty"`
	SupplierName *string `json:"supplier_name,omitempty"`
	Items        []Item  `json:"items"`
}

// OrderSummary is the list-view row: header plus partner name and item totals.
type OrderSummary struct {
	Order
	PartnerName *string `json:"partner_name"`
	ItemCount   int64   `json:"item_count"`
	TotalAmount float64 `json:"total_amount"`
}

// ListFilter narrows order listings.
type ListFilter struct {
	Type   string
	Status string
}

// CreateOrderInput describes a validated order-creation request.
type CreateOrderInput struct {
	OrderNumber string
	OrderType   OrderType
	CustomerID  *int64
	SupplierID  *int64
	WarehouseID int64
	OrderDate   time.Time
	Items       []ItemInput
	CreatedBy   int64
}

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice float64
}

var (
	// ErrOrderNotFound indicates a missing order row.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoItems rejects orders without line items.
	ErrNoItems = errors.New("orders: at least one item required")
	// ErrPartner rejects orders without exactly one counterparty.
	ErrPartner = errors.New("orders: exactly one of customer or supplier required")
	// ErrInvalidType rejects unknown order types.
	ErrInvalidType = errors.New("orders: order type must be inbound or outbound")
	// ErrUnknownStatus rejects status values outside the lifecycle vocabulary.
	ErrUnknownStatus = errors.New("orders: unknown status")
	// ErrInvalidTransition rejects disallowed lifecycle moves.
	ErrInvalidTransition = errors.New("orders: invalid status transition")
)
