package products

import (
	"errors"
	"time"
)

// Stock status labels derived from on-hand quantity and reorder level.
const (
	StatusOutOfStock = "out-of-stock"
	StatusLowStock   = "low-stock"
	StatusCritical   = "critical"
	StatusInStock    = "in-stock"
)

// Product is a catalog entry.
type Product struct {
	ID              int64     `json:"product_id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"product_name"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	SupplierID      *int64    `json:"supplier_id,omitempty"`
	UnitPrice       float64   `json:"unit_price"`
	UnitCost        float64   `json:"unit_cost"`
	ReorderLevel    int64     `json:"reorder_level"`
	ReorderQuantity int64     `json:"reorder_quantity"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductWithStock is a product with its summed on-hand quantity and the
// derived stock status.
type ProductWithStock struct {
	Product
	Quantity int64  `json:"quantity"`
	Status   string `json:"status"`
}

// StockStatus derives the stock label from summed on-hand quantity and the
// product's reorder level. Thresholds: zero is out of stock, below the
// reorder level is low, below 1.5x the reorder level is critical.
func StockStatus(quantity, reorderLevel int64) string {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity < reorderLevel:
		return StatusLowStock
	case float64(quantity) < float64(reorderLevel)*1.5:
		return StatusCritical
	default:
		return StatusInStock
	}
}

// ErrProductNotFound indicates a missing product row.
var ErrProductNotFound = errors.New("product not found")
