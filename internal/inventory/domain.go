package inventory

import (
	"errors"
	"time"
)

// TransactionType enumerates inventory movement kinds recorded in the ledger.
type TransactionType string

const (
	// TransactionTypeAdjustment indicates a manual stock adjustment.
	TransactionTypeAdjustment TransactionType = "adjustment"
	// TransactionTypeAllocation marks reservations made by outbound orders.
	TransactionTypeAllocation TransactionType = "allocation"
)

// Record models one inventory row keyed by (product, location, lot).
type Record struct {
	ID                int64     `json:"inventory_id"`
	ProductID         int64     `json:"product_id"`
	LocationID        int64     `json:"location_id"`
	WarehouseID       int64     `json:"warehouse_id"`
	LotNumber         string    `json:"lot_number,omitempty"`
	QuantityOnHand    int64     `json:"quantity_on_hand"`
	QuantityAllocated int64     `json:"quantity_allocated"`
	LastMovementDate  time.Time `json:"last_movement_date"`
}

// Transaction is an immutable audit row for every quantity mutation.
type Transaction struct {
	ID             int64
	ProductID      int64
	LocationID     int64
	WarehouseID    int64
	Type           TransactionType
	QuantityChange int64
	QuantityBefore int64
	QuantityAfter  int64
	Reason         string
	PerformedBy    int64
	OccurredAt     time.Time
}

// AdjustmentInput describes a request to adjust on-hand stock.
type AdjustmentInput struct {
	ProductID      int64
	LocationID     int64
	WarehouseID    int64
	LotNumber      string
	QuantityChange int64
	Reason         string
	PerformedBy    int64
}

// StockRow is an inventory record joined with its product, location and
// warehouse for list views.
type StockRow struct {
	Record
	ProductName   string `json:"product_name"`
	SKU           string `json:"sku"`
	LocationCode  string `json:"location_code"`
	WarehouseName string `json:"warehouse_name"`
}

// StockFilter narrows stock listings.
type StockFilter struct {
	WarehouseID int64
	ProductID   int64
}

// ErrNegativeStock triggered when an adjustment would drive quantity below zero
// and the negative-stock guard is enabled.
var ErrNegativeStock = errors.New("inventory: negative stock not allowed")

// ErrInvalidQuantity indicates a zero quantity change.
var ErrInvalidQuantity = errors.New("inventory: quantity change must be non zero")

// ErrRecordNotFound indicates a missing inventory row.
var ErrRecordNotFound = errors.New("inventory record not found")
