package products

// CreateProductRequest is the JSON body for POST /api/products.
type CreateProductRequest struct {
	SKU             string  `json:"sku" validate:"required,max=50"`
	Name            string  `json:"product_name" validate:"required,max=200"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=100"`
	SupplierID      *int64  `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	UnitCost        float64 `json:"unit_cost" validate:"gte=0"`
	ReorderLevel    int64   `json:"reorder_level" validate:"gte=0"`
	ReorderQuantity int64   `json:"reorder_quantity" validate:"gte=0"`
}

// UpdateProductRequest is the JSON body for PUT /api/products/{id}. SKU and
// supplier are immutable after creation.
type UpdateProductRequest struct {
	Name            string  `json:"product_name" validate:"required,max=200"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=100"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	UnitCost        float64 `json:"unit_cost" validate:"gte=0"`
	ReorderLevel    int64   `json:"reorder_level" validate:"gte=0"`
	ReorderQuantity int64   `json:"reorder_quantity" validate:"gte=0"`
}
