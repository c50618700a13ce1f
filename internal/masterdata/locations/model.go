package locations

import "time"

// Location is a storage slot within a warehouse zone, listed together with
// whatever product currently occupies it.
type Location struct {
	ID             int64     `json:"location_id"`
	ZoneID         int64     `json:"zone_id"`
	LocationCode   string    `json:"location_code"`
	IsActive       bool      `json:"is_active"`
	ZoneName       string    `json:"zone_name"`
	WarehouseName  string    `json:"warehouse_name"`
	ProductID      *int64    `json:"product_id,omitempty"`
	ProductName    *string   `json:"product_name,omitempty"`
	QuantityOnHand *int64    `json:"quantity_on_hand,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
