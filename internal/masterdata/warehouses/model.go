package warehouses

import "time"

type Warehouse struct {
	ID        int64     `json:"warehouse_id"`
	Code      string    `json:"warehouse_code"`
	Name      string    `json:"warehouse_name"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	State     *string   `json:"state,omitempty"`
	Country   *string   `json:"country,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
