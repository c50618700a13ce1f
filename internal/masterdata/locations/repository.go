package locations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Location, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Location, error) {
	rows, err := r.db.Query(ctx, `SELECT l.location_id, l.zone_id, l.location_code, l.is_active, l.created_at,
       z.zone_name, w.warehouse_name,
       i.product_id, p.product_name, i.quantity_on_hand
FROM locations l
JOIN zones z ON l.zone_id = z.zone_id
JOIN warehouses w ON z.warehouse_id = w.warehouse_id
LEFT JOIN inventory i ON l.location_id = i.location_id
LEFT JOIN products p ON i.product_id = p.product_id
WHERE l.is_active = true
ORDER BY w.warehouse_name, z.zone_name, l.location_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Location{}
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.ZoneID, &l.LocationCode, &l.IsActive, &l.CreatedAt,
			&l.ZoneName, &l.WarehouseName, &l.ProductID, &l.ProductName, &l.QuantityOnHand); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
