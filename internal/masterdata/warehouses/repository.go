package warehouses

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Warehouse, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Warehouse, error) {
	rows, err := r.db.Query(ctx, `SELECT warehouse_id, warehouse_code, warehouse_name, address, city, state, country, is_active, created_at
FROM warehouses
WHERE is_active = true
ORDER BY warehouse_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Warehouse{}
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.City, &w.State, &w.Country, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
