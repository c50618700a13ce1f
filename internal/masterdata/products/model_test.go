package products

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	cases := []struct {
		name         string
		quantity     int64
		reorderLevel int64
		want         string
	}{
		{"zero quantity", 0, 10, StatusOutOfStock},
		{"zero quantity zero reorder", 0, 0, StatusOutOfStock},
		{"below reorder level", 9, 10, StatusLowStock},
		{"one unit", 1, 10, StatusLowStock},
		{"at reorder level", 10, 10, StatusCritical},
		{"just under critical ceiling", 14, 10, StatusCritical},
		{"at critical ceiling", 15, 10, StatusInStock},
		{"well stocked", 100, 10, StatusInStock},
		{"no reorder level set", 5, 0, StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StockStatus(tc.quantity, tc.reorderLevel))
		})
	}
}
