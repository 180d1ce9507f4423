package rpc

import (
	"time"

	"github.com/fekuna/smart-inventory/internal/model"
)

// Timestamp formats t the way every response field carries time.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func ProductFields(p *model.Product) map[string]any {
	var reorderQty any
	if p.ReorderQuantity != nil {
		reorderQty = *p.ReorderQuantity
	}
	return map[string]any{
		"id":               p.ID,
		"name":             p.Name,
		"price":            p.Price,
		"qty":              p.Quantity,
		"reorder_point":    p.ReorderPoint,
		"reorder_quantity": reorderQty,
		"supplier":         p.Supplier,
		"low_stock":        p.IsLowStock(),
		"created_at":       Timestamp(p.CreatedAt),
		"updated_at":       Timestamp(p.UpdatedAt),
	}
}

func ProductList(products []model.Product) []any {
	out := make([]any, len(products))
	for i := range products {
		out[i] = ProductFields(&products[i])
	}
	return out
}

func ReorderFields(r *model.Reorder) map[string]any {
	return map[string]any{
		"id":           r.ID,
		"product_id":   r.ProductID,
		"product_name": r.ProductName,
		"quantity":     r.Quantity,
		"reorder_date": Timestamp(r.ReorderDate),
	}
}
