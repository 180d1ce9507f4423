package inventory

import (
	"context"
	"time"

	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
)

type Repository interface {
	// Stock
	LockProductByName(ctx context.Context, name string) (*model.Product, error)
	UpdateQuantity(ctx context.Context, productID string, qty int, updatedAt time.Time) error
	GetReorderPoint(ctx context.Context, productID string) (int, error)
	ListLowStock(ctx context.Context) ([]model.Product, error)

	// Ledgers
	CreateSale(ctx context.Context, sale *model.Sale) error
	CreateReorder(ctx context.Context, reorder *model.Reorder) error
	ListReorders(ctx context.Context, filters *dto.ReorderFilters) ([]model.Reorder, error)

	// MarkEventProcessed claims eventID for saleID. It reports false when the
	// event was already claimed.
	MarkEventProcessed(ctx context.Context, eventID, saleID string, at time.Time) (bool, error)

	// WithinTransaction runs fn against a repository bound to one
	// transaction. A non-nil error from fn rolls everything back.
	WithinTransaction(ctx context.Context, fn func(repo Repository) error) error
}
