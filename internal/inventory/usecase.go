package inventory

import (
	"context"

	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
)

type UseCase interface {
	ProcessSale(ctx context.Context, input *dto.ProcessSaleInput) (*model.SaleResult, error)
	ListLowStock(ctx context.Context) ([]model.Product, error)
	ListReorders(ctx context.Context, filters *dto.ReorderFilters) ([]model.Reorder, error)
}
