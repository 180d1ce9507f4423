package product

import (
	"context"

	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByName(ctx context.Context, name string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// Names are the lookup key for sales and forecasts
	IsNameUnique(ctx context.Context, name string) (bool, error)

	SalesReport(ctx context.Context) ([]model.SalesReportLine, error)
}
