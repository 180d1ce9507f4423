package product

import (
	"context"

	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/product/dto"
)

type UseCase interface {
	AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, name string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	GenerateBill(ctx context.Context, input *dto.BillInput) (*model.Bill, error)
	SalesReport(ctx context.Context) ([]model.SalesReportLine, error)
}
