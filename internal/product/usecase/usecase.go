package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/product"
	"github.com/fekuna/smart-inventory/internal/product/dto"
)

type productUseCase struct {
	repo   product.Repository
	now    func() time.Time
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		now:    time.Now,
		logger: log,
	}
}

func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return nil, model.InvalidInput("product name is required")
	case input.Price < 0 || math.IsNaN(input.Price) || math.IsInf(input.Price, 0):
		return nil, model.InvalidInput("price must be a non-negative number")
	case input.Quantity < 0:
		return nil, model.InvalidInput("quantity cannot be negative")
	case input.ReorderPoint < 0:
		return nil, model.InvalidInput("reorder point cannot be negative")
	case input.ReorderQuantity != nil && *input.ReorderQuantity <= 0:
		return nil, model.InvalidInput("reorder quantity must be positive")
	}

	unique, err := uc.repo.IsNameUnique(ctx, name)
	if err != nil {
		return nil, uc.persistence("check product name", err)
	}
	if !unique {
		return nil, model.ErrProductExists
	}

	now := uc.now()
	p := &model.Product{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:            name,
		Price:           input.Price,
		Quantity:        input.Quantity,
		ReorderPoint:    input.ReorderPoint,
		ReorderQuantity: input.ReorderQuantity,
		Supplier:        strings.TrimSpace(input.Supplier),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		if errors.Is(err, model.ErrProductExists) {
			return nil, err
		}
		return nil, uc.persistence("create product", err)
	}

	uc.logger.Info("product added",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int("qty", p.Quantity),
		zap.Int("reorder_point", p.ReorderPoint),
	)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, name string) (*model.Product, error) {
	p, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, uc.persistence("find product", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, uc.persistence("list products", err)
	}
	return products, count, nil
}

func (uc *productUseCase) GenerateBill(ctx context.Context, input *dto.BillInput) (*model.Bill, error) {
	if input.Quantity <= 0 {
		return nil, model.InvalidInput("quantity must be positive")
	}

	p, err := uc.GetProduct(ctx, input.ProductName)
	if err != nil {
		return nil, err
	}

	return &model.Bill{
		ProductName: p.Name,
		Quantity:    input.Quantity,
		UnitPrice:   p.Price,
		Total:       p.Price * float64(input.Quantity),
		IssuedAt:    uc.now(),
	}, nil
}

func (uc *productUseCase) SalesReport(ctx context.Context) ([]model.SalesReportLine, error) {
	lines, err := uc.repo.SalesReport(ctx)
	if err != nil {
		return nil, uc.persistence("sales report", err)
	}
	return lines, nil
}

func (uc *productUseCase) persistence(op string, err error) error {
	uc.logger.Error("catalog store failure", zap.String("op", op), zap.Error(err))
	return model.Persistence(op, err)
}
