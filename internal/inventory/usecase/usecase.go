package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/smart-inventory/config"
	"github.com/fekuna/smart-inventory/internal/forecast"
	"github.com/fekuna/smart-inventory/internal/i18n"
	"github.com/fekuna/smart-inventory/internal/inventory"
	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/notifier"
)

const DefaultReorderQuantity = 100

type Options struct {
	ReorderQuantity int
	ReorderSource   string // config.ReorderSourceProduct or config.ReorderSourceGlobal
	NotifyOnReorder bool
	AlertRecipient  string
	AlertLocale     string
}

type inventoryUseCase struct {
	repo     inventory.Repository
	cache    forecast.Cache
	notifier notifier.Notifier
	opts     Options
	now      func() time.Time
	logger   logger.ZapLogger
}

// NewInventoryUseCase accepts a nil cache when forecasts are not cached.
func NewInventoryUseCase(repo inventory.Repository, cache forecast.Cache, n notifier.Notifier, opts Options, log logger.ZapLogger) inventory.UseCase {
	if opts.ReorderQuantity <= 0 {
		opts.ReorderQuantity = DefaultReorderQuantity
	}
	if n == nil {
		n = notifier.Noop{}
	}
	return &inventoryUseCase{
		repo:     repo,
		cache:    cache,
		notifier: n,
		opts:     opts,
		now:      time.Now,
		logger:   log,
	}
}

func (uc *inventoryUseCase) ProcessSale(ctx context.Context, input *dto.ProcessSaleInput) (*model.SaleResult, error) {
	if input == nil {
		return nil, model.InvalidInput("sale is required")
	}
	if input.QuantitySold <= 0 {
		return nil, model.InvalidInput("quantity sold must be positive, got %d", input.QuantitySold)
	}

	var result *model.SaleResult
	err := uc.repo.WithinTransaction(ctx, func(repo inventory.Repository) error {
		now := uc.now()
		saleID := uuid.New().String()

		if input.EventID != "" {
			claimed, err := repo.MarkEventProcessed(ctx, input.EventID, saleID, now)
			if err != nil {
				return model.Persistence("mark event processed", err)
			}
			if !claimed {
				return fmt.Errorf("%w: event %s", model.ErrDuplicateEvent, input.EventID)
			}
		}

		p, err := repo.LockProductByName(ctx, input.ProductName)
		if err != nil {
			return model.Persistence("lock product", err)
		}
		if p == nil {
			return model.ErrProductNotFound
		}
		if p.Quantity < input.QuantitySold {
			return fmt.Errorf("%w: available %d, requested %d", model.ErrInsufficientStock, p.Quantity, input.QuantitySold)
		}

		newQty := p.Quantity - input.QuantitySold
		if err := repo.UpdateQuantity(ctx, p.ID, newQty, now); err != nil {
			return model.Persistence("update quantity", err)
		}
		p.Quantity = newQty
		p.UpdatedAt = now

		sale := model.Sale{
			ID:        saleID,
			ProductID: p.ID,
			Quantity:  input.QuantitySold,
			SaleDate:  now,
		}
		if err := repo.CreateSale(ctx, &sale); err != nil {
			return model.Persistence("record sale", err)
		}

		point, err := repo.GetReorderPoint(ctx, p.ID)
		if err != nil {
			return model.Persistence("read reorder point", err)
		}
		p.ReorderPoint = point

		result = &model.SaleResult{Product: *p, Sale: sale}
		if newQty > point {
			return nil
		}

		reorder := &model.Reorder{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    uc.reorderQuantity(p),
			ReorderDate: now,
		}
		if err := repo.CreateReorder(ctx, reorder); err != nil {
			return model.Persistence("record reorder", err)
		}
		result.Reorder = reorder
		return nil
	})
	if err != nil {
		err = model.Persistence("process sale", err)
		fields := []zap.Field{
			zap.String("product", input.ProductName),
			zap.Int("quantity", input.QuantitySold),
			zap.String("source", input.Source),
			zap.Error(err),
		}
		if input.EventID != "" {
			fields = append(fields, zap.String("event_id", input.EventID))
		}
		if errors.Is(err, model.ErrPersistence) {
			uc.logger.Error("sale rolled back", fields...)
		} else {
			uc.logger.Info("sale rejected", fields...)
		}
		return nil, err
	}

	uc.logger.Info("sale processed",
		zap.String("product", result.Product.Name),
		zap.String("sale_id", result.Sale.ID),
		zap.Int("quantity", result.Sale.Quantity),
		zap.Int("remaining", result.Product.Quantity),
		zap.String("source", input.Source),
	)

	uc.invalidateForecast(ctx, result.Product.Name)
	if result.Reorder != nil {
		uc.onReorder(ctx, result)
	}
	return result, nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context) ([]model.Product, error) {
	products, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		uc.logger.Error("failed to list low stock", zap.Error(err))
		return nil, model.Persistence("list low stock", err)
	}
	return products, nil
}

func (uc *inventoryUseCase) ListReorders(ctx context.Context, filters *dto.ReorderFilters) ([]model.Reorder, error) {
	if filters == nil {
		filters = &dto.ReorderFilters{}
	}
	reorders, err := uc.repo.ListReorders(ctx, filters)
	if err != nil {
		uc.logger.Error("failed to list reorders", zap.Error(err))
		return nil, model.Persistence("list reorders", err)
	}
	return reorders, nil
}

// reorderQuantity prefers a positive per-product override unless the
// configured source is global.
func (uc *inventoryUseCase) reorderQuantity(p *model.Product) int {
	if uc.opts.ReorderSource != config.ReorderSourceGlobal && p.ReorderQuantity != nil && *p.ReorderQuantity > 0 {
		return *p.ReorderQuantity
	}
	return uc.opts.ReorderQuantity
}

func (uc *inventoryUseCase) invalidateForecast(ctx context.Context, name string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, forecast.CacheKey(name)); err != nil {
		uc.logger.Warn("failed to invalidate forecast cache", zap.String("product", name), zap.Error(err))
	}
}

func (uc *inventoryUseCase) onReorder(ctx context.Context, result *model.SaleResult) {
	p := result.Product
	uc.logger.Info("reorder triggered",
		zap.String("product", p.Name),
		zap.String("reorder_id", result.Reorder.ID),
		zap.Int("quantity", result.Reorder.Quantity),
		zap.Int("remaining", p.Quantity),
		zap.Int("reorder_point", p.ReorderPoint),
	)

	if !uc.opts.NotifyOnReorder {
		return
	}
	subject := i18n.T(uc.opts.AlertLocale, "LowStockAlertSubject", map[string]any{"Name": p.Name})
	body := i18n.T(uc.opts.AlertLocale, "LowStockAlertBody", map[string]any{
		"Name":            p.Name,
		"Quantity":        p.Quantity,
		"ReorderPoint":    p.ReorderPoint,
		"ReorderQuantity": result.Reorder.Quantity,
		"Supplier":        p.Supplier,
	})
	uc.notifier.Notify(ctx, subject, body, uc.opts.AlertRecipient)
}
