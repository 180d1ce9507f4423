package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/supplier"
)

type supplierUseCase struct {
	repo   supplier.Repository
	logger logger.ZapLogger
}

func NewSupplierUseCase(repo supplier.Repository, log logger.ZapLogger) supplier.UseCase {
	return &supplierUseCase{repo: repo, logger: log}
}

func (uc *supplierUseCase) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := uc.repo.ListSuppliers(ctx)
	if err != nil {
		uc.logger.Error("failed to list suppliers", zap.Error(err))
		return nil, model.Persistence("list suppliers", err)
	}
	return suppliers, nil
}
