package supplier

import (
	"context"

	"github.com/fekuna/smart-inventory/internal/model"
)

type Repository interface {
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
}
