package forecast

import (
	"context"

	"github.com/fekuna/smart-inventory/internal/model"
)

type Repository interface {
	FindProductByName(ctx context.Context, name string) (*model.Product, error)

	// Sales come back in sale_date order
	ListSalesByProductName(ctx context.Context, name string) ([]model.Sale, error)
}
