package forecast

import (
	"context"

	"github.com/fekuna/smart-inventory/internal/model"
)

type UseCase interface {
	PredictDemand(ctx context.Context, productName string) (*model.Forecast, error)
}
