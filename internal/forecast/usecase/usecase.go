package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/floats"

	"github.com/fekuna/smart-inventory/internal/forecast"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
)

type Options struct {
	Location *time.Location // Calendar used to bucket sale dates; nil means time.Local
	CacheTTL time.Duration
}

type forecastUseCase struct {
	repo   forecast.Repository
	cache  forecast.Cache
	group  singleflight.Group
	loc    *time.Location
	ttl    time.Duration
	logger logger.ZapLogger
}

// NewForecastUseCase accepts a nil cache, in which case every request computes.
func NewForecastUseCase(repo forecast.Repository, cache forecast.Cache, opts Options, log logger.ZapLogger) forecast.UseCase {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &forecastUseCase{
		repo:   repo,
		cache:  cache,
		loc:    loc,
		ttl:    opts.CacheTTL,
		logger: log,
	}
}

func (uc *forecastUseCase) PredictDemand(ctx context.Context, productName string) (*model.Forecast, error) {
	key := forecast.CacheKey(productName)

	if uc.cache != nil {
		var cached model.Forecast
		hit, err := uc.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			uc.logger.Warn("forecast cache read failed", zap.String("product", productName), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	// One computation serves every collapsed caller; it ignores the first
	// caller's cancellation.
	detached := context.WithoutCancel(ctx)
	v, err, _ := uc.group.Do(productName, func() (interface{}, error) {
		f, err := uc.compute(detached, productName)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil {
			if err := uc.cache.SetJSON(detached, key, f, uc.ttl); err != nil {
				uc.logger.Warn("forecast cache write failed", zap.String("product", productName), zap.Error(err))
			}
		}
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	f := v.(*model.Forecast)

	// Shared results are handed to several callers.
	out := *f
	out.Points = append([]model.ForecastPoint(nil), f.Points...)
	return &out, nil
}

func (uc *forecastUseCase) compute(ctx context.Context, productName string) (*model.Forecast, error) {
	p, err := uc.repo.FindProductByName(ctx, productName)
	if err != nil {
		uc.logger.Error("failed to load product for forecast", zap.String("product", productName), zap.Error(err))
		return nil, model.Persistence("find product", err)
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}

	sales, err := uc.repo.ListSalesByProductName(ctx, productName)
	if err != nil {
		uc.logger.Error("failed to load sales for forecast", zap.String("product", productName), zap.Error(err))
		return nil, model.Persistence("list sales", err)
	}
	if len(sales) == 0 {
		return nil, model.ErrNoSalesData
	}

	xs, ys := samples(sales, uc.loc)
	slope, intercept := fitLine(xs, ys)

	uc.logger.Debug("forecast computed",
		zap.String("product", productName),
		zap.Int("samples", len(xs)),
		zap.Float64("slope", slope),
		zap.Float64("intercept", intercept),
	)

	return &model.Forecast{
		ProductName: p.Name,
		Slope:       slope,
		Intercept:   intercept,
		Samples:     len(xs),
		Points:      project(slope, intercept, floats.Max(xs), model.ForecastHorizon),
	}, nil
}
