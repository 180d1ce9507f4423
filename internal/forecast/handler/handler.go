package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fekuna/smart-inventory/internal/forecast"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/presenter"
	"github.com/fekuna/smart-inventory/internal/rpc"
)

const ServiceName = "smartinventory.v1.ForecastService"

type ForecastServiceServer interface {
	PredictDemand(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ForecastServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "PredictDemand", ForecastServiceServer.PredictDemand),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smartinventory/v1/forecast.proto",
}

func RegisterForecastServiceServer(s grpc.ServiceRegistrar, srv ForecastServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type ForecastHandler struct {
	uc     forecast.UseCase
	logger logger.ZapLogger
}

func NewForecastHandler(uc forecast.UseCase, log logger.ZapLogger) *ForecastHandler {
	return &ForecastHandler{uc: uc, logger: log}
}

func (h *ForecastHandler) PredictDemand(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := rpc.RequiredString(req, "product_name")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	f, err := h.uc.PredictDemand(ctx, name)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	points := make([]any, len(f.Points))
	for i, p := range f.Points {
		points[i] = map[string]any{"day": p.Day, "quantity": p.Quantity}
	}
	return rpc.Response(map[string]any{
		"product_name": f.ProductName,
		"slope":        f.Slope,
		"intercept":    f.Intercept,
		"samples":      f.Samples,
		"points":       points,
		"message":      presenter.Forecast(rpc.Locale(ctx), f),
	})
}
