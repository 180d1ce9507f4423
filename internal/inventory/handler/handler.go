package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fekuna/smart-inventory/internal/inventory"
	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/presenter"
	"github.com/fekuna/smart-inventory/internal/rpc"
)

const ServiceName = "smartinventory.v1.InventoryService"

type InventoryServiceServer interface {
	ProcessSale(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListLowStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListReorders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ProcessSale", InventoryServiceServer.ProcessSale),
		rpc.Unary(ServiceName, "ListLowStock", InventoryServiceServer.ListLowStock),
		rpc.Unary(ServiceName, "ListReorders", InventoryServiceServer.ListReorders),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smartinventory/v1/inventory.proto",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var _ InventoryServiceServer = (*InventoryHandler)(nil)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) ProcessSale(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := rpc.RequiredString(req, "product_name")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}
	qty, err := rpc.Int(req, "quantity")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	result, err := h.uc.ProcessSale(ctx, &dto.ProcessSaleInput{
		ProductName:  name,
		QuantitySold: qty,
		Source:       "grpc",
	})
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	var reorder any
	if result.Reorder != nil {
		reorder = rpc.ReorderFields(result.Reorder)
	}
	return rpc.Response(map[string]any{
		"sale_id":       result.Sale.ID,
		"product_name":  result.Product.Name,
		"quantity_sold": result.Sale.Quantity,
		"remaining":     result.NewQuantity(),
		"sale_date":     rpc.Timestamp(result.Sale.SaleDate),
		"reorder":       reorder,
		"message":       presenter.Sale(rpc.Locale(ctx), result),
	})
}

func (h *InventoryHandler) ListLowStock(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	products, err := h.uc.ListLowStock(ctx)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	return rpc.Response(map[string]any{
		"products": rpc.ProductList(products),
		"message":  presenter.LowStock(rpc.Locale(ctx), products),
	})
}

func (h *InventoryHandler) ListReorders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := rpc.OptionalInt(req, "limit")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}
	filters := &dto.ReorderFilters{ProductName: rpc.String(req, "product_name")}
	if limit != nil {
		filters.Limit = *limit
	}

	reorders, err := h.uc.ListReorders(ctx, filters)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	out := make([]any, len(reorders))
	for i := range reorders {
		out[i] = rpc.ReorderFields(&reorders[i])
	}
	return rpc.Response(map[string]any{
		"reorders": out,
		"message":  presenter.Reorders(rpc.Locale(ctx), reorders, nil),
	})
}
