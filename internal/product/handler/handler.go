package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/presenter"
	"github.com/fekuna/smart-inventory/internal/product"
	"github.com/fekuna/smart-inventory/internal/product/dto"
	"github.com/fekuna/smart-inventory/internal/rpc"
	"github.com/fekuna/smart-inventory/internal/supplier"
)

const ServiceName = "smartinventory.v1.ProductService"

type ProductServiceServer interface {
	AddProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GenerateBill(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SalesReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListSuppliers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "AddProduct", ProductServiceServer.AddProduct),
		rpc.Unary(ServiceName, "GetProduct", ProductServiceServer.GetProduct),
		rpc.Unary(ServiceName, "ListProducts", ProductServiceServer.ListProducts),
		rpc.Unary(ServiceName, "GenerateBill", ProductServiceServer.GenerateBill),
		rpc.Unary(ServiceName, "SalesReport", ProductServiceServer.SalesReport),
		rpc.Unary(ServiceName, "ListSuppliers", ProductServiceServer.ListSuppliers),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smartinventory/v1/product.proto",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var _ ProductServiceServer = (*ProductHandler)(nil)

type ProductHandler struct {
	uc        product.UseCase
	suppliers supplier.UseCase
	logger    logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, suppliers supplier.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:        uc,
		suppliers: suppliers,
		logger:    log,
	}
}

func (h *ProductHandler) AddProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := createProductInput(req)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	p, err := h.uc.AddProduct(ctx, input)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	return rpc.Response(map[string]any{
		"product": rpc.ProductFields(p),
		"message": presenter.ProductAdded(rpc.Locale(ctx), p),
	})
}

func createProductInput(req *structpb.Struct) (*dto.CreateProductInput, error) {
	price, err := rpc.Float(req, "price")
	if err != nil {
		return nil, err
	}
	qty, err := rpc.Int(req, "qty")
	if err != nil {
		return nil, err
	}
	point, err := rpc.Int(req, "reorder_point")
	if err != nil {
		return nil, err
	}
	reorderQty, err := rpc.OptionalInt(req, "reorder_quantity")
	if err != nil {
		return nil, err
	}
	return &dto.CreateProductInput{
		Name:            rpc.String(req, "name"),
		Price:           price,
		Quantity:        qty,
		ReorderPoint:    point,
		ReorderQuantity: reorderQty,
		Supplier:        rpc.String(req, "supplier"),
	}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := rpc.RequiredString(req, "name")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	p, err := h.uc.GetProduct(ctx, name)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	return rpc.Response(map[string]any{
		"product": rpc.ProductFields(p),
		"message": presenter.Product(rpc.Locale(ctx), p),
	})
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, err := rpc.OptionalInt(req, "page")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}
	pageSize, err := rpc.OptionalInt(req, "page_size")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	filters := &dto.ProductFilters{
		Supplier:    rpc.String(req, "supplier"),
		SearchQuery: rpc.String(req, "search"),
		SortBy:      rpc.String(req, "sort_by"),
		SortOrder:   rpc.String(req, "sort_order"),
	}
	if page != nil {
		filters.Page = *page
	}
	if pageSize != nil {
		filters.PageSize = *pageSize
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	return rpc.Response(map[string]any{
		"products": rpc.ProductList(products),
		"total":    count,
		"message":  presenter.Catalog(rpc.Locale(ctx), products),
	})
}

func (h *ProductHandler) GenerateBill(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := rpc.RequiredString(req, "product_name")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}
	qty, err := rpc.Int(req, "quantity")
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	bill, err := h.uc.GenerateBill(ctx, &dto.BillInput{ProductName: name, Quantity: qty})
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	return rpc.Response(map[string]any{
		"product_name": bill.ProductName,
		"quantity":     bill.Quantity,
		"unit_price":   bill.UnitPrice,
		"total":        bill.Total,
		"issued_at":    rpc.Timestamp(bill.IssuedAt),
		"message":      presenter.Bill(rpc.Locale(ctx), bill),
	})
}

func (h *ProductHandler) SalesReport(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	report, err := h.uc.SalesReport(ctx)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	lines := make([]any, len(report))
	for i, l := range report {
		lines[i] = map[string]any{
			"product_name":  l.ProductName,
			"total_qty":     l.TotalQuantity,
			"total_revenue": l.TotalRevenue,
		}
	}
	return rpc.Response(map[string]any{
		"lines":   lines,
		"message": presenter.SalesReport(rpc.Locale(ctx), report),
	})
}

func (h *ProductHandler) ListSuppliers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	suppliers, err := h.suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, rpc.Error(ctx, err)
	}

	out := make([]any, len(suppliers))
	for i, s := range suppliers {
		out[i] = map[string]any{"name": s.Name, "product_count": s.ProductCount}
	}
	return rpc.Response(map[string]any{
		"suppliers": out,
		"message":   presenter.Suppliers(rpc.Locale(ctx), suppliers),
	})
}
