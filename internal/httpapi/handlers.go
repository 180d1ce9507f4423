package httpapi

import (
	"net/http"

	invdto "github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/presenter"
	proddto "github.com/fekuna/smart-inventory/internal/product/dto"
	"github.com/fekuna/smart-inventory/internal/rpc"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	price, err := rpc.Float(f, "price")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	qty, err := rpc.Int(f, "qty")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	point, err := rpc.Int(f, "reorder_point")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	reorderQty, err := rpc.OptionalInt(f, "reorder_quantity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.products.AddProduct(r.Context(), &proddto.CreateProductInput{
		Name:            rpc.String(f, "name"),
		Price:           price,
		Quantity:        qty,
		ReorderPoint:    point,
		ReorderQuantity: reorderQty,
		Supplier:        rpc.String(f, "supplier"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusCreated, presenter.ProductAdded(locale(r), p))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := queryFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := rpc.OptionalInt(q, "page")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pageSize, err := rpc.OptionalInt(q, "page_size")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filters := &proddto.ProductFilters{
		Supplier:    rpc.String(q, "supplier"),
		SearchQuery: rpc.String(q, "search"),
		SortBy:      rpc.String(q, "sort_by"),
		SortOrder:   rpc.String(q, "sort_order"),
	}
	if page != nil {
		filters.Page = *page
	}
	if pageSize != nil {
		filters.PageSize = *pageSize
	}

	products, _, err := s.products.ListProducts(r.Context(), filters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Catalog(locale(r), products))
}

// queryName reads a trimmed product name from the query string.
func queryName(r *http.Request, key string) (string, error) {
	q, err := queryFields(r)
	if err != nil {
		return "", err
	}
	return rpc.RequiredString(q, key)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	name, err := queryName(r, "name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.products.GetProduct(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Product(locale(r), p))
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := s.inventory.ListLowStock(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.LowStock(locale(r), products))
}

func (s *Server) handleProcessSale(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := rpc.RequiredString(f, "product_name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	qty, err := rpc.Int(f, "quantity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.inventory.ProcessSale(r.Context(), &invdto.ProcessSaleInput{
		ProductName:  name,
		QuantitySold: qty,
		Source:       "http",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Sale(locale(r), result))
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	name, err := queryName(r, "product")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := s.forecasts.PredictDemand(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Forecast(locale(r), f))
}

func (s *Server) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.products.SalesReport(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.SalesReport(locale(r), report))
}

func (s *Server) handleBill(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := rpc.RequiredString(f, "product_name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	qty, err := rpc.Int(f, "quantity")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	bill, err := s.products.GenerateBill(r.Context(), &proddto.BillInput{ProductName: name, Quantity: qty})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Bill(locale(r), bill))
}

func (s *Server) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.suppliers.ListSuppliers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Suppliers(locale(r), suppliers))
}

func (s *Server) handleReorders(w http.ResponseWriter, r *http.Request) {
	q, err := queryFields(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := rpc.OptionalInt(q, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filters := &invdto.ReorderFilters{ProductName: rpc.String(q, "product")}
	if limit != nil {
		filters.Limit = *limit
	}

	reorders, err := s.inventory.ListReorders(r.Context(), filters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, presenter.Reorders(locale(r), reorders, s.loc))
}
