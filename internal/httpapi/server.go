// Package httpapi is the local plain-text front end. Every route builds an
// explicit request from the form or JSON body and renders localized text.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fekuna/smart-inventory/internal/forecast"
	"github.com/fekuna/smart-inventory/internal/inventory"
	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/product"
	"github.com/fekuna/smart-inventory/internal/supplier"
)

type Deps struct {
	Products  product.UseCase
	Suppliers supplier.UseCase
	Inventory inventory.UseCase
	Forecasts forecast.UseCase
	Location  *time.Location // Used to print reorder dates
	Logger    logger.ZapLogger
}

type Server struct {
	Router *mux.Router

	products  product.UseCase
	suppliers supplier.UseCase
	inventory inventory.UseCase
	forecasts forecast.UseCase
	loc       *time.Location
	logger    logger.ZapLogger
}

func NewServer(d Deps) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		products:  d.Products,
		suppliers: d.Suppliers,
		inventory: d.Inventory,
		forecasts: d.Forecasts,
		loc:       d.Location,
		logger:    d.Logger,
	}

	s.Router.Use(WithRequestID, WithLogging(s.logger))

	s.Router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.Router.HandleFunc("/products", s.handleAddProduct).Methods(http.MethodPost)
	s.Router.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	s.Router.HandleFunc("/products/low-stock", s.handleLowStock).Methods(http.MethodGet)
	s.Router.HandleFunc("/product", s.handleGetProduct).Methods(http.MethodGet)

	s.Router.HandleFunc("/sales", s.handleProcessSale).Methods(http.MethodPost)
	s.Router.HandleFunc("/forecast", s.handleForecast).Methods(http.MethodGet)
	s.Router.HandleFunc("/reports/sales", s.handleSalesReport).Methods(http.MethodGet)
	s.Router.HandleFunc("/bills", s.handleBill).Methods(http.MethodPost)
	s.Router.HandleFunc("/suppliers", s.handleSuppliers).Methods(http.MethodGet)
	s.Router.HandleFunc("/reorders", s.handleReorders).Methods(http.MethodGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
