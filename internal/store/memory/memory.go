// Package memory keeps the catalog and both ledgers in process. It backs
// STORE_DRIVER=memory and the tests; transactions are serialized on one lock
// and rolled back by restoring a snapshot.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/smart-inventory/internal/forecast"
	"github.com/fekuna/smart-inventory/internal/inventory"
	invdto "github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/product"
	proddto "github.com/fekuna/smart-inventory/internal/product/dto"
	"github.com/fekuna/smart-inventory/internal/supplier"
)

var (
	_ product.Repository   = (*Store)(nil)
	_ supplier.Repository  = (*Store)(nil)
	_ inventory.Repository = (*Store)(nil)
	_ forecast.Repository  = (*Store)(nil)
)

type state struct {
	products []model.Product
	sales    []model.Sale
	reorders []model.Reorder
	events   map[string]string // event id -> sale id
}

func (s *state) clone() *state {
	c := &state{
		products: make([]model.Product, len(s.products)),
		sales:    append([]model.Sale(nil), s.sales...),
		reorders: append([]model.Reorder(nil), s.reorders...),
		events:   make(map[string]string, len(s.events)),
	}
	for id, sale := range s.events {
		c.events[id] = sale
	}
	for i, p := range s.products {
		c.products[i] = copyProduct(p)
	}
	return c
}

func (s *state) indexByName(name string) int {
	for i := range s.products {
		if s.products[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *state) indexByID(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: &state{events: map[string]string{}}}
}

func copyProduct(p model.Product) model.Product {
	if p.ReorderQuantity != nil {
		q := *p.ReorderQuantity
		p.ReorderQuantity = &q
	}
	return p
}

// Catalog

func (s *Store) Create(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.indexByName(p.Name) >= 0 {
		return model.ErrProductExists
	}
	s.st.products = append(s.st.products, copyProduct(*p))
	return nil
}

func (s *Store) FindByName(ctx context.Context, name string) (*model.Product, error) {
	return s.FindProductByName(ctx, name)
}

func (s *Store) FindProductByName(_ context.Context, name string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.st.indexByName(name)
	if i < 0 {
		return nil, nil
	}
	p := copyProduct(s.st.products[i])
	return &p, nil
}

func (s *Store) FindAll(_ context.Context, f *proddto.ProductFilters) ([]model.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Product
	search := strings.ToLower(f.SearchQuery)
	for _, p := range s.st.products {
		if f.Supplier != "" && p.Supplier != f.Supplier {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, copyProduct(p))
	}

	desc := strings.ToLower(f.SortOrder) == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less, equal bool
		switch f.SortBy {
		case "price":
			less, equal = a.Price < b.Price, a.Price == b.Price
		case "qty":
			less, equal = a.Quantity < b.Quantity, a.Quantity == b.Quantity
		default:
			less, equal = a.Name < b.Name, a.Name == b.Name
		}
		if equal {
			return false
		}
		if desc {
			return !less
		}
		return less
	})

	count := len(out)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.PageSize
		if start > len(out) {
			start = len(out)
		}
		end := start + f.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, count, nil
}

func (s *Store) IsNameUnique(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.indexByName(name) < 0, nil
}

func (s *Store) SalesReport(_ context.Context) ([]model.SalesReportLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := map[string]*model.SalesReportLine{}
	var order []string
	for _, sale := range s.st.sales {
		i := s.st.indexByID(sale.ProductID)
		if i < 0 {
			continue
		}
		p := s.st.products[i]
		l, ok := lines[p.Name]
		if !ok {
			l = &model.SalesReportLine{ProductName: p.Name}
			lines[p.Name] = l
			order = append(order, p.Name)
		}
		l.TotalQuantity += sale.Quantity
		l.TotalRevenue += float64(sale.Quantity) * p.Price
	}

	out := make([]model.SalesReportLine, 0, len(order))
	for _, name := range order {
		out = append(out, *lines[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out, nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]model.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int{}
	for _, p := range s.st.products {
		if p.Supplier != "" {
			counts[p.Supplier]++
		}
	}
	out := make([]model.Supplier, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.Supplier{Name: name, ProductCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Sales

func (s *Store) ListSalesByProductName(_ context.Context, name string) ([]model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.indexByName(name)
	if i < 0 {
		return nil, nil
	}
	id := s.st.products[i].ID
	var out []model.Sale
	for _, sale := range s.st.sales {
		if sale.ProductID == id {
			out = append(out, sale)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.Before(out[j].SaleDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Stock and ledgers. Outside a transaction each call stands alone.

func (s *Store) WithinTransaction(ctx context.Context, fn func(repo inventory.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&txView{st: s.st}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) LockProductByName(ctx context.Context, name string) (*model.Product, error) {
	return s.FindProductByName(ctx, name)
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).UpdateQuantity(ctx, productID, qty, updatedAt)
}

func (s *Store) GetReorderPoint(ctx context.Context, productID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).GetReorderPoint(ctx, productID)
}

func (s *Store) ListLowStock(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).ListLowStock(ctx)
}

func (s *Store) CreateSale(ctx context.Context, sale *model.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).CreateSale(ctx, sale)
}

func (s *Store) CreateReorder(ctx context.Context, reorder *model.Reorder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).CreateReorder(ctx, reorder)
}

func (s *Store) ListReorders(ctx context.Context, f *invdto.ReorderFilters) ([]model.Reorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).ListReorders(ctx, f)
}

func (s *Store) MarkEventProcessed(ctx context.Context, eventID, saleID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txView{st: s.st}).MarkEventProcessed(ctx, eventID, saleID, at)
}

// Sales returns a copy of the sale ledger.
func (s *Store) Sales() []model.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Sale(nil), s.st.sales...)
}

// Reorders returns a copy of the reorder ledger.
func (s *Store) Reorders() []model.Reorder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reorder(nil), s.st.reorders...)
}
