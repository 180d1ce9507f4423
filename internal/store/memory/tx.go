package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fekuna/smart-inventory/internal/inventory"
	invdto "github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
)

var errUnknownProduct = errors.New("memory: unknown product id")

// txView works on state the caller has already locked.
type txView struct {
	st *state
}

func (t *txView) WithinTransaction(_ context.Context, fn func(repo inventory.Repository) error) error {
	return fn(t)
}

func (t *txView) LockProductByName(_ context.Context, name string) (*model.Product, error) {
	i := t.st.indexByName(name)
	if i < 0 {
		return nil, nil
	}
	p := copyProduct(t.st.products[i])
	return &p, nil
}

func (t *txView) UpdateQuantity(_ context.Context, productID string, qty int, updatedAt time.Time) error {
	i := t.st.indexByID(productID)
	if i < 0 {
		return errUnknownProduct
	}
	if qty < 0 {
		return fmt.Errorf("memory: quantity %d violates check constraint", qty)
	}
	t.st.products[i].Quantity = qty
	t.st.products[i].UpdatedAt = updatedAt
	return nil
}

func (t *txView) GetReorderPoint(_ context.Context, productID string) (int, error) {
	i := t.st.indexByID(productID)
	if i < 0 {
		return 0, errUnknownProduct
	}
	return t.st.products[i].ReorderPoint, nil
}

func (t *txView) ListLowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range t.st.products {
		if p.IsLowStock() {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (t *txView) CreateSale(_ context.Context, sale *model.Sale) error {
	if t.st.indexByID(sale.ProductID) < 0 {
		return errUnknownProduct
	}
	t.st.sales = append(t.st.sales, *sale)
	return nil
}

func (t *txView) CreateReorder(_ context.Context, reorder *model.Reorder) error {
	if t.st.indexByID(reorder.ProductID) < 0 {
		return errUnknownProduct
	}
	r := *reorder
	r.ProductName = ""
	t.st.reorders = append(t.st.reorders, r)
	return nil
}

func (t *txView) MarkEventProcessed(_ context.Context, eventID, saleID string, _ time.Time) (bool, error) {
	if _, ok := t.st.events[eventID]; ok {
		return false, nil
	}
	t.st.events[eventID] = saleID
	return true, nil
}

func (t *txView) ListReorders(_ context.Context, f *invdto.ReorderFilters) ([]model.Reorder, error) {
	var out []model.Reorder
	for _, r := range t.st.reorders {
		i := t.st.indexByID(r.ProductID)
		if i < 0 {
			continue
		}
		r.ProductName = t.st.products[i].Name
		if f != nil && f.ProductName != "" && r.ProductName != f.ProductName {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ReorderDate.Equal(out[j].ReorderDate) {
			return out[i].ReorderDate.After(out[j].ReorderDate)
		}
		return out[i].ID < out[j].ID
	})
	if f != nil && f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
