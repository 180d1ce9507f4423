package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/smart-inventory/internal/inventory"
	invdto "github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
	proddto "github.com/fekuna/smart-inventory/internal/product/dto"
)

var day = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T) *Store {
	t.Helper()
	s := New()
	for _, p := range []model.Product{
		{BaseModel: model.BaseModel{ID: "w"}, Name: "Widget", Price: 2, Quantity: 50, ReorderPoint: 10, Supplier: "Acme"},
		{BaseModel: model.BaseModel{ID: "b"}, Name: "Bolt", Price: 0.5, Quantity: 5, ReorderPoint: 5, Supplier: "Bolts Inc"},
		{BaseModel: model.BaseModel{ID: "g"}, Name: "Gear", Price: 9, Quantity: 12, ReorderPoint: 3, Supplier: "Acme"},
	} {
		p := p
		require.NoError(t, s.Create(context.Background(), &p))
	}
	return s
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	s := seed(t)
	err := s.Create(context.Background(), &model.Product{BaseModel: model.BaseModel{ID: "x"}, Name: "Widget"})
	assert.ErrorIs(t, err, model.ErrProductExists)

	unique, err := s.IsNameUnique(context.Background(), "Sprocket")
	require.NoError(t, err)
	assert.True(t, unique)
}

func TestFindByNameReturnsCopy(t *testing.T) {
	s := seed(t)
	p, err := s.FindByName(context.Background(), "Widget")
	require.NoError(t, err)
	p.Quantity = 0

	again, err := s.FindByName(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, 50, again.Quantity)

	missing, err := s.FindByName(context.Background(), "widget")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindAllFiltersSortsAndPages(t *testing.T) {
	s := seed(t)

	all, count, err := s.FindAll(context.Background(), &proddto.ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"Bolt", "Gear", "Widget"}, names(all))

	byPrice, _, err := s.FindAll(context.Background(), &proddto.ProductFilters{SortBy: "price", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gear", "Widget", "Bolt"}, names(byPrice))

	acme, count, err := s.FindAll(context.Background(), &proddto.ProductFilters{Supplier: "Acme", PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"Widget"}, names(acme))

	search, _, err := s.FindAll(context.Background(), &proddto.ProductFilters{SearchQuery: "OL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bolt"}, names(search))
}

func TestWithinTransactionRollsBack(t *testing.T) {
	s := seed(t)
	boom := errors.New("boom")

	err := s.WithinTransaction(context.Background(), func(repo inventory.Repository) error {
		require.NoError(t, repo.UpdateQuantity(context.Background(), "w", 1, day))
		require.NoError(t, repo.CreateSale(context.Background(), &model.Sale{ID: "s1", ProductID: "w", Quantity: 49, SaleDate: day}))
		require.NoError(t, repo.CreateReorder(context.Background(), &model.Reorder{ID: "r1", ProductID: "w", Quantity: 100, ReorderDate: day}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.FindByName(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Quantity)
	assert.Empty(t, s.Sales())
	assert.Empty(t, s.Reorders())
}

func TestWithinTransactionCommits(t *testing.T) {
	s := seed(t)

	err := s.WithinTransaction(context.Background(), func(repo inventory.Repository) error {
		p, err := repo.LockProductByName(context.Background(), "Widget")
		if err != nil {
			return err
		}
		if err := repo.UpdateQuantity(context.Background(), p.ID, p.Quantity-45, day); err != nil {
			return err
		}
		return repo.CreateSale(context.Background(), &model.Sale{ID: "s1", ProductID: p.ID, Quantity: 45, SaleDate: day})
	})
	require.NoError(t, err)

	p, err := s.FindByName(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, day, p.UpdatedAt)
	assert.Len(t, s.Sales(), 1)
}

func TestUpdateQuantityGuards(t *testing.T) {
	s := seed(t)
	assert.Error(t, s.UpdateQuantity(context.Background(), "w", -1, day))
	assert.ErrorIs(t, s.UpdateQuantity(context.Background(), "nope", 1, day), errUnknownProduct)
	assert.ErrorIs(t, s.CreateSale(context.Background(), &model.Sale{ID: "s", ProductID: "nope", Quantity: 1}), errUnknownProduct)

	_, err := s.GetReorderPoint(context.Background(), "nope")
	assert.ErrorIs(t, err, errUnknownProduct)
	point, err := s.GetReorderPoint(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, 5, point)
}

func TestMarkEventProcessed(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	claimed, err := s.MarkEventProcessed(ctx, "evt-1", "s1", day)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = s.MarkEventProcessed(ctx, "evt-1", "s2", day)
	require.NoError(t, err)
	assert.False(t, claimed)

	err = s.WithinTransaction(ctx, func(repo inventory.Repository) error {
		ok, err := repo.MarkEventProcessed(ctx, "evt-2", "s3", day)
		require.NoError(t, err)
		require.True(t, ok)
		return errors.New("boom")
	})
	require.Error(t, err)

	claimed, err = s.MarkEventProcessed(ctx, "evt-2", "s4", day)
	require.NoError(t, err)
	assert.True(t, claimed, "rollback releases the claim")
}

func TestListLowStock(t *testing.T) {
	s := seed(t)
	low, err := s.ListLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bolt"}, names(low))
}

func TestLedgersAndReports(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	require.NoError(t, s.CreateSale(ctx, &model.Sale{ID: "s2", ProductID: "w", Quantity: 3, SaleDate: day.Add(time.Hour)}))
	require.NoError(t, s.CreateSale(ctx, &model.Sale{ID: "s1", ProductID: "w", Quantity: 2, SaleDate: day}))
	require.NoError(t, s.CreateSale(ctx, &model.Sale{ID: "s3", ProductID: "g", Quantity: 1, SaleDate: day}))
	require.NoError(t, s.CreateReorder(ctx, &model.Reorder{ID: "r1", ProductID: "b", Quantity: 100, ReorderDate: day}))
	require.NoError(t, s.CreateReorder(ctx, &model.Reorder{ID: "r2", ProductID: "w", Quantity: 100, ReorderDate: day.Add(time.Hour)}))

	sales, err := s.ListSalesByProductName(ctx, "Widget")
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "s1", sales[0].ID)

	report, err := s.SalesReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.SalesReportLine{
		{ProductName: "Widget", TotalQuantity: 5, TotalRevenue: 10},
		{ProductName: "Gear", TotalQuantity: 1, TotalRevenue: 9},
	}, report)

	reorders, err := s.ListReorders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, reorders, 2)
	assert.Equal(t, "Widget", reorders[0].ProductName)
	assert.Equal(t, "Bolt", reorders[1].ProductName)

	limited, err := s.ListReorders(ctx, &invdto.ReorderFilters{ProductName: "Bolt", Limit: 5})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "r1", limited[0].ID)

	suppliers, err := s.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Supplier{{Name: "Acme", ProductCount: 2}, {Name: "Bolts Inc", ProductCount: 1}}, suppliers)
}

func names(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}
