package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/smart-inventory/internal/logger"
	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/store/memory"
)

type failingRepo struct{}

func (failingRepo) ListSuppliers(context.Context) ([]model.Supplier, error) {
	return nil, errors.New("connection refused")
}

func TestListSuppliers(t *testing.T) {
	store := memory.New()
	for i, p := range []model.Product{
		{Name: "Widget", Supplier: "Acme"},
		{Name: "Bolt", Supplier: "Bolts Inc"},
		{Name: "Nut", Supplier: "Acme"},
		{Name: "Loose"},
	} {
		p.ID = string(rune('a' + i))
		require.NoError(t, store.Create(context.Background(), &p))
	}

	suppliers, err := NewSupplierUseCase(store, logger.NewNop()).ListSuppliers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Supplier{
		{Name: "Acme", ProductCount: 2},
		{Name: "Bolts Inc", ProductCount: 1},
	}, suppliers)

	_, err = NewSupplierUseCase(failingRepo{}, logger.NewNop()).ListSuppliers(context.Background())
	assert.ErrorIs(t, err, model.ErrPersistence)
}
