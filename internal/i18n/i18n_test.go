package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/smart-inventory/internal/model"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestTranslateEnglishAndIndonesian(t *testing.T) {
	assert.Equal(t, "Product not found in inventory.", T("en", "ProductNotFound", nil))
	assert.Equal(t, "Produk tidak ditemukan di inventaris.", T("id", "ProductNotFound", nil))
	assert.Equal(t, "Produk tidak ditemukan di inventaris.", T("id-ID,id;q=0.9,en;q=0.5", "ProductNotFound", nil))
}

func TestTranslateTemplateData(t *testing.T) {
	got := T("en", "ForecastLine", map[string]any{"Day": 1, "Quantity": "16.00"})
	assert.Equal(t, "Day 1: 16.00 units", got)
}

func TestTranslateFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "Sales Report:", T("ja", "ReportHeader", nil))
	assert.Equal(t, "NoSuchMessage", T("en", "NoSuchMessage", nil))
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{model.ErrProductNotFound, "Product not found in inventory."},
		{fmt.Errorf("%w: available 5, requested 10", model.ErrInsufficientStock), "Not enough stock to complete the sale."},
		{model.ErrNoSalesData, "No sales data available for this product."},
		{model.InvalidInput("quantity must be positive"), "Invalid input: quantity must be positive"},
		{fmt.Errorf("%w: event evt-1", model.ErrDuplicateEvent), "This sale was already recorded."},
		{model.Persistence("insert sale", errors.New("pq: deadlock detected")), "The inventory could not be updated. Please try again."},
		{errors.New("something else"), "The inventory could not be updated. Please try again."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ErrorMessage("en", tc.err))
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "active.fr.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"ReportHeader": "Rapport des ventes :"}`), 0o600))

	require.NoError(t, Load(file))
	assert.Equal(t, "Rapport des ventes :", T("fr", "ReportHeader", nil))
}
