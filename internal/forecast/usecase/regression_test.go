package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fekuna/smart-inventory/internal/model"
)

func TestFitLine(t *testing.T) {
	tests := []struct {
		name          string
		xs, ys        []float64
		wantSlope     float64
		wantIntercept float64
	}{
		{"perfect line", []float64{0, 1, 2}, []float64{10, 12, 14}, 2, 10},
		{"flat", []float64{0, 1, 2, 3}, []float64{5, 5, 5, 5}, 0, 5},
		{"decreasing with gap", []float64{0, 4}, []float64{20, 12}, -2, 20},
		{"single day uses mean", []float64{0, 0, 0}, []float64{3, 4, 8}, 0, 5},
		{"single sale", []float64{0}, []float64{7}, 0, 7},
		{"noisy", []float64{0, 1, 2, 3}, []float64{1, 3, 2, 4}, 0.8, 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slope, intercept := fitLine(tt.xs, tt.ys)
			assert.InDelta(t, tt.wantSlope, slope, 1e-9)
			assert.InDelta(t, tt.wantIntercept, intercept, 1e-9)
		})
	}
}

func TestSamples(t *testing.T) {
	day0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	sales := []model.Sale{
		{Quantity: 4, SaleDate: day0},
		{Quantity: 6, SaleDate: day0.Add(3 * time.Hour)},
		{Quantity: 9, SaleDate: day0.AddDate(0, 0, 3)},
	}

	xs, ys := samples(sales, time.UTC)
	assert.Equal(t, []float64{0, 0, 3}, xs, "same-day sales stay separate points")
	assert.Equal(t, []float64{4, 6, 9}, ys)
}

func TestSamples_CrossesDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	sales := []model.Sale{
		{Quantity: 1, SaleDate: time.Date(2024, 3, 9, 23, 0, 0, 0, loc)},
		{Quantity: 1, SaleDate: time.Date(2024, 3, 11, 0, 30, 0, 0, loc)},
	}

	xs, _ := samples(sales, loc)
	assert.Equal(t, []float64{0, 2}, xs)
}

func TestProject(t *testing.T) {
	points := project(2, 10, 2, model.ForecastHorizon)
	if assert.Len(t, points, 7) {
		assert.Equal(t, 1, points[0].Day)
		assert.InDelta(t, 16, points[0].Quantity, 1e-9)
		assert.Equal(t, 7, points[6].Day)
		assert.InDelta(t, 28, points[6].Quantity, 1e-9)
	}

	// Negative predictions are reported as computed.
	points = project(-5, 10, 2, model.ForecastHorizon)
	assert.InDelta(t, -5, points[0].Quantity, 1e-9)
}
