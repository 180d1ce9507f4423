package usecase

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fekuna/smart-inventory/internal/model"
)

const day = 24 * time.Hour

// samples turns each sale into one (x, y) point where x counts calendar days
// in loc since the earliest sale. Sales on the same day stay separate points.
func samples(sales []model.Sale, loc *time.Location) (xs, ys []float64) {
	dates := make([]time.Time, len(sales))
	var first time.Time
	for i, s := range sales {
		t := s.SaleDate.In(loc)
		dates[i] = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if i == 0 || dates[i].Before(first) {
			first = dates[i]
		}
	}

	xs = make([]float64, len(sales))
	ys = make([]float64, len(sales))
	for i, s := range sales {
		xs[i] = float64(dates[i].Sub(first) / day)
		ys[i] = float64(s.Quantity)
	}
	return xs, ys
}

// fitLine is ordinary least squares with an intercept. With every x equal
// the slope is undetermined; the minimum-norm answer is a flat line at mean(y).
func fitLine(xs, ys []float64) (slope, intercept float64) {
	if floats.Min(xs) == floats.Max(xs) {
		return 0, stat.Mean(ys, nil)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta, alpha
}

// project evaluates the line on the horizon days following lastX.
func project(slope, intercept, lastX float64, horizon int) []model.ForecastPoint {
	points := make([]model.ForecastPoint, horizon)
	for i := 1; i <= horizon; i++ {
		points[i-1] = model.ForecastPoint{
			Day:      i,
			Quantity: intercept + slope*(lastX+float64(i)),
		}
	}
	return points
}
