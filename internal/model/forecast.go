package model

// ForecastHorizon is the number of days predicted past the last observed sale.
const ForecastHorizon = 7

type ForecastPoint struct {
	Day      int     `json:"day"`
	Quantity float64 `json:"quantity"`
}

type Forecast struct {
	ProductName string          `json:"product_name"`
	Slope       float64         `json:"slope"`
	Intercept   float64         `json:"intercept"`
	Samples     int             `json:"samples"`
	Points      []ForecastPoint `json:"points"`
}
