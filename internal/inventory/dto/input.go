package dto

type ProcessSaleInput struct {
	ProductName  string
	QuantitySold int
	Source       string // "http", "grpc", "kafka"
	EventID      string // Feed event id; a repeated id is rejected
}
