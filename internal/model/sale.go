package model

import "time"

type Sale struct {
	ID        string    `db:"id" json:"id"`
	ProductID string    `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	SaleDate  time.Time `db:"sale_date" json:"sale_date"`
}

type Reorder struct {
	ID          string    `db:"id" json:"id"`
	ProductID   string    `db:"product_id" json:"product_id"`
	ProductName string    `db:"product_name" json:"product_name,omitempty"` // Joined data
	Quantity    int       `db:"quantity" json:"quantity"`
	ReorderDate time.Time `db:"reorder_date" json:"reorder_date"`
}

// SaleResult is the outcome of a committed sale. Reorder is nil when the
// post-sale quantity stayed above the reorder point.
type SaleResult struct {
	Product Product  `json:"product"`
	Sale    Sale     `json:"sale"`
	Reorder *Reorder `json:"reorder,omitempty"`
}

func (r *SaleResult) NewQuantity() int {
	return r.Product.Quantity
}
