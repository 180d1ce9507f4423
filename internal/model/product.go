package model

import "time"

type Product struct {
	BaseModel
	Name            string  `db:"name" json:"name"`
	Price           float64 `db:"price" json:"price"`
	Quantity        int     `db:"qty" json:"qty"`
	ReorderPoint    int     `db:"reorder_point" json:"reorder_point"`
	ReorderQuantity *int    `db:"reorder_quantity" json:"reorder_quantity"` // Nullable, per-product override
	Supplier        string  `db:"supplier" json:"supplier"`
}

// IsLowStock reports whether the product sits at or below its reorder point.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderPoint
}

type Supplier struct {
	Name         string `db:"supplier" json:"name"`
	ProductCount int    `db:"product_count" json:"product_count"`
}

// Bill is a price quote for a quantity of one product. Nothing is recorded.
type Bill struct {
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Total       float64   `json:"total"`
	IssuedAt    time.Time `json:"issued_at"`
}

type SalesReportLine struct {
	ProductName   string  `db:"name" json:"product_name"`
	TotalQuantity int     `db:"total_qty" json:"total_qty"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
}
