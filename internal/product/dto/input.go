package dto

type CreateProductInput struct {
	Name            string
	Price           float64
	Quantity        int
	ReorderPoint    int
	ReorderQuantity *int // Optional per-product override
	Supplier        string
}

type BillInput struct {
	ProductName string
	Quantity    int
}
