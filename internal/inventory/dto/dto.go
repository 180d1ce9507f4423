package dto

type ReorderFilters struct {
	ProductName string // Empty lists every product
	Limit       int
}
