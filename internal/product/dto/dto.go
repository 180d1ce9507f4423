package dto

type ProductFilters struct {
	Supplier    string
	SearchQuery string // For name search
	SortBy      string // name, price, qty
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
