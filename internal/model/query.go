package model

type SortBy string

const (
	SortByName  SortBy = "name"
	SortByPrice SortBy = "price"
	SortByStock SortBy = "stock"
)

func (s SortBy) IsValid() bool {
	return s == SortByName || s == SortByPrice || s == SortByStock
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

type ProductQuery struct {
	Category   Category  `json:"category"`
	SearchText string    `json:"searchText"`
	SortBy     SortBy    `json:"sortBy"`
	SortOrder  SortOrder `json:"sortOrder"`
}

// DefaultProductQuery is what the products table shows before any input.
func DefaultProductQuery() ProductQuery {
	return ProductQuery{
		Category:  CategoryAll,
		SortBy:    SortByName,
		SortOrder: SortAsc,
	}
}

// WithDefaults fills blank fields from DefaultProductQuery.
func (q ProductQuery) WithDefaults() ProductQuery {
	d := DefaultProductQuery()
	if q.Category == "" {
		q.Category = d.Category
	}
	if q.SortBy == "" {
		q.SortBy = d.SortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = d.SortOrder
	}
	return q
}

type SupplierQuery struct {
	SearchText string `json:"searchText"`
}

type ReviewQuery struct {
	ProductID  string `json:"productId,omitempty"`
	SupplierID string `json:"supplierId,omitempty"`
}
