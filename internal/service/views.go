package service

import (
	"fmt"
	"slices"
	"strings"

	"bizarre-bazaar/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterSortProducts derives the products table. Matching is a
// case-insensitive substring of name or id within the category ("All" matches
// every category). Ties keep collection order in both directions.
func FilterSortProducts(products []model.Product, q model.ProductQuery) ([]model.Product, error) {
	q = q.WithDefaults()
	if q.Category != model.CategoryAll && !q.Category.IsValid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidQuery, q.Category)
	}
	if !q.SortBy.IsValid() {
		return nil, fmt.Errorf("%w: sortBy %q", ErrInvalidQuery, q.SortBy)
	}
	if !q.SortOrder.IsValid() {
		return nil, fmt.Errorf("%w: sortOrder %q", ErrInvalidQuery, q.SortOrder)
	}

	needle := strings.ToLower(q.SearchText)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if q.Category != model.CategoryAll && p.Category != q.Category {
			continue
		}
		if !containsFold(p.Name, needle) && !containsFold(p.ID, needle) {
			continue
		}
		out = append(out, p)
	}

	cmp := productComparator(q.SortBy)
	if q.SortOrder == model.SortDesc {
		asc := cmp
		cmp = func(a, b model.Product) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, cmp)
	return out, nil
}

func productComparator(by model.SortBy) func(a, b model.Product) int {
	switch by {
	case model.SortByPrice:
		return func(a, b model.Product) int { return a.Price.Cmp(b.Price) }
	case model.SortByStock:
		return func(a, b model.Product) int { return a.Stock - b.Stock }
	default:
		// A Collator keeps internal buffers, so each derivation gets its own.
		col := collate.New(language.English)
		return func(a, b model.Product) int { return col.CompareString(a.Name, b.Name) }
	}
}

// FilterSuppliers matches name, location or email, keeping collection order.
func FilterSuppliers(suppliers []model.Supplier, q model.SupplierQuery) []model.Supplier {
	needle := strings.ToLower(q.SearchText)
	out := make([]model.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if containsFold(s.Name, needle) || containsFold(s.Location, needle) || containsFold(s.Email, needle) {
			out = append(out, s)
		}
	}
	return out
}

// FilterReviews narrows by product, or by the supplier owning the product.
func FilterReviews(c *model.Catalog, q model.ReviewQuery) []model.Review {
	out := make([]model.Review, 0, len(c.Reviews))
	for _, r := range c.Reviews {
		if q.ProductID != "" && r.ProductID != q.ProductID {
			continue
		}
		if q.SupplierID != "" {
			p, ok := c.Product(r.ProductID)
			if !ok || p.SupplierID != q.SupplierID {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// containsFold expects needle already lower-cased.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
