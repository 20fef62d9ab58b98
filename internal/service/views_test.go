package service

import (
	"testing"

	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/seed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(ps []model.Product) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestFilterSortProducts(t *testing.T) {
	t.Parallel()

	products := seed.Default().Products
	tests := []struct {
		name  string
		query model.ProductQuery
		want  []string
	}{
		{
			name:  "accessories by price ascending",
			query: model.ProductQuery{Category: model.CategoryAccessories, SortBy: model.SortByPrice, SortOrder: model.SortAsc},
			want:  []string{"P003", "P002"},
		},
		{
			name:  "all by name ascending",
			query: model.ProductQuery{Category: model.CategoryAll, SortBy: model.SortByName, SortOrder: model.SortAsc},
			want:  []string{"P005", "P001", "P004", "P003", "P002"},
		},
		{
			name:  "all by name descending",
			query: model.ProductQuery{Category: model.CategoryAll, SortBy: model.SortByName, SortOrder: model.SortDesc},
			want:  []string{"P002", "P003", "P004", "P001", "P005"},
		},
		{
			name:  "all by stock descending",
			query: model.ProductQuery{Category: model.CategoryAll, SortBy: model.SortByStock, SortOrder: model.SortDesc},
			want:  []string{"P001", "P005", "P004", "P002", "P003"},
		},
		{
			name:  "blank query uses defaults",
			query: model.ProductQuery{},
			want:  []string{"P005", "P001", "P004", "P003", "P002"},
		},
		{
			name:  "search is case-insensitive on name",
			query: model.ProductQuery{SearchText: "WIRE"},
			want:  []string{"P002"},
		},
		{
			name:  "search matches id",
			query: model.ProductQuery{SearchText: "p00", SortBy: model.SortByPrice},
			want:  []string{"P003", "P002", "P005", "P004", "P001"},
		},
		{
			name:  "search within category",
			query: model.ProductQuery{Category: model.CategoryElectronics, SearchText: "watch"},
			want:  []string{"P004"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FilterSortProducts(products, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}
}

func TestFilterSortProductsIsStable(t *testing.T) {
	t.Parallel()

	price := decimal.RequireFromString("10")
	products := []model.Product{
		{ID: "A", Name: "b", Price: price, Stock: 1},
		{ID: "B", Name: "a", Price: price, Stock: 1},
		{ID: "C", Name: "c", Price: decimal.RequireFromString("5"), Stock: 2},
		{ID: "D", Name: "d", Price: price, Stock: 1},
	}

	asc, err := FilterSortProducts(products, model.ProductQuery{SortBy: model.SortByPrice, SortOrder: model.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D"}, productIDs(asc))

	desc, err := FilterSortProducts(products, model.ProductQuery{SortBy: model.SortByPrice, SortOrder: model.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C"}, productIDs(desc))
}

func TestFilterSortProductsCollatesNames(t *testing.T) {
	t.Parallel()

	products := []model.Product{
		{ID: "1", Name: "zebra"},
		{ID: "2", Name: "Éclair"},
		{ID: "3", Name: "apple"},
		{ID: "4", Name: "Banana"},
	}
	got, err := FilterSortProducts(products, model.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4", "2", "1"}, productIDs(got))
}

func TestFilterSortProductsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := seed.Default().Products
	before := productIDs(products)
	_, err := FilterSortProducts(products, model.ProductQuery{SortBy: model.SortByStock, SortOrder: model.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, before, productIDs(products))
}

func TestFilterSortProductsRejectsBadQuery(t *testing.T) {
	t.Parallel()

	_, err := FilterSortProducts(seed.Default().Products, model.ProductQuery{Category: "Toys"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = FilterSortProducts(nil, model.ProductQuery{SortBy: "rating"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = FilterSortProducts(nil, model.ProductQuery{SortOrder: "up"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestFilterSuppliers(t *testing.T) {
	t.Parallel()

	suppliers := seed.Default().Suppliers
	ids := func(q string) []string {
		var out []string
		for _, s := range FilterSuppliers(suppliers, model.SupplierQuery{SearchText: q}) {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"S001", "S002", "S003"}, ids(""))
	assert.Equal(t, []string{"S002"}, ids("shenzhen"))
	assert.Equal(t, []string{"S003"}, ids("AUDIOWORKS.example"))
	assert.Equal(t, []string{"S001"}, ids("techsource"))
	assert.Nil(t, ids("nowhere"))
}

func TestFilterReviews(t *testing.T) {
	t.Parallel()

	c := seed.Default()
	ids := func(q model.ReviewQuery) []string {
		var out []string
		for _, r := range FilterReviews(c, q) {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"R001", "R002", "R003"}, ids(model.ReviewQuery{}))
	assert.Equal(t, []string{"R002"}, ids(model.ReviewQuery{ProductID: "P002"}))
	assert.Equal(t, []string{"R001"}, ids(model.ReviewQuery{SupplierID: "S001"}))
	assert.Nil(t, ids(model.ReviewQuery{SupplierID: "S001", ProductID: "P005"}))
}
