package model

import "slices"

// Catalog is one consistent state of the three collections. A published
// Catalog is never mutated; writers clone it and publish the clone.
type Catalog struct {
	Products  []Product  `json:"products"`
	Suppliers []Supplier `json:"suppliers"`
	Reviews   []Review   `json:"reviews"`
}

func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return &Catalog{}
	}
	return &Catalog{
		Products:  slices.Clone(c.Products),
		Suppliers: slices.Clone(c.Suppliers),
		Reviews:   slices.Clone(c.Reviews),
	}
}

func (c *Catalog) Product(id string) (Product, bool) {
	i := slices.IndexFunc(c.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return c.Products[i], true
}

func (c *Catalog) Supplier(id string) (Supplier, bool) {
	i := c.supplierIndex(id)
	if i < 0 {
		return Supplier{}, false
	}
	return c.Suppliers[i], true
}

// SetSupplier replaces the supplier with the same id. It reports false when
// no such supplier exists.
func (c *Catalog) SetSupplier(s Supplier) bool {
	i := c.supplierIndex(s.ID)
	if i < 0 {
		return false
	}
	c.Suppliers[i] = s
	return true
}

func (c *Catalog) supplierIndex(id string) int {
	return slices.IndexFunc(c.Suppliers, func(s Supplier) bool { return s.ID == id })
}
