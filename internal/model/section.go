package model

type Section string

const (
	SectionDashboard       Section = "Dashboard"
	SectionProducts        Section = "Products"
	SectionOrders          Section = "Orders"
	SectionReviews         Section = "Reviews"
	SectionInventory       Section = "Inventory"
	SectionStockManagement Section = "Stock Management"
	SectionWarehouse       Section = "Warehouse"
	SectionReports         Section = "Reports"
	SectionSuppliers       Section = "Suppliers"
	SectionSettings        Section = "Settings"
)

// Sections is the sidebar menu, in display order.
var Sections = []Section{
	SectionDashboard,
	SectionProducts,
	SectionOrders,
	SectionReviews,
	SectionInventory,
	SectionStockManagement,
	SectionWarehouse,
	SectionReports,
	SectionSuppliers,
	SectionSettings,
}

func (s Section) IsValid() bool {
	for _, v := range Sections {
		if v == s {
			return true
		}
	}
	return false
}

// HasContent reports whether the section renders catalog data rather than a
// placeholder.
func (s Section) HasContent() bool {
	return s == SectionProducts || s == SectionSuppliers || s == SectionReviews
}
