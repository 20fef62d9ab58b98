package view

import (
	"testing"
	"time"

	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1299.99", "$1,299.99"},
		{"12.99", "$12.99"},
		{"0", "$0.00"},
		{"1234567.5", "$1,234,567.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestStatusClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text-green-500", StatusClass(model.StatusInStock))
	assert.Equal(t, "text-yellow-500", StatusClass(model.StatusLowStock))
	assert.Equal(t, "text-red-500", StatusClass(model.StatusOutOfStock))
	assert.Equal(t, "text-gray-500", StatusClass("Discontinued"))
}

func TestStars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "★★★★☆", Stars(4))
	assert.Equal(t, "★★★★★", Stars(9))
	assert.Equal(t, "☆☆☆☆☆", Stars(-1))
}

func TestRenderLoginAndGreeting(t *testing.T) {
	t.Parallel()

	st := service.DashboardState{
		AuthForm: service.AuthForm{Mode: service.AuthModeSignup, Role: model.RoleSupplier},
	}
	page := Render(st)
	require.NotNil(t, page.Login)
	assert.Nil(t, page.Dashboard)
	assert.Equal(t, "Welcome to InvenFlow", page.Login.Heading)
	assert.Equal(t, "supplier@invenflow.com", page.Login.EmailPlaceholder)

	st.User = &model.AuthUser{Email: "c@example.com", Role: model.RoleCustomer}
	page = Render(st)
	assert.Nil(t, page.Login)
	assert.Equal(t, "Welcome, c@example.com!", page.Greeting)

	st.User.Name = "Cleo"
	assert.Equal(t, "Welcome, Cleo!", Render(st).Greeting)
}

func TestRenderDashboardSections(t *testing.T) {
	t.Parallel()

	admin := &model.AuthUser{Email: "a@example.com", Role: model.RoleAdmin}
	products := []model.Product{{
		ID: "P002", Name: "Wireless Mouse", Category: model.CategoryAccessories,
		Price: decimal.RequireFromString("29.99"), Stock: 1500, Status: model.StatusLowStock,
	}}

	page := Render(service.DashboardState{
		User:         admin,
		Section:      model.SectionProducts,
		SidebarOpen:  true,
		ProductQuery: model.DefaultProductQuery(),
		Products:     products,
	})
	d := page.Dashboard
	require.NotNil(t, d)
	assert.Equal(t, "PRODUCTS", d.Heading)
	assert.Empty(t, d.Placeholder)
	require.Len(t, d.Products, 1)
	assert.Equal(t, ProductRow{
		ID: "P002", Name: "Wireless Mouse", Category: "Accessories",
		Price: "$29.99", Stock: "1,500", Status: "Low Stock", StatusClass: "text-yellow-500",
	}, d.Products[0])
	require.Len(t, d.Menu, len(model.Sections))
	assert.True(t, d.Menu[1].Active)

	d = Render(service.DashboardState{User: admin, Section: model.SectionStockManagement}).Dashboard
	assert.Equal(t, "STOCK MANAGEMENT", d.Heading)
	assert.Equal(t, "This section is under development.", d.Placeholder)
	assert.Nil(t, d.Products)

	d = Render(service.DashboardState{
		User:    admin,
		Section: model.SectionSuppliers,
		Suppliers: []model.Supplier{{
			ID: "S001", Name: "TechSource Inc.", Rating: 4, TotalReviews: 1200,
		}},
	}).Dashboard
	require.Len(t, d.Suppliers, 1)
	assert.Equal(t, "4.0", d.Suppliers[0].Rating)
	assert.Equal(t, "1,200", d.Suppliers[0].TotalReviews)
	assert.NotNil(t, d.SupplierForm)

	d = Render(service.DashboardState{
		User:           admin,
		Section:        model.SectionReviews,
		ReviewForm:     model.ReviewInput{Rating: 5},
		ReviewProducts: products,
		Reviews: []model.Review{{
			ID: "R001", ProductID: "P002", CustomerName: "Ana", Rating: 3,
			CreatedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		}},
	}).Dashboard
	require.Len(t, d.Reviews, 1)
	assert.Equal(t, "Wireless Mouse", d.Reviews[0].ProductName)
	assert.Equal(t, "★★★☆☆", d.Reviews[0].Stars)
	assert.Equal(t, "2024-03-15", d.Reviews[0].Date)
	assert.Equal(t, 5, d.ReviewForm.Rating)
	assert.Len(t, d.ProductOptions, 1)
}
