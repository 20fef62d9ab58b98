// Package view turns dashboard state into display-ready values. It keeps no
// state of its own.
package view

import (
	"fmt"
	"strings"

	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	AppTitle           = "InvenFlow"
	placeholderMessage = "This section is under development."
	reviewDateLayout   = "2006-01-02"
)

type ProductRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Stock       string `json:"stock"`
	Status      string `json:"status"`
	StatusClass string `json:"statusClass"`
}

type SupplierRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Rating       string `json:"rating"`
	TotalReviews string `json:"totalReviews"`
}

type ReviewRow struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName,omitempty"`
	CustomerName string `json:"customerName"`
	Stars        string `json:"stars"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
}

type MenuItem struct {
	Section model.Section `json:"section"`
	Active  bool          `json:"active"`
}

// Page is one render of the dashboard. Exactly one of Login, Greeting or
// Dashboard is set.
type Page struct {
	Title     string         `json:"title"`
	Login     *LoginPage     `json:"login,omitempty"`
	Greeting  string         `json:"greeting,omitempty"`
	Dashboard *DashboardPage `json:"dashboard,omitempty"`
}

type LoginPage struct {
	Heading string           `json:"heading"`
	Mode    service.AuthMode `json:"mode"`
	Name    string           `json:"name,omitempty"`
	Email   string           `json:"email,omitempty"`
	Role    model.UserRole   `json:"role"`
	// EmailPlaceholder mirrors the selected role, e.g. admin@invenflow.com.
	EmailPlaceholder string `json:"emailPlaceholder"`
}

type DashboardPage struct {
	User        model.AuthUser      `json:"user"`
	SidebarOpen bool                `json:"sidebarOpen"`
	Menu        []MenuItem          `json:"menu"`
	Section     model.Section       `json:"section"`
	Heading     string              `json:"heading"`
	Placeholder string              `json:"placeholder,omitempty"`
	Categories  []model.Category    `json:"categories,omitempty"`
	Query       *model.ProductQuery `json:"query,omitempty"`
	Products    []ProductRow        `json:"products,omitempty"`
	Suppliers   []SupplierRow       `json:"suppliers,omitempty"`
	Reviews     []ReviewRow         `json:"reviews,omitempty"`
	// ProductOptions are the choices of the review form's product picker.
	ProductOptions []ProductRow         `json:"productOptions,omitempty"`
	SupplierForm   *model.SupplierInput `json:"supplierForm,omitempty"`
	ReviewForm     *model.ReviewInput   `json:"reviewForm,omitempty"`
}

// Render builds the page for st.
func Render(st service.DashboardState) Page {
	page := Page{Title: AppTitle}

	switch {
	case st.User == nil:
		page.Login = &LoginPage{
			Heading:          "Welcome to " + AppTitle,
			Mode:             st.AuthForm.Mode,
			Name:             st.AuthForm.Name,
			Email:            st.AuthForm.Email,
			Role:             st.AuthForm.Role,
			EmailPlaceholder: fmt.Sprintf("%s@%s.com", st.AuthForm.Role, strings.ToLower(AppTitle)),
		}
	case !st.IsAdmin():
		page.Greeting = Greeting(*st.User)
	default:
		page.Dashboard = renderDashboard(st)
	}
	return page
}

func renderDashboard(st service.DashboardState) *DashboardPage {
	d := &DashboardPage{
		User:        *st.User,
		SidebarOpen: st.SidebarOpen,
		Section:     st.Section,
		Heading:     SectionHeading(st.Section),
	}
	for _, s := range model.Sections {
		d.Menu = append(d.Menu, MenuItem{Section: s, Active: s == st.Section})
	}

	switch st.Section {
	case model.SectionProducts:
		q := st.ProductQuery
		d.Query = &q
		d.Categories = model.Categories
		d.Products = ProductRows(st.Products)
	case model.SectionSuppliers:
		form := st.SupplierForm
		d.SupplierForm = &form
		d.Suppliers = SupplierRows(st.Suppliers)
	case model.SectionReviews:
		form := st.ReviewForm
		d.ReviewForm = &form
		d.ProductOptions = ProductRows(st.ReviewProducts)
		d.Reviews = ReviewRows(st.Reviews, st.ReviewProducts)
	default:
		d.Placeholder = placeholderMessage
	}
	return d
}

// Greeting is shown to signed-in users without dashboard access.
func Greeting(u model.AuthUser) string {
	who := u.Name
	if who == "" {
		who = u.Email
	}
	return fmt.Sprintf("Welcome, %s!", who)
}

// SectionHeading is the upper-cased section title.
func SectionHeading(s model.Section) string {
	return strings.ToUpper(string(s))
}

// FormatPrice renders a price with thousands separators and two decimals.
func FormatPrice(p decimal.Decimal) string {
	f, _ := p.Round(2).Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// StatusClass maps a stock status to its text colour class.
func StatusClass(s model.ProductStatus) string {
	switch s {
	case model.StatusInStock:
		return "text-green-500"
	case model.StatusLowStock:
		return "text-yellow-500"
	case model.StatusOutOfStock:
		return "text-red-500"
	default:
		return "text-gray-500"
	}
}

// Stars draws a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	rating = max(0, min(rating, model.MaxReviewRating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxReviewRating-rating)
}

func ProductRows(products []model.Product) []ProductRow {
	if len(products) == 0 {
		return nil
	}
	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{
			ID:          p.ID,
			Name:        p.Name,
			Category:    string(p.Category),
			Price:       FormatPrice(p.Price),
			Stock:       humanize.Comma(int64(p.Stock)),
			Status:      string(p.Status),
			StatusClass: StatusClass(p.Status),
		}
	}
	return rows
}

func SupplierRows(suppliers []model.Supplier) []SupplierRow {
	if len(suppliers) == 0 {
		return nil
	}
	rows := make([]SupplierRow, len(suppliers))
	for i, s := range suppliers {
		rows[i] = SupplierRow{
			ID:           s.ID,
			Name:         s.Name,
			Location:     s.Location,
			Phone:        s.Phone,
			Email:        s.Email,
			Rating:       decimal.NewFromFloat(s.Rating).StringFixed(1),
			TotalReviews: humanize.Comma(int64(s.TotalReviews)),
		}
	}
	return rows
}

// ReviewRows resolves product names from products when present.
func ReviewRows(reviews []model.Review, products []model.Product) []ReviewRow {
	if len(reviews) == 0 {
		return nil
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	rows := make([]ReviewRow, len(reviews))
	for i, r := range reviews {
		rows[i] = ReviewRow{
			ID:           r.ID,
			ProductID:    r.ProductID,
			ProductName:  names[r.ProductID],
			CustomerName: r.CustomerName,
			Stars:        Stars(r.Rating),
			Comment:      r.Comment,
			Date:         r.CreatedAt.UTC().Format(reviewDateLayout),
		}
	}
	return rows
}
