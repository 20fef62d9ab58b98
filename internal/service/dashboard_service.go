package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"

	"go.opentelemetry.io/otel"
)

type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// AuthForm is the retained part of the login/signup form. Passwords are
// checked on submit and never kept.
type AuthForm struct {
	Mode  AuthMode       `json:"mode"`
	Name  string         `json:"name,omitempty"`
	Email string         `json:"email,omitempty"`
	Role  model.UserRole `json:"role"`
}

// DashboardState is everything the presentation layer needs for one render.
// Only the collection matching the active section is filled.
type DashboardState struct {
	User          *model.AuthUser     `json:"user,omitempty"`
	AuthForm      AuthForm            `json:"authForm"`
	Section       model.Section       `json:"section"`
	SidebarOpen   bool                `json:"sidebarOpen"`
	ProductQuery  model.ProductQuery  `json:"productQuery"`
	SupplierQuery model.SupplierQuery `json:"supplierQuery"`
	SupplierForm  model.SupplierInput `json:"supplierForm"`
	ReviewForm    model.ReviewInput   `json:"reviewForm"`
	Products      []model.Product     `json:"products,omitempty"`
	Suppliers     []model.Supplier    `json:"suppliers,omitempty"`
	Reviews       []model.Review      `json:"reviews,omitempty"`
	// ReviewProducts feeds the product picker of the review form.
	ReviewProducts []model.Product `json:"reviewProducts,omitempty"`
}

// IsAdmin reports whether the state belongs to an admin session.
func (s DashboardState) IsAdmin() bool {
	return s.User != nil && s.User.Role == model.RoleAdmin
}

// Dashboard is the view controller of one client. It owns UI-only state and
// forwards form submissions to the catalog.
type Dashboard struct {
	mu      sync.Mutex
	catalog *CatalogService

	user          *model.AuthUser
	authForm      AuthForm
	section       model.Section
	sidebarOpen   bool
	productQuery  model.ProductQuery
	supplierQuery model.SupplierQuery
	supplierForm  model.SupplierInput
	reviewForm    model.ReviewInput
}

var DashboardTracer = otel.Tracer("Dashboard")

func NewDashboard(catalog *CatalogService) *Dashboard {
	return &Dashboard{
		catalog:      catalog,
		authForm:     AuthForm{Mode: AuthModeLogin, Role: model.RoleCustomer},
		section:      model.SectionProducts,
		sidebarOpen:  true,
		productQuery: model.DefaultProductQuery(),
		reviewForm:   emptyReviewForm(),
	}
}

func emptyReviewForm() model.ReviewInput {
	return model.ReviewInput{Rating: model.MaxReviewRating}
}

func (d *Dashboard) Login(ctx context.Context, in model.LoginInput) (model.AuthUser, error) {
	ctx, span := DashboardTracer.Start(ctx, "Dashboard.Login")
	defer span.End()

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return model.AuthUser{}, fmt.Errorf("%w: email", ErrMissingField)
	}
	if !in.Role.IsValid() {
		return model.AuthUser{}, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.authForm = AuthForm{Mode: AuthModeLogin, Email: email, Role: in.Role}
	d.user = &model.AuthUser{Email: email, Role: in.Role}

	logger.Info(ctx, "User logged in", slog.String("role", string(in.Role)))
	return *d.user, nil
}

func (d *Dashboard) Signup(ctx context.Context, in model.SignupInput) (model.AuthUser, error) {
	ctx, span := DashboardTracer.Start(ctx, "Dashboard.Signup")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	switch {
	case name == "":
		return model.AuthUser{}, fmt.Errorf("%w: name", ErrMissingField)
	case email == "":
		return model.AuthUser{}, fmt.Errorf("%w: email", ErrMissingField)
	case in.Password == "":
		return model.AuthUser{}, fmt.Errorf("%w: password", ErrMissingField)
	case !in.Role.IsValid():
		return model.AuthUser{}, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	case in.Password != in.ConfirmPassword:
		return model.AuthUser{}, ErrPasswordMismatch
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.authForm = AuthForm{Mode: AuthModeSignup, Name: name, Email: email, Role: in.Role}
	d.user = &model.AuthUser{Name: name, Email: email, Role: in.Role}

	logger.Info(ctx, "User signed up", slog.String("role", string(in.Role)))
	return *d.user, nil
}

// Logout drops the user and the remembered email. Dashboard preferences
// (section, sidebar, queries) survive.
func (d *Dashboard) Logout(ctx context.Context) {
	_, span := DashboardTracer.Start(ctx, "Dashboard.Logout")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.user = nil
	d.authForm.Email = ""
}

// ToggleAuthMode switches between login and signup and clears the form.
func (d *Dashboard) ToggleAuthMode() AuthMode {
	d.mu.Lock()
	defer d.mu.Unlock()

	mode := AuthModeSignup
	if d.authForm.Mode == AuthModeSignup {
		mode = AuthModeLogin
	}
	d.authForm = AuthForm{Mode: mode, Role: d.authForm.Role}
	return mode
}

func (d *Dashboard) SetSection(s model.Section) error {
	if !s.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSection, s)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return err
	}
	d.section = s
	return nil
}

func (d *Dashboard) ToggleSidebar() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return false, err
	}
	d.sidebarOpen = !d.sidebarOpen
	return d.sidebarOpen, nil
}

// SetProductQuery replaces the products table criteria. Blank fields take
// their defaults.
func (d *Dashboard) SetProductQuery(q model.ProductQuery) (model.ProductQuery, error) {
	q = q.WithDefaults()
	if q.Category != model.CategoryAll && !q.Category.IsValid() {
		return model.ProductQuery{}, fmt.Errorf("%w: category %q", ErrInvalidQuery, q.Category)
	}
	if !q.SortBy.IsValid() || !q.SortOrder.IsValid() {
		return model.ProductQuery{}, fmt.Errorf("%w: sort %q %q", ErrInvalidQuery, q.SortBy, q.SortOrder)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return model.ProductQuery{}, err
	}
	d.productQuery = q
	return q, nil
}

func (d *Dashboard) ToggleSortOrder() (model.SortOrder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return "", err
	}
	d.productQuery.SortOrder = d.productQuery.SortOrder.Toggle()
	return d.productQuery.SortOrder, nil
}

func (d *Dashboard) SetSupplierQuery(q model.SupplierQuery) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return err
	}
	d.supplierQuery = q
	return nil
}

func (d *Dashboard) UpdateSupplierForm(in model.SupplierInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return err
	}
	d.supplierForm = in
	return nil
}

// SubmitSupplier adds the buffered supplier. The buffer is cleared only when
// the supplier was added.
func (d *Dashboard) SubmitSupplier(ctx context.Context) (model.Supplier, error) {
	ctx, span := DashboardTracer.Start(ctx, "Dashboard.SubmitSupplier")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return model.Supplier{}, err
	}

	in, err := ValidateSupplierInput(d.supplierForm)
	if err != nil {
		return model.Supplier{}, err
	}
	created, err := d.catalog.AddSupplier(ctx, in)
	if err != nil {
		return model.Supplier{}, err
	}
	d.supplierForm = model.SupplierInput{}
	return created, nil
}

func (d *Dashboard) UpdateReviewForm(in model.ReviewInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return err
	}
	d.reviewForm = in
	return nil
}

// SubmitReview adds the buffered review. An unselected product is rejected
// here, before the catalog is involved.
func (d *Dashboard) SubmitReview(ctx context.Context) (model.Review, model.Supplier, error) {
	ctx, span := DashboardTracer.Start(ctx, "Dashboard.SubmitReview")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.requireAdmin(); err != nil {
		return model.Review{}, model.Supplier{}, err
	}

	in, err := ValidateReviewInput(d.reviewForm)
	if err != nil {
		return model.Review{}, model.Supplier{}, err
	}
	review, supplier, err := d.catalog.AddReview(ctx, in)
	if err != nil {
		return model.Review{}, model.Supplier{}, err
	}
	d.reviewForm = emptyReviewForm()
	return review, supplier, nil
}

// State derives the current render. Signed-out and non-admin sessions get no
// catalog content.
func (d *Dashboard) State(ctx context.Context) (DashboardState, error) {
	ctx, span := DashboardTracer.Start(ctx, "Dashboard.State")
	defer span.End()

	d.mu.Lock()
	st := DashboardState{
		AuthForm:      d.authForm,
		Section:       d.section,
		SidebarOpen:   d.sidebarOpen,
		ProductQuery:  d.productQuery,
		SupplierQuery: d.supplierQuery,
		SupplierForm:  d.supplierForm,
		ReviewForm:    d.reviewForm,
	}
	if d.user != nil {
		u := *d.user
		st.User = &u
	}
	d.mu.Unlock()

	if !st.IsAdmin() {
		return st, nil
	}

	switch st.Section {
	case model.SectionProducts:
		products, err := d.catalog.FilteredSortedProducts(ctx, st.ProductQuery)
		if err != nil {
			return DashboardState{}, err
		}
		st.Products = products
	case model.SectionSuppliers:
		st.Suppliers = d.catalog.FilteredSuppliers(ctx, st.SupplierQuery)
	case model.SectionReviews:
		st.Reviews = d.catalog.Reviews(ctx, model.ReviewQuery{})
		products, err := d.catalog.FilteredSortedProducts(ctx, model.DefaultProductQuery())
		if err != nil {
			return DashboardState{}, err
		}
		st.ReviewProducts = products
	}
	return st, nil
}

// requireAdmin must be called with d.mu held.
func (d *Dashboard) requireAdmin() error {
	if d.user == nil {
		return ErrNotAuthenticated
	}
	if d.user.Role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
