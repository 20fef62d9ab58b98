package service

import (
	"context"
	"testing"

	"bizarre-bazaar/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminDashboard(t *testing.T) (*Dashboard, *CatalogService) {
	t.Helper()
	svc, _, _ := newTestCatalog(t)
	d := NewDashboard(svc)
	_, err := d.Login(context.Background(), model.LoginInput{Email: "admin@bazaar.example", Role: model.RoleAdmin})
	require.NoError(t, err)
	return d, svc
}

func TestDashboardDefaults(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCatalog(t)
	st, err := NewDashboard(svc).State(context.Background())
	require.NoError(t, err)

	assert.Nil(t, st.User)
	assert.Equal(t, AuthModeLogin, st.AuthForm.Mode)
	assert.Equal(t, model.SectionProducts, st.Section)
	assert.True(t, st.SidebarOpen)
	assert.Equal(t, model.DefaultProductQuery(), st.ProductQuery)
	assert.Equal(t, 5, st.ReviewForm.Rating)
	assert.Empty(t, st.Products, "signed-out sessions see no catalog data")
}

func TestDashboardLoginValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCatalog(t)
	d := NewDashboard(svc)
	ctx := context.Background()

	_, err := d.Login(ctx, model.LoginInput{Email: "  ", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = d.Login(ctx, model.LoginInput{Email: "a@b.c", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	u, err := d.Login(ctx, model.LoginInput{Email: " a@b.c ", Role: model.RoleSupplier})
	require.NoError(t, err)
	assert.Equal(t, model.AuthUser{Email: "a@b.c", Role: model.RoleSupplier}, u)
}

func TestDashboardSignup(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCatalog(t)
	d := NewDashboard(svc)
	ctx := context.Background()

	in := model.SignupInput{Name: "Ana", Email: "ana@example.com", Password: "pw1", ConfirmPassword: "pw2", Role: model.RoleCustomer}
	_, err := d.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	st, err := d.State(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.User, "failed signup must not sign in")

	in.ConfirmPassword = "pw1"
	u, err := d.Signup(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, model.RoleCustomer, u.Role)
}

func TestDashboardLogoutAndAuthMode(t *testing.T) {
	t.Parallel()

	d, _ := newAdminDashboard(t)
	ctx := context.Background()
	require.NoError(t, d.SetSection(model.SectionSuppliers))

	d.Logout(ctx)
	st, err := d.State(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.User)
	assert.Empty(t, st.AuthForm.Email)
	assert.Equal(t, model.SectionSuppliers, st.Section, "preferences survive logout")

	assert.Equal(t, AuthModeSignup, d.ToggleAuthMode())
	assert.Equal(t, AuthModeLogin, d.ToggleAuthMode())
}

func TestDashboardRequiresAdmin(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCatalog(t)
	d := NewDashboard(svc)
	ctx := context.Background()

	assert.ErrorIs(t, d.SetSection(model.SectionReviews), ErrNotAuthenticated)

	_, err := d.Login(ctx, model.LoginInput{Email: "c@example.com", Role: model.RoleCustomer})
	require.NoError(t, err)
	assert.ErrorIs(t, d.SetSection(model.SectionReviews), ErrForbidden)
	_, err = d.SubmitSupplier(ctx)
	assert.ErrorIs(t, err, ErrForbidden)

	st, err := d.State(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsAdmin())
	assert.Empty(t, st.Products)
}

func TestDashboardSectionAndSidebar(t *testing.T) {
	t.Parallel()

	d, _ := newAdminDashboard(t)
	ctx := context.Background()

	assert.ErrorIs(t, d.SetSection("Billing"), ErrInvalidSection)

	open, err := d.ToggleSidebar()
	require.NoError(t, err)
	assert.False(t, open)

	require.NoError(t, d.SetSection(model.SectionWarehouse))
	st, err := d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SectionWarehouse, st.Section)
	assert.Empty(t, st.Products)
	assert.Empty(t, st.Suppliers)
	assert.Empty(t, st.Reviews)
}

func TestDashboardProductsSection(t *testing.T) {
	t.Parallel()

	d, _ := newAdminDashboard(t)
	ctx := context.Background()

	q, err := d.SetProductQuery(model.ProductQuery{Category: model.CategoryElectronics, SortBy: model.SortByPrice})
	require.NoError(t, err)
	assert.Equal(t, model.SortAsc, q.SortOrder)

	order, err := d.ToggleSortOrder()
	require.NoError(t, err)
	assert.Equal(t, model.SortDesc, order)

	st, err := d.State(ctx)
	require.NoError(t, err)
	require.Len(t, st.Products, 2)
	assert.Equal(t, "P001", st.Products[0].ID)
	assert.Equal(t, "P004", st.Products[1].ID)

	_, err = d.SetProductQuery(model.ProductQuery{Category: "Toys"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
	_, err = d.SetProductQuery(model.ProductQuery{SortBy: "rating"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDashboardSubmitSupplier(t *testing.T) {
	t.Parallel()

	d, _ := newAdminDashboard(t)
	ctx := context.Background()

	require.NoError(t, d.UpdateSupplierForm(model.SupplierInput{Name: "Only Name"}))
	_, err := d.SubmitSupplier(ctx)
	assert.ErrorIs(t, err, ErrMissingField)

	st, err := d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Only Name", st.SupplierForm.Name, "buffer kept on failure")

	require.NoError(t, d.UpdateSupplierForm(validSupplier(1)))
	created, err := d.SubmitSupplier(ctx)
	require.NoError(t, err)
	assert.Equal(t, "S004", created.ID)

	require.NoError(t, d.SetSection(model.SectionSuppliers))
	require.NoError(t, d.SetSupplierQuery(model.SupplierQuery{SearchText: "lisbon"}))
	st, err = d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SupplierInput{}, st.SupplierForm)
	require.Len(t, st.Suppliers, 1)
	assert.Equal(t, "S004", st.Suppliers[0].ID)
}

func TestDashboardSubmitReview(t *testing.T) {
	t.Parallel()

	d, svc := newAdminDashboard(t)
	ctx := context.Background()

	require.NoError(t, d.UpdateReviewForm(model.ReviewInput{CustomerName: "Ana", Rating: 4}))
	_, _, err := d.SubmitReview(ctx)
	assert.ErrorIs(t, err, ErrProductNotSelected)

	require.NoError(t, d.UpdateReviewForm(model.ReviewInput{ProductID: "P002", CustomerName: "Ana", Rating: 4, Comment: "ok"}))
	review, supplier, err := d.SubmitReview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R004", review.ID)
	assert.Equal(t, "S002", supplier.ID)
	assert.Equal(t, 86, supplier.TotalReviews)

	stored, err := svc.Supplier(ctx, "S002")
	require.NoError(t, err)
	assert.Equal(t, supplier, stored)

	require.NoError(t, d.SetSection(model.SectionReviews))
	st, err := d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewInput{Rating: 5}, st.ReviewForm)
	assert.Len(t, st.Reviews, 4)
	assert.Len(t, st.ReviewProducts, 5)
}

func TestSessionService(t *testing.T) {
	t.Parallel()

	svc, _, m := newTestCatalog(t)
	sessions := NewSessionService(svc, m)
	ctx := context.Background()

	id, d := sessions.Open(ctx)
	other, _ := sessions.Open(ctx)
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, sessions.Len())

	got, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = sessions.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, sessions.Close(ctx, id))
	assert.ErrorIs(t, sessions.Close(ctx, id), ErrSessionNotFound)
	_, err = sessions.Get(id)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 1, sessions.Len())
}
