package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bizarre-bazaar/internal/metrics"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/repository"
	"bizarre-bazaar/internal/seed"
	"bizarre-bazaar/internal/service"
	"bizarre-bazaar/internal/view"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	m := metrics.New()
	catalog := service.NewCatalogService(repository.NewCatalogRepository(seed.Default()), m)
	return &testServer{
		handler: NewRouter(RouterDeps{
			Catalog:  catalog,
			Sessions: service.NewSessionService(catalog, m),
			Health:   service.NewHealthService(catalog, "embedded", nil),
			Metrics:  m,
		}),
		metrics: m,
	}
}

func (s *testServer) do(t *testing.T, method, target, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// decode unwraps the {"data": ...} envelope into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.Empty(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Error
}

func TestProductsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products?category=Accessories&sortBy=price&sortOrder=asc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	var products []model.Product
	decode(t, rec, &products)
	require.Len(t, products, 2)
	assert.Equal(t, "USB-C Cable", products[0].Name)
	assert.Equal(t, "Wireless Mouse", products[1].Name)

	rec = s.do(t, http.MethodGet, "/products?sortBy=rating", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "invalid query")

	rec = s.do(t, http.MethodGet, "/products?category=Toys", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), `category "Toys"`)

	rec = s.do(t, http.MethodGet, "/product?id=P404", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/products", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.HTTPRequests.WithLabelValues("GET", "GET /products", "400")))
}

func TestCatalogMutations(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/suppliers", "", model.SupplierInput{Name: "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/suppliers", "", model.SupplierInput{
		Name: "Nordic Parts", Location: "Oslo", Phone: "+47 555 0101", Email: "np@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var supplier model.Supplier
	decode(t, rec, &supplier)
	assert.Equal(t, "S004", supplier.ID)

	rec = s.do(t, http.MethodPost, "/reviews", "", model.ReviewInput{CustomerName: "Ana", Rating: 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrProductNotSelected.Error(), errorOf(t, rec))

	rec = s.do(t, http.MethodPost, "/reviews", "", model.ReviewInput{ProductID: "P001", CustomerName: "Ana", Rating: 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created reviewCreated
	decode(t, rec, &created)
	assert.Equal(t, 4.5, created.Supplier.Rating)
	assert.Equal(t, 121, created.Supplier.TotalReviews)

	rec = s.do(t, http.MethodGet, "/reviews?supplierId=S001", "", nil)
	var reviews []model.Review
	decode(t, rec, &reviews)
	assert.Len(t, reviews, 2)

	req := httptest.NewRequest(http.MethodPost, "/suppliers", strings.NewReader(`{"name":"a","bogus":1}`))
	out := httptest.NewRecorder()
	s.handler.ServeHTTP(out, req)
	assert.Equal(t, http.StatusBadRequest, out.Code)
}

func TestDashboardSessionFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/session/view", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/session", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var opened sessionOpened
	decode(t, rec, &opened)
	id := opened.SessionID
	require.NotEmpty(t, id)

	rec = s.do(t, http.MethodPost, "/session/section", id, map[string]string{"section": "Reviews"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/session/signup", id, model.SignupInput{
		Name: "Ana", Email: "ana@example.com", Password: "a", ConfirmPassword: "b", Role: model.RoleAdmin,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrPasswordMismatch.Error(), errorOf(t, rec))

	rec = s.do(t, http.MethodPost, "/session/login", id, model.LoginInput{Email: "admin@example.com", Role: model.RoleAdmin})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/session/products-query", id, model.ProductQuery{Category: model.CategoryElectronics})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/session/sort-order", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/session/view", id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page view.Page
	decode(t, rec, &page)
	require.NotNil(t, page.Dashboard)
	require.Len(t, page.Dashboard.Products, 2)
	assert.Equal(t, "Smart Watch", page.Dashboard.Products[0].Name)
	assert.Equal(t, "$1,299.99", page.Dashboard.Products[1].Price)

	rec = s.do(t, http.MethodPut, "/session/review-form", id, model.ReviewInput{CustomerName: "Ana", Rating: 3})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/session/review-form/submit", id, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/session/review-form", id, model.ReviewInput{ProductID: "P003", CustomerName: "Ana", Rating: 3})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/session/review-form/submit", id, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/session/logout", id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/session/view", id, nil)
	decode(t, rec, &page)
	assert.NotNil(t, page.Login)

	rec = s.do(t, http.MethodDelete, "/session", id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.DashboardActive))
}

func TestNonAdminIsForbidden(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	var opened sessionOpened
	decode(t, s.do(t, http.MethodPost, "/session", "", nil), &opened)

	rec := s.do(t, http.MethodPost, "/session/login", opened.SessionID, model.LoginInput{Email: "c@example.com", Role: model.RoleCustomer})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/session/sidebar", opened.SessionID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var page view.Page
	decode(t, s.do(t, http.MethodGet, "/session/view", opened.SessionID, nil), &page)
	assert.Equal(t, "Welcome, c@example.com!", page.Greeting)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"UP"`)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bazaar_catalog_supplier_rating")

	rec = s.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
