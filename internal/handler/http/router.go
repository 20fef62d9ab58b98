package http

import (
	"net/http"

	"bizarre-bazaar/internal/metrics"
	middleware_http "bizarre-bazaar/internal/middleware/http"
	"bizarre-bazaar/internal/service"
)

type RouterDeps struct {
	Catalog  *service.CatalogService
	Sessions *service.SessionService
	Health   *service.HealthService
	Metrics  *metrics.Metrics
}

// NewRouter registers every route and wraps the mux in the tracing
// middleware.
func NewRouter(deps RouterDeps) http.Handler {
	catalog := NewCatalogHandler(deps.Catalog)
	dashboard := NewDashboardHandler(deps.Sessions)
	health := NewHealthHandler(deps.Health)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "hello-world")
	})
	mux.HandleFunc("GET /healthz", health.Check)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	mux.HandleFunc("GET /products", catalog.ListProducts)
	mux.HandleFunc("GET /product", catalog.GetProduct)
	mux.HandleFunc("GET /categories", catalog.ListCategories)
	mux.HandleFunc("GET /suppliers", catalog.ListSuppliers)
	mux.HandleFunc("POST /suppliers", catalog.CreateSupplier)
	mux.HandleFunc("GET /reviews", catalog.ListReviews)
	mux.HandleFunc("POST /reviews", catalog.CreateReview)

	mux.HandleFunc("POST /session", dashboard.Open)
	mux.HandleFunc("DELETE /session", dashboard.Close)
	mux.HandleFunc("POST /session/login", dashboard.Login)
	mux.HandleFunc("POST /session/signup", dashboard.Signup)
	mux.HandleFunc("POST /session/logout", dashboard.Logout)
	mux.HandleFunc("POST /session/auth-mode", dashboard.ToggleAuthMode)
	mux.HandleFunc("GET /session/view", dashboard.View)
	mux.HandleFunc("POST /session/section", dashboard.SetSection)
	mux.HandleFunc("POST /session/sidebar", dashboard.ToggleSidebar)
	mux.HandleFunc("POST /session/products-query", dashboard.SetProductQuery)
	mux.HandleFunc("POST /session/sort-order", dashboard.ToggleSortOrder)
	mux.HandleFunc("POST /session/suppliers-query", dashboard.SetSupplierQuery)
	mux.HandleFunc("PUT /session/supplier-form", dashboard.UpdateSupplierForm)
	mux.HandleFunc("POST /session/supplier-form/submit", dashboard.SubmitSupplier)
	mux.HandleFunc("PUT /session/review-form", dashboard.UpdateReviewForm)
	mux.HandleFunc("POST /session/review-form/submit", dashboard.SubmitReview)

	return middleware_http.TraceMiddleware(deps.Metrics)(mux)
}
