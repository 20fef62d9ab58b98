package http

import (
	"fmt"
	"net/http"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/service"

	"go.opentelemetry.io/otel"
)

// CatalogHandler exposes the catalog without a dashboard session.
type CatalogHandler struct {
	service *service.CatalogService
}

var HttpCatalogHandlerTracer = otel.Tracer("HttpCatalogHandler")

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCatalogHandlerTracer.Start(r.Context(), "HttpCatalogHandler.ListProducts")
	defer span.End()
	logger.Info(ctx, "HttpCatalogHandler")

	q := r.URL.Query()
	products, err := h.service.FilteredSortedProducts(ctx, model.ProductQuery{
		Category:   model.Category(q.Get("category")),
		SearchText: q.Get("search"),
		SortBy:     model.SortBy(q.Get("sortBy")),
		SortOrder:  model.SortOrder(q.Get("sortOrder")),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCatalogHandlerTracer.Start(r.Context(), "HttpCatalogHandler.GetProduct")
	defer span.End()
	logger.Info(ctx, "HttpCatalogHandler")

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(ctx, w, fmt.Errorf("%w: id", service.ErrMissingField))
		return
	}
	product, err := h.service.Product(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

func (h *CatalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCatalogHandlerTracer.Start(r.Context(), "HttpCatalogHandler.ListSuppliers")
	defer span.End()
	logger.Info(ctx, "HttpCatalogHandler")

	suppliers := h.service.FilteredSuppliers(ctx, model.SupplierQuery{SearchText: r.URL.Query().Get("search")})
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *CatalogHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCatalogHandlerTracer.Start(r.Context(), "HttpCatalogHandler.CreateSupplier")
	defer span.End()
	logger.Info(ctx, "HttpCatalogHandler")

	var in model.SupplierInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in, err := service.ValidateSupplierInput(in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	created, err := h.service.AddSupplier(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCatalogHandlerTracer.Start(r.Context(), "HttpCatalogHandler.ListReviews")
	defer span.End()
	logger.Info(ctx, "HttpCatalogHandler")

	q := r.URL.Query()
	reviews := h.service.Reviews(ctx, model.ReviewQuery{
		ProductID:  q.Get("productId"),
		SupplierID: q.Get("supplierId"),
	})
	writeJSON(w, http.StatusOK, reviews)
}

type reviewCreated struct {
	Review   model.Review   `json:"review"`
	Supplier model.Supplier `json:"supplier"`
}

func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCatalogHandlerTracer.Start(r.Context(), "HttpCatalogHandler.CreateReview")
	defer span.End()
	logger.Info(ctx, "HttpCatalogHandler")

	var in model.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	review, supplier, err := h.service.AddReview(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviewCreated{Review: review, Supplier: supplier})
}
