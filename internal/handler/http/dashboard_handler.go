package http

import (
	"context"
	"net/http"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/service"
	"bizarre-bazaar/internal/view"

	"go.opentelemetry.io/otel"
)

// SessionHeader carries the dashboard session id on every /session/ call.
const SessionHeader = "X-Session-ID"

type DashboardHandler struct {
	sessions *service.SessionService
}

var HttpDashboardHandlerTracer = otel.Tracer("HttpDashboardHandler")

func NewDashboardHandler(sessions *service.SessionService) *DashboardHandler {
	return &DashboardHandler{
		sessions: sessions,
	}
}

type sessionOpened struct {
	SessionID string `json:"sessionId"`
}

func (h *DashboardHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpDashboardHandlerTracer.Start(r.Context(), "HttpDashboardHandler.Open")
	defer span.End()

	id, _ := h.sessions.Open(ctx)
	w.Header().Set(SessionHeader, id)
	writeJSON(w, http.StatusCreated, sessionOpened{SessionID: id})
}

func (h *DashboardHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpDashboardHandlerTracer.Start(r.Context(), "HttpDashboardHandler.Close")
	defer span.End()

	if err := h.sessions.Close(ctx, r.Header.Get(SessionHeader)); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the dashboard named by the request header and starts the
// handler span.
func (h *DashboardHandler) session(w http.ResponseWriter, r *http.Request, name string) (context.Context, *service.Dashboard, func(), bool) {
	ctx, span := HttpDashboardHandlerTracer.Start(r.Context(), "HttpDashboardHandler."+name)
	logger.Info(ctx, "HttpDashboardHandler")

	d, err := h.sessions.Get(r.Header.Get(SessionHeader))
	if err != nil {
		writeError(ctx, w, err)
		span.End()
		return ctx, nil, nil, false
	}
	return ctx, d, func() { span.End() }, true
}

func (h *DashboardHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "Login")
	if !ok {
		return
	}
	defer end()

	var in model.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	user, err := d.Login(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *DashboardHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "Signup")
	if !ok {
		return
	}
	defer end()

	var in model.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	user, err := d.Signup(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *DashboardHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "Logout")
	if !ok {
		return
	}
	defer end()

	d.Logout(ctx)
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) ToggleAuthMode(w http.ResponseWriter, r *http.Request) {
	_, d, end, ok := h.session(w, r, "ToggleAuthMode")
	if !ok {
		return
	}
	defer end()

	writeJSON(w, http.StatusOK, map[string]service.AuthMode{"mode": d.ToggleAuthMode()})
}

func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "View")
	if !ok {
		return
	}
	defer end()

	st, err := d.State(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Render(st))
}

func (h *DashboardHandler) SetSection(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "SetSection")
	if !ok {
		return
	}
	defer end()

	var in struct {
		Section model.Section `json:"section"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := d.SetSection(in.Section); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *DashboardHandler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "ToggleSidebar")
	if !ok {
		return
	}
	defer end()

	open, err := d.ToggleSidebar()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sidebarOpen": open})
}

func (h *DashboardHandler) SetProductQuery(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "SetProductQuery")
	if !ok {
		return
	}
	defer end()

	var in model.ProductQuery
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	q, err := d.SetProductQuery(in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *DashboardHandler) ToggleSortOrder(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "ToggleSortOrder")
	if !ok {
		return
	}
	defer end()

	order, err := d.ToggleSortOrder()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.SortOrder{"sortOrder": order})
}

func (h *DashboardHandler) SetSupplierQuery(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "SetSupplierQuery")
	if !ok {
		return
	}
	defer end()

	var in model.SupplierQuery
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := d.SetSupplierQuery(in); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *DashboardHandler) UpdateSupplierForm(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "UpdateSupplierForm")
	if !ok {
		return
	}
	defer end()

	var in model.SupplierInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := d.UpdateSupplierForm(in); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *DashboardHandler) SubmitSupplier(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "SubmitSupplier")
	if !ok {
		return
	}
	defer end()

	created, err := d.SubmitSupplier(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DashboardHandler) UpdateReviewForm(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "UpdateReviewForm")
	if !ok {
		return
	}
	defer end()

	var in model.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := d.UpdateReviewForm(in); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *DashboardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	ctx, d, end, ok := h.session(w, r, "SubmitReview")
	if !ok {
		return
	}
	defer end()

	review, supplier, err := d.SubmitReview(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviewCreated{Review: review, Supplier: supplier})
}
