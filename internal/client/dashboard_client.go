package client

import (
	"context"
	"net/http"
	"net/url"

	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/view"
)

const sessionHeader = "X-Session-ID"

// DashboardClient drives one dashboard session over HTTP.
type DashboardClient struct {
	http      *HTTPClient
	sessionID string
}

func NewDashboardClient(c *HTTPClient) *DashboardClient {
	return &DashboardClient{http: c}
}

func (d *DashboardClient) SessionID() string {
	return d.sessionID
}

// Open starts a new server-side session and binds this client to it.
func (d *DashboardClient) Open(ctx context.Context) error {
	var out struct {
		SessionID string `json:"sessionId"`
	}
	if err := d.http.Post(ctx, "/session", nil, &out); err != nil {
		return err
	}
	d.sessionID = out.SessionID
	return nil
}

func (d *DashboardClient) Close(ctx context.Context) error {
	return d.call(ctx, http.MethodDelete, "/session", nil, nil)
}

func (d *DashboardClient) call(ctx context.Context, method, path string, body, out any) error {
	return d.http.Do(ctx, RequestOptions{
		Method:  method,
		Path:    path,
		Body:    body,
		Headers: map[string]string{sessionHeader: d.sessionID},
	}, out)
}

func (d *DashboardClient) Login(ctx context.Context, in model.LoginInput) (model.AuthUser, error) {
	var u model.AuthUser
	err := d.call(ctx, http.MethodPost, "/session/login", in, &u)
	return u, err
}

func (d *DashboardClient) Signup(ctx context.Context, in model.SignupInput) (model.AuthUser, error) {
	var u model.AuthUser
	err := d.call(ctx, http.MethodPost, "/session/signup", in, &u)
	return u, err
}

func (d *DashboardClient) Logout(ctx context.Context) error {
	return d.call(ctx, http.MethodPost, "/session/logout", nil, nil)
}

func (d *DashboardClient) SetSection(ctx context.Context, s model.Section) error {
	return d.call(ctx, http.MethodPost, "/session/section", map[string]model.Section{"section": s}, nil)
}

func (d *DashboardClient) SetProductQuery(ctx context.Context, q model.ProductQuery) (model.ProductQuery, error) {
	var out model.ProductQuery
	err := d.call(ctx, http.MethodPost, "/session/products-query", q, &out)
	return out, err
}

func (d *DashboardClient) ToggleSortOrder(ctx context.Context) (model.SortOrder, error) {
	var out struct {
		SortOrder model.SortOrder `json:"sortOrder"`
	}
	err := d.call(ctx, http.MethodPost, "/session/sort-order", nil, &out)
	return out.SortOrder, err
}

// SubmitSupplier fills the supplier form and submits it.
func (d *DashboardClient) SubmitSupplier(ctx context.Context, in model.SupplierInput) (model.Supplier, error) {
	if err := d.call(ctx, http.MethodPut, "/session/supplier-form", in, nil); err != nil {
		return model.Supplier{}, err
	}
	var out model.Supplier
	err := d.call(ctx, http.MethodPost, "/session/supplier-form/submit", nil, &out)
	return out, err
}

// SubmitReview fills the review form and submits it.
func (d *DashboardClient) SubmitReview(ctx context.Context, in model.ReviewInput) (model.Review, model.Supplier, error) {
	if err := d.call(ctx, http.MethodPut, "/session/review-form", in, nil); err != nil {
		return model.Review{}, model.Supplier{}, err
	}
	var out struct {
		Review   model.Review   `json:"review"`
		Supplier model.Supplier `json:"supplier"`
	}
	err := d.call(ctx, http.MethodPost, "/session/review-form/submit", nil, &out)
	return out.Review, out.Supplier, err
}

func (d *DashboardClient) View(ctx context.Context) (view.Page, error) {
	var page view.Page
	err := d.call(ctx, http.MethodGet, "/session/view", nil, &page)
	return page, err
}

// Products queries the catalog directly, outside the session.
func (d *DashboardClient) Products(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	query := url.Values{}
	for k, v := range map[string]string{
		"category":  string(q.Category),
		"search":    q.SearchText,
		"sortBy":    string(q.SortBy),
		"sortOrder": string(q.SortOrder),
	} {
		if v != "" {
			query.Set(k, v)
		}
	}
	var out []model.Product
	err := d.http.Get(ctx, "/products", query, &out)
	return out, err
}
