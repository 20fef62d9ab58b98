package grpc

import (
	"context"

	"bizarre-bazaar/internal/model"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// CatalogClient calls CatalogService over an existing connection and decodes
// the Struct replies into model types.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) invoke(ctx context.Context, method string, in any, out any, opts ...grpc.CallOption) error {
	req, err := toStruct(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, resp, opts...); err != nil {
		return err
	}
	return fromStruct(resp, out)
}

// ListProducts returns the matching products and the host that served them.
func (c *CatalogClient) ListProducts(ctx context.Context, q model.ProductQuery, opts ...grpc.CallOption) ([]model.Product, string, error) {
	var out productList
	if err := c.invoke(ctx, MethodListProducts, q, &out, opts...); err != nil {
		return nil, "", err
	}
	return out.Products, out.Resolver, nil
}

func (c *CatalogClient) ListSuppliers(ctx context.Context, q model.SupplierQuery, opts ...grpc.CallOption) ([]model.Supplier, error) {
	var out supplierList
	if err := c.invoke(ctx, MethodListSuppliers, q, &out, opts...); err != nil {
		return nil, err
	}
	return out.Suppliers, nil
}

func (c *CatalogClient) ListReviews(ctx context.Context, q model.ReviewQuery, opts ...grpc.CallOption) ([]model.Review, error) {
	var out reviewList
	if err := c.invoke(ctx, MethodListReviews, q, &out, opts...); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

func (c *CatalogClient) AddSupplier(ctx context.Context, in model.SupplierInput, opts ...grpc.CallOption) (model.Supplier, error) {
	var out supplierReply
	if err := c.invoke(ctx, MethodAddSupplier, in, &out, opts...); err != nil {
		return model.Supplier{}, err
	}
	return out.Supplier, nil
}

func (c *CatalogClient) AddReview(ctx context.Context, in model.ReviewInput, opts ...grpc.CallOption) (model.Review, model.Supplier, error) {
	var out reviewReply
	if err := c.invoke(ctx, MethodAddReview, in, &out, opts...); err != nil {
		return model.Review{}, model.Supplier{}, err
	}
	return out.Review, out.Supplier, nil
}
