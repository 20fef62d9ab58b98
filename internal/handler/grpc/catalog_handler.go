package grpc

import (
	"context"
	"errors"
	"log/slog"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/service"
	"bizarre-bazaar/internal/utils"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type CatalogGRPCHandler struct {
	Service *service.CatalogService
}

var GrpcCatalogHandlerTracer = otel.Tracer("GrpcCatalogHandler")

func NewCatalogGRPCHandler(svc *service.CatalogService) *CatalogGRPCHandler {
	return &CatalogGRPCHandler{
		Service: svc,
	}
}

// Responses carry the serving host so load-balanced clients can tell
// replicas apart.
type productList struct {
	Resolver string          `json:"resolver"`
	Products []model.Product `json:"products"`
}

type supplierList struct {
	Resolver  string           `json:"resolver"`
	Suppliers []model.Supplier `json:"suppliers"`
}

type reviewList struct {
	Resolver string         `json:"resolver"`
	Reviews  []model.Review `json:"reviews"`
}

type supplierReply struct {
	Resolver string         `json:"resolver"`
	Supplier model.Supplier `json:"supplier"`
}

type reviewReply struct {
	Resolver string         `json:"resolver"`
	Review   model.Review   `json:"review"`
	Supplier model.Supplier `json:"supplier"`
}

func (h *CatalogGRPCHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, span := GrpcCatalogHandlerTracer.Start(ctx, "GrpcCatalogHandler.ListProducts")
	defer span.End()
	logger.Info(ctx, "GrpcCatalogHandler.ListProducts")

	var q model.ProductQuery
	if err := fromStruct(req, &q); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	products, err := h.Service.FilteredSortedProducts(ctx, q)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return reply(productList{Resolver: utils.Hostname(), Products: products})
}

func (h *CatalogGRPCHandler) ListSuppliers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, span := GrpcCatalogHandlerTracer.Start(ctx, "GrpcCatalogHandler.ListSuppliers")
	defer span.End()
	logger.Info(ctx, "GrpcCatalogHandler.ListSuppliers")

	var q model.SupplierQuery
	if err := fromStruct(req, &q); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return reply(supplierList{Resolver: utils.Hostname(), Suppliers: h.Service.FilteredSuppliers(ctx, q)})
}

func (h *CatalogGRPCHandler) ListReviews(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, span := GrpcCatalogHandlerTracer.Start(ctx, "GrpcCatalogHandler.ListReviews")
	defer span.End()
	logger.Info(ctx, "GrpcCatalogHandler.ListReviews")

	var q model.ReviewQuery
	if err := fromStruct(req, &q); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return reply(reviewList{Resolver: utils.Hostname(), Reviews: h.Service.Reviews(ctx, q)})
}

func (h *CatalogGRPCHandler) AddSupplier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, span := GrpcCatalogHandlerTracer.Start(ctx, "GrpcCatalogHandler.AddSupplier")
	defer span.End()
	logger.Info(ctx, "GrpcCatalogHandler.AddSupplier")

	var in model.SupplierInput
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	in, err := service.ValidateSupplierInput(in)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	created, err := h.Service.AddSupplier(ctx, in)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return reply(supplierReply{Resolver: utils.Hostname(), Supplier: created})
}

func (h *CatalogGRPCHandler) AddReview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, span := GrpcCatalogHandlerTracer.Start(ctx, "GrpcCatalogHandler.AddReview")
	defer span.End()
	logger.Info(ctx, "GrpcCatalogHandler.AddReview")

	var in model.ReviewInput
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	review, supplier, err := h.Service.AddReview(ctx, in)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return reply(reviewReply{Resolver: utils.Hostname(), Review: review, Supplier: supplier})
}

func reply(v any) (*structpb.Struct, error) {
	s, err := toStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

func toStatus(ctx context.Context, err error) error {
	switch {
	case service.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case service.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.Error(ctx, "Unhandled catalog error", slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}
