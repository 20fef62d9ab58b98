package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The catalog service is described by hand. Every message is a
// google.protobuf.Struct, so no generated code is needed. The matching file
// descriptor is registered from catalogFileDescriptor for server reflection.
const ServiceName = "bazaar.catalog.v1.CatalogService"

const (
	MethodListProducts  = "/" + ServiceName + "/ListProducts"
	MethodListSuppliers = "/" + ServiceName + "/ListSuppliers"
	MethodListReviews   = "/" + ServiceName + "/ListReviews"
	MethodAddSupplier   = "/" + ServiceName + "/AddSupplier"
	MethodAddReview     = "/" + ServiceName + "/AddReview"
)

type CatalogServiceServer interface {
	ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSuppliers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListReviews(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddSupplier(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddReview(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

// unaryHandler adapts one CatalogServiceServer method to grpc.MethodDesc.
func unaryHandler(fullMethod string, call func(CatalogServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: unaryHandler(MethodListProducts, CatalogServiceServer.ListProducts)},
		{MethodName: "ListSuppliers", Handler: unaryHandler(MethodListSuppliers, CatalogServiceServer.ListSuppliers)},
		{MethodName: "ListReviews", Handler: unaryHandler(MethodListReviews, CatalogServiceServer.ListReviews)},
		{MethodName: "AddSupplier", Handler: unaryHandler(MethodAddSupplier, CatalogServiceServer.AddSupplier)},
		{MethodName: "AddReview", Handler: unaryHandler(MethodAddReview, CatalogServiceServer.AddReview)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: catalogProtoFile,
}
