package grpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const catalogProtoFile = "bazaar/catalog/v1/catalog.proto"

var catalogMethods = []string{"ListProducts", "ListSuppliers", "ListReviews", "AddSupplier", "AddReview"}

// catalogFileDescriptor describes CatalogService as protoc would for a
// catalog.proto whose methods all take and return google.protobuf.Struct.
func catalogFileDescriptor() *descriptorpb.FileDescriptorProto {
	structName := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())
	methods := make([]*descriptorpb.MethodDescriptorProto, len(catalogMethods))
	for i, name := range catalogMethods {
		methods[i] = &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(structName),
			OutputType: proto.String(structName),
		}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(catalogProtoFile),
		Package:    proto.String("bazaar.catalog.v1"),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("CatalogService"),
			Method: methods,
		}},
		Syntax: proto.String("proto3"),
	}
}

// registerCatalogFile adds the descriptor to reg so server reflection can
// describe and invoke the service.
func registerCatalogFile(reg *protoregistry.Files) (protoreflect.FileDescriptor, error) {
	if fd, err := reg.FindFileByPath(catalogProtoFile); err == nil {
		return fd, nil
	}
	fd, err := protodesc.NewFile(catalogFileDescriptor(), reg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", catalogProtoFile, err)
	}
	if err := reg.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("register %s: %w", catalogProtoFile, err)
	}
	return fd, nil
}

func init() {
	if _, err := registerCatalogFile(protoregistry.GlobalFiles); err != nil {
		panic(err)
	}
}
