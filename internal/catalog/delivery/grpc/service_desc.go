package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "catalog.v1.CatalogService"

const (
	methodBrowseItems    = "/" + ServiceName + "/BrowseItems"
	methodGetItem        = "/" + ServiceName + "/GetItem"
	methodToggleFavorite = "/" + ServiceName + "/ToggleFavorite"
	methodIsFavorite     = "/" + ServiceName + "/IsFavorite"
	methodListFavorites  = "/" + ServiceName + "/ListFavorites"
	methodGetTrending    = "/" + ServiceName + "/GetTrending"
)

// CatalogServiceServer is the server API for the catalog service.
// Messages are protobuf well-known types so no generated code is needed.
type CatalogServiceServer interface {
	BrowseItems(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	GetItem(context.Context, *wrapperspb.UInt32Value) (*structpb.Struct, error)
	ToggleFavorite(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error)
	IsFavorite(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error)
	ListFavorites(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetTrending(context.Context, *wrapperspb.Int32Value) (*structpb.ListValue, error)
}

// UnimplementedCatalogServiceServer can be embedded for forward compatibility
type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) BrowseItems(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BrowseItems not implemented")
}
func (UnimplementedCatalogServiceServer) GetItem(context.Context, *wrapperspb.UInt32Value) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetItem not implemented")
}
func (UnimplementedCatalogServiceServer) ToggleFavorite(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ToggleFavorite not implemented")
}
func (UnimplementedCatalogServiceServer) IsFavorite(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IsFavorite not implemented")
}
func (UnimplementedCatalogServiceServer) ListFavorites(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListFavorites not implemented")
}
func (UnimplementedCatalogServiceServer) GetTrending(context.Context, *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTrending not implemented")
}

// RegisterCatalogServiceServer registers srv on s
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// unaryHandler adapts a typed method into a grpc.MethodHandler
func unaryHandler[Req any, Resp any, PReq interface {
	*Req
}](fullMethod string, call func(CatalogServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogServiceDesc describes catalog.v1.CatalogService
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BrowseItems",
			Handler:    unaryHandler[structpb.Struct](methodBrowseItems, CatalogServiceServer.BrowseItems),
		},
		{
			MethodName: "GetItem",
			Handler:    unaryHandler[wrapperspb.UInt32Value](methodGetItem, CatalogServiceServer.GetItem),
		},
		{
			MethodName: "ToggleFavorite",
			Handler:    unaryHandler[wrapperspb.UInt32Value](methodToggleFavorite, CatalogServiceServer.ToggleFavorite),
		},
		{
			MethodName: "IsFavorite",
			Handler:    unaryHandler[wrapperspb.UInt32Value](methodIsFavorite, CatalogServiceServer.IsFavorite),
		},
		{
			MethodName: "ListFavorites",
			Handler:    unaryHandler[emptypb.Empty](methodListFavorites, CatalogServiceServer.ListFavorites),
		},
		{
			MethodName: "GetTrending",
			Handler:    unaryHandler[wrapperspb.Int32Value](methodGetTrending, CatalogServiceServer.GetTrending),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}

// CatalogServiceClient is the client API for the catalog service
type CatalogServiceClient interface {
	BrowseItems(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetItem(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	ToggleFavorite(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	IsFavorite(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	ListFavorites(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetTrending(ctx context.Context, in *wrapperspb.Int32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient creates a client bound to cc
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) BrowseItems(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, methodBrowseItems, in, opts)
}

func (c *catalogServiceClient) GetItem(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, methodGetItem, in, opts)
}

func (c *catalogServiceClient) ToggleFavorite(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return invoke[wrapperspb.BoolValue](ctx, c.cc, methodToggleFavorite, in, opts)
}

func (c *catalogServiceClient) IsFavorite(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return invoke[wrapperspb.BoolValue](ctx, c.cc, methodIsFavorite, in, opts)
}

func (c *catalogServiceClient) ListFavorites(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, methodListFavorites, in, opts)
}

func (c *catalogServiceClient) GetTrending(ctx context.Context, in *wrapperspb.Int32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, methodGetTrending, in, opts)
}
