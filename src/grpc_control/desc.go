package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "stocklens.v1.Control"

// ControlServer is the server API for the control service.
type ControlServer interface {
	Lookup(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Table(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Watchlist(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	RefreshWatchlist(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	UpdateWatchlist(context.Context, *structpb.ListValue) (*structpb.Struct, error)
}

// -----------------------------------------------------------------------------

// RegisterControlServer attaches srv to s.
func RegisterControlServer(s grpc.ServiceRegistrar, srv ControlServer) {
	s.RegisterService(&Control_ServiceDesc, srv)
}

// -----------------------------------------------------------------------------

// Control_ServiceDesc is written by hand; every message is a protobuf
// well-known type so no generated code is needed.
var Control_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Lookup", Handler: unaryHandler("Lookup", func(srv ControlServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
			return srv.Lookup(ctx, in)
		})},
		{MethodName: "Table", Handler: unaryHandler("Table", func(srv ControlServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.Table(ctx, in)
		})},
		{MethodName: "Watchlist", Handler: unaryHandler("Watchlist", func(srv ControlServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
			return srv.Watchlist(ctx, in)
		})},
		{MethodName: "RefreshWatchlist", Handler: unaryHandler("RefreshWatchlist", func(srv ControlServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
			return srv.RefreshWatchlist(ctx, in)
		})},
		{MethodName: "UpdateWatchlist", Handler: unaryHandler("UpdateWatchlist", func(srv ControlServer, ctx context.Context, in *structpb.ListValue) (*structpb.Struct, error) {
			return srv.UpdateWatchlist(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stocklens/v1/control.proto",
}

// -----------------------------------------------------------------------------

// unaryHandler adapts a typed method to grpc's untyped handler signature.
func unaryHandler[Req any, PReq interface {
	*Req
}](method string, call func(ControlServer, context.Context, PReq) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ControlServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ControlServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// ControlClient calls the control service over cc.
type ControlClient struct {
	cc grpc.ClientConnInterface
}

func NewControlClient(cc grpc.ClientConnInterface) *ControlClient {
	return &ControlClient{cc: cc}
}

func (c *ControlClient) invoke(ctx context.Context, method string, in any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ControlClient) Lookup(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Lookup", in, opts...)
}

func (c *ControlClient) Table(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Table", in, opts...)
}

func (c *ControlClient) Watchlist(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Watchlist", in, opts...)
}

func (c *ControlClient) RefreshWatchlist(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "RefreshWatchlist", in, opts...)
}

func (c *ControlClient) UpdateWatchlist(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "UpdateWatchlist", in, opts...)
}
