package hrv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const DaemonService_GetDaemonStatus_FullMethodName = "/hrdash.v1.DaemonService/GetDaemonStatus"

// DaemonServiceClient is the client API for hrdash.v1.DaemonService.
type DaemonServiceClient interface {
	GetDaemonStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type daemonServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDaemonServiceClient(cc grpc.ClientConnInterface) DaemonServiceClient {
	return &daemonServiceClient{cc}
}

func (c *daemonServiceClient) GetDaemonStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DaemonService_GetDaemonStatus_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DaemonServiceServer is the server API for hrdash.v1.DaemonService.
type DaemonServiceServer interface {
	GetDaemonStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedDaemonServiceServer can be embedded to have forward compatible implementations.
type UnimplementedDaemonServiceServer struct{}

func (UnimplementedDaemonServiceServer) GetDaemonStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDaemonStatus not implemented")
}

func RegisterDaemonServiceServer(s grpc.ServiceRegistrar, srv DaemonServiceServer) {
	s.RegisterService(&DaemonService_ServiceDesc, srv)
}

func _DaemonService_GetDaemonStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DaemonServiceServer).GetDaemonStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DaemonService_GetDaemonStatus_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DaemonServiceServer).GetDaemonStatus(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// DaemonService_ServiceDesc is the grpc.ServiceDesc for hrdash.v1.DaemonService.
var DaemonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "hrdash.v1.DaemonService",
	HandlerType: (*DaemonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDaemonStatus", Handler: _DaemonService_GetDaemonStatus_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hrdash/v1/daemon.proto",
}
