// Package hrv1 declares the hrdash.v1 gRPC services. Messages are protobuf
// well-known types; the helpers in messages.go give them Go shapes.
package hrv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	RecordService_ListDocuments_FullMethodName     = "/hrdash.v1.RecordService/ListDocuments"
	RecordService_UpdateStatus_FullMethodName      = "/hrdash.v1.RecordService/UpdateStatus"
	RecordService_CreateDocument_FullMethodName    = "/hrdash.v1.RecordService/CreateDocument"
	RecordService_WatchRecordEvents_FullMethodName = "/hrdash.v1.RecordService/WatchRecordEvents"
)

// RecordServiceClient is the client API for hrdash.v1.RecordService.
type RecordServiceClient interface {
	ListDocuments(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	WatchRecordEvents(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type recordServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordServiceClient(cc grpc.ClientConnInterface) RecordServiceClient {
	return &recordServiceClient{cc}
}

func (c *recordServiceClient) ListDocuments(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RecordService_ListDocuments_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordServiceClient) UpdateStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, RecordService_UpdateStatus_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordServiceClient) CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, RecordService_CreateDocument_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordServiceClient) WatchRecordEvents(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &RecordService_ServiceDesc.Streams[0], RecordService_WatchRecordEvents_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// RecordService_WatchRecordEventsClient is the client side of the event stream.
type RecordService_WatchRecordEventsClient = grpc.ServerStreamingClient[structpb.Struct]

// RecordServiceServer is the server API for hrdash.v1.RecordService.
type RecordServiceServer interface {
	ListDocuments(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	UpdateStatus(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	CreateDocument(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	WatchRecordEvents(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

// RecordService_WatchRecordEventsServer is the server side of the event stream.
type RecordService_WatchRecordEventsServer = grpc.ServerStreamingServer[structpb.Struct]

// UnimplementedRecordServiceServer can be embedded to have forward compatible implementations.
type UnimplementedRecordServiceServer struct{}

func (UnimplementedRecordServiceServer) ListDocuments(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDocuments not implemented")
}

func (UnimplementedRecordServiceServer) UpdateStatus(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateStatus not implemented")
}

func (UnimplementedRecordServiceServer) CreateDocument(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateDocument not implemented")
}

func (UnimplementedRecordServiceServer) WatchRecordEvents(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error {
	return status.Errorf(codes.Unimplemented, "method WatchRecordEvents not implemented")
}

func RegisterRecordServiceServer(s grpc.ServiceRegistrar, srv RecordServiceServer) {
	s.RegisterService(&RecordService_ServiceDesc, srv)
}

func _RecordService_ListDocuments_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordServiceServer).ListDocuments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordService_ListDocuments_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecordServiceServer).ListDocuments(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordService_UpdateStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordServiceServer).UpdateStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordService_UpdateStatus_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecordServiceServer).UpdateStatus(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordService_CreateDocument_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordServiceServer).CreateDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordService_CreateDocument_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecordServiceServer).CreateDocument(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordService_WatchRecordEvents_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RecordServiceServer).WatchRecordEvents(m, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// RecordService_ServiceDesc is the grpc.ServiceDesc for hrdash.v1.RecordService.
var RecordService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "hrdash.v1.RecordService",
	HandlerType: (*RecordServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDocuments", Handler: _RecordService_ListDocuments_Handler},
		{MethodName: "UpdateStatus", Handler: _RecordService_UpdateStatus_Handler},
		{MethodName: "CreateDocument", Handler: _RecordService_CreateDocument_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchRecordEvents",
			Handler:       _RecordService_WatchRecordEvents_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "hrdash/v1/records.proto",
}
