// Package proto defines the userrecords.v1.UserRecords gRPC service.
//
// The service is expressed entirely in protobuf well-known types so it
// needs no generated message code: a user travels as a
// google.protobuf.Struct with the fields id (a decimal string), name,
// email and role.  Lookup ids go as Int64Value and roles as
// StringValue.  The descriptor and stubs below follow the layout
// protoc-gen-go-grpc produces for userrecords/v1/userrecords.proto.
package proto

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
	ServiceName = "userrecords.v1.UserRecords"

	UserRecords_AddUser_FullMethodName         = "/userrecords.v1.UserRecords/AddUser"
	UserRecords_GetUser_FullMethodName         = "/userrecords.v1.UserRecords/GetUser"
	UserRecords_ListUsers_FullMethodName       = "/userrecords.v1.UserRecords/ListUsers"
	UserRecords_ListUsersByRole_FullMethodName = "/userrecords.v1.UserRecords/ListUsersByRole"
)

// UserRecordsClient is the client API for the UserRecords service.
type UserRecordsClient interface {
	AddUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetUser(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
	ListUsersByRole(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type userRecordsClient struct {
	cc grpc.ClientConnInterface
}

func NewUserRecordsClient(cc grpc.ClientConnInterface) UserRecordsClient {
	return &userRecordsClient{cc}
}

func (c *userRecordsClient) AddUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, UserRecords_AddUser_FullMethodName, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userRecordsClient) GetUser(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, UserRecords_GetUser_FullMethodName, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userRecordsClient) ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &UserRecords_ServiceDesc.Streams[0], UserRecords_ListUsers_FullMethodName, cOpts...)
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

func (c *userRecordsClient) ListUsersByRole(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &UserRecords_ServiceDesc.Streams[1], UserRecords_ListUsersByRole_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// UserRecordsServer is the server API for the UserRecords service.
// Implementations must embed UnimplementedUserRecordsServer.
type UserRecordsServer interface {
	AddUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUser(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListUsers(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
	ListUsersByRole(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error
	mustEmbedUnimplementedUserRecordsServer()
}

// UnimplementedUserRecordsServer returns Unimplemented for every method.
type UnimplementedUserRecordsServer struct{}

func (UnimplementedUserRecordsServer) AddUser(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddUser not implemented")
}
func (UnimplementedUserRecordsServer) GetUser(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedUserRecordsServer) ListUsers(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error {
	return status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedUserRecordsServer) ListUsersByRole(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error {
	return status.Error(codes.Unimplemented, "method ListUsersByRole not implemented")
}
func (UnimplementedUserRecordsServer) mustEmbedUnimplementedUserRecordsServer() {}

func RegisterUserRecordsServer(s grpc.ServiceRegistrar, srv UserRecordsServer) {
	s.RegisterService(&UserRecords_ServiceDesc, srv)
}

func _UserRecords_AddUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserRecordsServer).AddUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: UserRecords_AddUser_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserRecordsServer).AddUser(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _UserRecords_GetUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserRecordsServer).GetUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: UserRecords_GetUser_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserRecordsServer).GetUser(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _UserRecords_ListUsers_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UserRecordsServer).ListUsers(m, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

func _UserRecords_ListUsersByRole_Handler(srv any, stream grpc.ServerStream) error {
	m := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UserRecordsServer).ListUsersByRole(m, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

// UserRecords_ServiceDesc is the grpc.ServiceDesc for the UserRecords
// service.
var UserRecords_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserRecordsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddUser",
			Handler:    _UserRecords_AddUser_Handler,
		},
		{
			MethodName: "GetUser",
			Handler:    _UserRecords_GetUser_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ListUsers",
			Handler:       _UserRecords_ListUsers_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "ListUsersByRole",
			Handler:       _UserRecords_ListUsersByRole_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "userrecords/v1/userrecords.proto",
}
