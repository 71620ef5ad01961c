package server

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/store"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
	pb "github.com/afoley587/coding-challenges-2025/user-records/proto"
)

// grpcServer implements the UserRecords service by delegating
// operations to a UserStore.  It contains no storage logic of its own.
//
// Use NewGRPCServer to construct an instance.
type grpcServer struct {
	pb.UnimplementedUserRecordsServer
	store store.UserStore
}

// NewGRPCServer constructs a gRPC service implementation backed by the
// provided store.
func NewGRPCServer(store store.UserStore) pb.UserRecordsServer {
	return &grpcServer{store: store}
}

// AddUser appends the user to the store and echoes it back.  A
// malformed user or an unknown role yields InvalidArgument.
func (s *grpcServer) AddUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	u, err := pb.FromStruct(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid user: %v", err)
	}
	added, err := s.store.AddUser(ctx, u)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "add user failed: %v", err)
	}
	return pb.ToStruct(added), nil
}

// GetUser returns the first user added with the requested id.  If the
// user is not found, a NotFound status code is returned.
func (s *grpcServer) GetUser(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	u, ok, err := s.store.GetUser(ctx, req.GetValue())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get user failed: %v", err)
	}
	if !ok {
		return nil, status.Errorf(codes.NotFound, "user %d not found", req.GetValue())
	}
	return pb.ToStruct(u), nil
}

// ListUsers streams all users to the client in insertion order.  If no
// users exist, the stream is closed without sending any messages.
func (s *grpcServer) ListUsers(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	users, err := s.store.ListUsers(stream.Context())
	if err != nil {
		return status.Errorf(codes.Internal, "list users failed: %v", err)
	}
	return sendAll(stream, users)
}

// ListUsersByRole streams the users holding the requested role.
func (s *grpcServer) ListUsersByRole(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	if req == nil || strings.TrimSpace(req.GetValue()) == "" {
		return status.Error(codes.InvalidArgument, "role is required")
	}
	role, err := user.ParseRole(req.GetValue())
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	users, err := s.store.ListUsersByRole(stream.Context(), role)
	if err != nil {
		return status.Errorf(codes.Internal, "list users by role failed: %v", err)
	}
	return sendAll(stream, users)
}

func sendAll(stream grpc.ServerStreamingServer[structpb.Struct], users []user.User) error {
	for _, u := range users {
		if err := stream.Send(pb.ToStruct(u)); err != nil {
			return err
		}
	}
	return nil
}
