package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
	pb "github.com/afoley587/coding-challenges-2025/user-records/proto"
)

type DialConfig struct {
	Address    string
	Insecure   bool
	RootCA     string // optional root CA cert
	ClientCert string // optional client cert (mTLS)
	ClientKey  string // optional client key (mTLS)
}

type GRPCClient struct {
	conn *grpc.ClientConn
	rpc  pb.UserRecordsClient
}

func NewClient(cfg DialConfig) (*GRPCClient, error) {
	conn, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to dial server: %w", err)
	}
	return &GRPCClient{conn: conn, rpc: pb.NewUserRecordsClient(conn)}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) AddUser(ctx context.Context, u user.User) (user.User, error) {
	out, err := c.rpc.AddUser(ctx, pb.ToStruct(u))
	if err != nil {
		return user.User{}, fmt.Errorf("client.AddUser failed: %w", err)
	}
	return pb.FromStruct(out)
}

// GetUser fetches a user by id.  A NotFound status from the server is
// reported as ok == false with a nil error.
func (c *GRPCClient) GetUser(ctx context.Context, id int64) (user.User, bool, error) {
	out, err := c.rpc.GetUser(ctx, wrapperspb.Int64(id))
	if status.Code(err) == codes.NotFound {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, fmt.Errorf("client.GetUser failed: %w", err)
	}
	u, err := pb.FromStruct(out)
	if err != nil {
		return user.User{}, false, err
	}
	return u, true, nil
}

func (c *GRPCClient) ListUsers(ctx context.Context) ([]user.User, error) {
	stream, err := c.rpc.ListUsers(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fmt.Errorf("client.ListUsers failed: %w", err)
	}
	return drain(stream)
}

func (c *GRPCClient) ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	stream, err := c.rpc.ListUsersByRole(ctx, wrapperspb.String(role.String()))
	if err != nil {
		return nil, fmt.Errorf("client.ListUsersByRole failed: %w", err)
	}
	return drain(stream)
}

// drain reads a user stream to EOF.
func drain(stream grpc.ServerStreamingClient[structpb.Struct]) ([]user.User, error) {
	users := make([]user.User, 0)
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return users, nil
		}
		if err != nil {
			return nil, fmt.Errorf("stream recv failed: %w", err)
		}
		u, err := pb.FromStruct(msg)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
}
