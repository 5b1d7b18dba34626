package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const UsersServiceName = "contacts.v1.Users"

type UsersServer interface {
	Me(context.Context, *Empty) (*User, error)
	Logout(context.Context, *Empty) (*MessageResponse, error)
}

var UsersServiceDesc = grpc.ServiceDesc{
	ServiceName: UsersServiceName,
	HandlerType: (*UsersServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(UsersServiceName, "Me", UsersServer.Me),
		unary(UsersServiceName, "Logout", UsersServer.Logout),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterUsersServer(s grpc.ServiceRegistrar, srv UsersServer) {
	s.RegisterService(&UsersServiceDesc, srv)
}

type UsersClient struct {
	cc grpc.ClientConnInterface
}

func NewUsersClient(cc grpc.ClientConnInterface) *UsersClient {
	return &UsersClient{cc: cc}
}

func (c *UsersClient) Me(ctx context.Context, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, UsersServiceName, "Me", &Empty{}, opts)
}

func (c *UsersClient) Logout(ctx context.Context, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, UsersServiceName, "Logout", &Empty{}, opts)
}
