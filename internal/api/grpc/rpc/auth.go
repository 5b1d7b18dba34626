package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// AuthServiceName is the full name of the unauthenticated auth service.
const AuthServiceName = "contacts.v1.Auth"

type AuthServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	RequestEmail(context.Context, *RequestEmailRequest) (*MessageResponse, error)
	ConfirmEmail(context.Context, *ConfirmEmailRequest) (*MessageResponse, error)
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AuthServiceName, "Signup", AuthServer.Signup),
		unary(AuthServiceName, "Login", AuthServer.Login),
		unary(AuthServiceName, "RefreshToken", AuthServer.RefreshToken),
		unary(AuthServiceName, "RequestEmail", AuthServer.RequestEmail),
		unary(AuthServiceName, "ConfirmEmail", AuthServer.ConfirmEmail),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, AuthServiceName, "Signup", in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, AuthServiceName, "Login", in, opts)
}

func (c *AuthClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, AuthServiceName, "RefreshToken", in, opts)
}

func (c *AuthClient) RequestEmail(ctx context.Context, in *RequestEmailRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthServiceName, "RequestEmail", in, opts)
}

func (c *AuthClient) ConfirmEmail(ctx context.Context, in *ConfirmEmailRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, AuthServiceName, "ConfirmEmail", in, opts)
}
