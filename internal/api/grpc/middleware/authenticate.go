package middleware

import (
	"context"
	"errors"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// IdentityResolver resolves the user behind a bearer access token.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, bearer string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the user into context.
type Authenticate struct {
	resolver       IdentityResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver IdentityResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the bearer token from the authorization metadata, resolves
// it and returns a context carrying the user.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
	}

	user, err := m.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
		}
		m.logger.Error("Authenticate: failed to resolve identity", "error", err.Error())
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return m.contextManager.SetUserToContext(ctx, user), nil
}
