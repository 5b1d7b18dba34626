package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/contacts-server/internal/api/grpc/rpc"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// UsersService defines profile operations of the authenticated user.
type UsersService interface {
	Me(ctx context.Context, user model.User) (model.User, error)
}

var _ rpc.UsersServer = (*Users)(nil)

// Users handles contacts.v1.Users. Every call requires a resolved identity.
type Users struct {
	usersService   UsersService
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewUsers(usersService UsersService, authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Users {
	return &Users{
		usersService:   usersService,
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Users) currentUser(ctx context.Context) (model.User, error) {
	user, ok := h.contextManager.GetUserFromContext(ctx)
	if !ok {
		return model.User{}, status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
	}
	return user, nil
}

func (h *Users) Me(ctx context.Context, _ *rpc.Empty) (*rpc.User, error) {
	user, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	me, err := h.usersService.Me(ctx, user)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewUser(me), nil
}

// Logout forgets the refresh token of the caller.
func (h *Users) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.MessageResponse, error) {
	user, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.authService.Logout(ctx, user); err != nil {
		h.logger.Error("Users handler: logout failed",
			"email", user.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.MessageResponse{Message: "Logged out"}, nil
}
