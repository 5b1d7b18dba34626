package handler

import (
	"context"

	"github.com/dtroode/contacts-server/internal/api/grpc/rpc"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/validate"
)

// AuthService defines the account operations exposed over gRPC.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, user model.User) error
	RequestEmail(ctx context.Context, email string) error
	ConfirmEmail(ctx context.Context, token string) (bool, error)
}

var _ rpc.AuthServer = (*Auth)(nil)

// Auth handles the unauthenticated contacts.v1.Auth service.
type Auth struct {
	authService AuthService
	validator   *validate.Validator
	logger      *logger.Logger
}

func NewAuth(authService AuthService, validator *validate.Validator, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		validator:   validator,
		logger:      logger,
	}
}

// Signup registers an account and sends the confirmation mail.
func (h *Auth) Signup(ctx context.Context, req *rpc.SignupRequest) (*rpc.SignupResponse, error) {
	h.logger.Debug("Auth handler: processing signup request",
		"email", req.Email)

	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	user, err := h.authService.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.SignupResponse{
		User:   rpc.NewUser(user),
		Detail: "User successfully created. Check your email for confirmation.",
	}, nil
}

// Login exchanges credentials for a token pair.
func (h *Auth) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.TokenResponse, error) {
	h.logger.Debug("Auth handler: processing login request",
		"email", req.Email)

	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	pair, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewTokenResponse(pair), nil
}

// RefreshToken rotates a refresh token.
func (h *Auth) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.TokenResponse, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	pair, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, handleError(err)
	}

	return rpc.NewTokenResponse(pair), nil
}

// RequestEmail resends the confirmation mail. The answer does not reveal
// whether the email is registered.
func (h *Auth) RequestEmail(ctx context.Context, req *rpc.RequestEmailRequest) (*rpc.MessageResponse, error) {
	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	if err := h.authService.RequestEmail(ctx, req.Email); err != nil {
		h.logger.Error("Auth handler: request email failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.MessageResponse{Message: "Check your email for confirmation."}, nil
}

func (h *Auth) ConfirmEmail(ctx context.Context, req *rpc.ConfirmEmailRequest) (*rpc.MessageResponse, error) {
	if err := h.validator.Struct(req); err != nil {
		return nil, handleError(err)
	}

	already, err := h.authService.ConfirmEmail(ctx, req.Token)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.MessageResponse{Message: confirmMessage(already)}, nil
}

func confirmMessage(alreadyConfirmed bool) string {
	if alreadyConfirmed {
		return "Your email is already confirmed"
	}
	return "Email confirmed"
}
