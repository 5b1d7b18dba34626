package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/contacts-server/internal/api/grpc/handler"
	"github.com/dtroode/contacts-server/internal/api/grpc/middleware"
	"github.com/dtroode/contacts-server/internal/api/grpc/rpc"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/validate"
)

// AuthService is the account service together with identity resolution.
type AuthService interface {
	handler.AuthService
	middleware.IdentityResolver
}

// Router registers the contacts gRPC services and their interceptors.
type Router struct {
	authService     AuthService
	usersService    handler.UsersService
	contactsService handler.ContactsService
	contextManager  model.ContextManager
	validator       *validate.Validator
	logger          *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	authService AuthService,
	usersService handler.UsersService,
	contactsService handler.ContactsService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		usersService:    usersService,
		contactsService: contactsService,
		contextManager:  contextManager,
		validator:       validate.New(),
		logger:          logger,
	}
}

// authSkip reports whether a call needs a bearer token. Only the Auth
// service is open.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+rpc.AuthServiceName+"/")
}

func (r *Router) recover(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panic", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}

// Register registers all gRPC services and middleware.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(r.recover)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)
	r.registerAuthRoutes(s)
	r.registerUsersRoutes(s)
	r.registerContactsRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.authService, r.validator, r.logger)
	rpc.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerUsersRoutes(server *grpc.Server) {
	usersHandler := handler.NewUsers(r.usersService, r.authService, r.contextManager, r.logger)
	rpc.RegisterUsersServer(server, usersHandler)
}

func (r *Router) registerContactsRoutes(server *grpc.Server) {
	contactsHandler := handler.NewContacts(r.contactsService, r.contextManager, r.validator, r.logger)
	rpc.RegisterContactsServer(server, contactsHandler)
}
