// Package router assembles the chi routes of the HTTP surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/contacts-server/internal/api/http/handler"
	"github.com/dtroode/contacts-server/internal/api/http/middleware"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// AuthService confirms emails and resolves bearer tokens.
type AuthService interface {
	handler.EmailConfirmer
	middleware.IdentityResolver
}

// Router registers the HTTP routes.
type Router struct {
	authService    AuthService
	usersService   handler.AvatarService
	contextManager model.ContextManager
	checks         map[string]handler.Check
	maxAvatarBytes int64
	logger         *logger.Logger
}

func New(
	authService AuthService,
	usersService handler.AvatarService,
	contextManager model.ContextManager,
	checks map[string]handler.Check,
	maxAvatarBytes int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		usersService:   usersService,
		contextManager: contextManager,
		checks:         checks,
		maxAvatarBytes: maxAvatarBytes,
		logger:         logger,
	}
}

// Register builds the handler tree.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	health := handler.NewHealth(r.checks, r.logger)
	auth := handler.NewAuth(r.authService, r.logger)
	users := handler.NewUsers(r.usersService, r.contextManager, r.maxAvatarBytes, r.logger)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(logging.Handle)
	mux.Use(chimw.Recoverer)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(api chi.Router) {
		api.Get("/healthchecker", health.Healthchecker)
		api.Get("/auth/confirmed_email/{token}", auth.ConfirmedEmail)

		api.Route("/users", func(u chi.Router) {
			u.Use(authenticate.Handle)
			u.Patch("/avatar", users.UpdateAvatar)
			u.Get("/avatar", users.Avatar)
		})
	})

	return mux
}
