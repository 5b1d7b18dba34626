package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/contacts-server/internal/api/grpc/context"
	grpcRouter "github.com/dtroode/contacts-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/contacts-server/internal/api/grpc/server"
	"github.com/dtroode/contacts-server/internal/api/http/handler"
	httpRouter "github.com/dtroode/contacts-server/internal/api/http/router"
	httpServer "github.com/dtroode/contacts-server/internal/api/http/server"
	cacheredis "github.com/dtroode/contacts-server/internal/cache/redis"
	"github.com/dtroode/contacts-server/internal/config"
	"github.com/dtroode/contacts-server/internal/hasher"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/mailer"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/repository/postgres"
	"github.com/dtroode/contacts-server/internal/server"
	"github.com/dtroode/contacts-server/internal/service"
	storage "github.com/dtroode/contacts-server/internal/storage/minio"
	"github.com/dtroode/contacts-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	rdb, err := cacheredis.NewClient(ctx, cfg.Redis.URL, logger)
	if err != nil {
		logger.Fatal("failed to initialize redis", "error", err)
	}
	defer rdb.Close()

	avatars, err := storage.Connect(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	identityCache := cacheredis.NewIdentityCache(rdb, cfg.Redis.UserTTL, logger)
	codec := token.NewJWT(cfg.JWT.Secret,
		token.WithTTL(model.ScopeAccess, cfg.JWT.AccessTTL),
		token.WithTTL(model.ScopeRefresh, cfg.JWT.RefreshTTL),
		token.WithTTL(model.ScopeEmailVerify, cfg.JWT.EmailTTL),
	)
	confirmURL := cfg.HTTP.PublicURL + "/api/auth/confirmed_email/"

	authService := service.NewAuth(
		userRepo,
		identityCache,
		hasher.NewBCrypt(cfg.BCrypt.Cost),
		codec,
		mailer.NewLogMailer(cfg.Mail.From, logger),
		confirmURL,
		logger,
	)
	usersService := service.NewUsers(userRepo, identityCache, avatars, logger)
	contactsService := service.NewContacts(contactRepo, logger)
	ctxMgr := grpcctx.NewManager()

	gr := grpcRouter.New(authService, usersService, contactsService, ctxMgr, logger).Register()
	reflection.Register(gr)

	checks := map[string]handler.Check{
		"database": db.Ping,
		"redis": func(ctx context.Context) error {
			return cacheredis.Ping(ctx, rdb)
		},
	}
	hr := httpRouter.New(authService, usersService, ctxMgr, checks, cfg.HTTP.MaxAvatarBytes, logger).Register()

	servers := []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{grpcServer.NewGRPCServer(gr, fmt.Sprintf(":%s", cfg.GRPC.Port)), server.NewSecurityLayer(cfg.GRPC)},
		{httpServer.NewHTTPServer(hr, fmt.Sprintf(":%s", cfg.HTTP.Port)), server.NewPlainListener()},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "name", s.Name(), "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "name", s.Name(), "error", err)
				stop()
			}
		}(s.srv, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "name", s.srv.Name(), "error", err, "address", s.srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
