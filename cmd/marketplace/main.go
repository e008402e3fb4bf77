package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/services"
	"github.com/sercandadas/haliyol-marketplace-service/internal/config"
	"github.com/sercandadas/haliyol-marketplace-service/internal/infrastructure/db/postgres"
	rest "github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/chi"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/middleware"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/limiter"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)

	db, err := postgres.Connect(cfg, logger)
	if err != nil {
		return err
	}

	// Check connectivity and DSN correctness.
	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	// Close connection.
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(err)
		}
		_ = logger.Sync()
	}()

	// Create default transaction manager for database/sql package.
	trManager := manager.Must(
		trmsql.NewDefaultFactory(db),
		manager.WithCtxManager(trmcontext.DefaultManager),
	)

	// Init repositories.
	userRepo, err := postgres.NewUserRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init user repository: %w", err)
	}
	sessionRepo, err := postgres.NewSessionRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init session repository: %w", err)
	}
	companyRepo, err := postgres.NewCompanyRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init company repository: %w", err)
	}
	orderRepo, err := postgres.NewOrderRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init order repository: %w", err)
	}
	settingsRepo, err := postgres.NewSettingsRepository(db, trmsql.DefaultCtxGetter)
	if err != nil {
		return fmt.Errorf("failed to init settings repository: %w", err)
	}

	// Init services.
	oauthClient, err := services.NewOAuthClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to init oauth client: %w", err)
	}

	authService, err := services.NewAuthService(
		userRepo, sessionRepo, companyRepo, oauthClient, trManager, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init auth service: %w", err)
	}
	orderService, err := services.NewOrderService(orderRepo, companyRepo, trManager, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init order service: %w", err)
	}
	companyService, err := services.NewCompanyService(companyRepo, orderRepo, logger)
	if err != nil {
		return fmt.Errorf("failed to init company service: %w", err)
	}
	adminService, err := services.NewAdminService(
		userRepo, companyRepo, orderRepo, sessionRepo, trManager, logger)
	if err != nil {
		return fmt.Errorf("failed to init admin service: %w", err)
	}
	settingsService, err := services.NewSettingsService(settingsRepo)
	if err != nil {
		return fmt.Errorf("failed to init settings service: %w", err)
	}

	// Create root router.
	router := rest.InitChi(logger)

	// Session middleware shared by the protected route groups.
	authMiddleware := rest.MiddlewareFunc(middleware.Auth(authService))

	// Rate limiter for the credential endpoints.
	authLimiter := limiter.NewDynamicRateLimiter(cfg.RateLimit.Interval, cfg.RateLimit.Burst)

	rest.NewPublicController(settingsService, logger, rest.ChiServerOptions{
		BaseURL:    "/api",
		BaseRouter: router,
	})

	rest.NewAuthController(
		authService, cfg.Session.Expiration, authLimiter, authMiddleware, logger,
		rest.ChiServerOptions{
			BaseURL:    "/api",
			BaseRouter: router,
		})

	rest.NewOrderController(orderService, logger, rest.ChiServerOptions{
		BaseURL:     "/api",
		BaseRouter:  router,
		Middlewares: []rest.MiddlewareFunc{authMiddleware},
	})

	rest.NewCompanyController(companyService, logger, rest.ChiServerOptions{
		BaseURL:     "/api",
		BaseRouter:  router,
		Middlewares: []rest.MiddlewareFunc{authMiddleware},
	})

	rest.NewAdminController(adminService, settingsService, logger, rest.ChiServerOptions{
		BaseURL:     "/api",
		BaseRouter:  router,
		Middlewares: []rest.MiddlewareFunc{authMiddleware},
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           router,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		signal := <-sig

		logger.With(serverCtx, "signal", signal.String()).
			Infof("Shutting down server with %s timeout",
				cfg.HTTPServer.ShutdownTimeout)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("Server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped or force exit if timeout exceeded.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}
