package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"isp-admin/internal/config"
	"isp-admin/internal/database"
	"isp-admin/internal/handler"
	"isp-admin/internal/middleware"
	"isp-admin/internal/repository"
	"isp-admin/internal/router"
	"isp-admin/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

// New wires the whole pipeline: config → database → repositories → services
// → middleware → handlers → router. Nothing is reachable through globals.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	packageRepo := repository.NewPackageRepository(pool)
	voucherRepo := repository.NewVoucherRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	packageService := service.NewPackageService(packageRepo)
	voucherService := service.NewVoucherService(voucherRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Packages: handler.NewPackageHandler(packageService),
		Vouchers: handler.NewVoucherHandler(voucherService),
	}, db)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
