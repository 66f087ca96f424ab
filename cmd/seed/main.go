// Command seed provisions the initial admin account. It is idempotent: when
// the username already exists nothing is written.
//
// Credentials default to admin/admin123 and can be overridden with
// ADMIN_USERNAME and ADMIN_PASSWORD.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"isp-admin/internal/config"
	"isp-admin/internal/database"
	"isp-admin/internal/logger"
	"isp-admin/internal/repository"
	"isp-admin/internal/service"
)

func main() {
	logHandler := logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	if err := run(context.Background()); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	username := getenv("ADMIN_USERNAME", "admin")
	password := getenv("ADMIN_PASSWORD", "admin123")

	adminRepo := repository.NewAdminRepository(db.Pool)
	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)

	if existing, found, err := adminRepo.FindByUsername(ctx, username); err != nil {
		return err
	} else if found {
		slog.Warn("admin already exists, skipping", "id", existing.ID, "username", existing.Username)
		return nil
	}

	hash, err := authService.HashPassword(password)
	if err != nil {
		return err
	}

	admin, err := adminRepo.Create(ctx, username, hash, "admin")
	if err != nil {
		return err
	}

	slog.Info("admin user created", "id", admin.ID, "username", admin.Username, "role", admin.Role)
	return nil
}

func getenv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
