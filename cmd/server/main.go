package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JoshCLWren/TrailGuard/internal/app/routes"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/database"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// @title        TrailGuard API
// @version      1.0
// @description  Trail safety backend: devices, breadcrumbs, check-ins, family, settings, SOS and messages.
// @BasePath     /
func main() {
	if err := logger.SetupLogger(logger.DefaultOptions()); err != nil {
		fmt.Printf("failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// the environment may already be set by other means
	if err := godotenv.Load(); err != nil {
		logger.Warning("no .env file loaded: %v", err)
	} else {
		logger.Info(".env loaded")
	}

	cfg := config.GetConfig()
	if err := logger.SetupLogger(logger.Options{
		Level:      cfg.LogLevel,
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Console:    true,
	}); err != nil {
		logger.Warning("keeping default logger: %v", err)
	}

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("failed to open database: %v", err)
		os.Exit(1)
	}

	if cfg.DBMigrationMode == database.MigrationDrop {
		logger.Warning("running in drop mode, every table is recreated")
	}
	if err := database.Migrate(pool.DB, cfg.DBMigrationMode); err != nil {
		logger.Error("migration failed: %v", err)
		os.Exit(1)
	}

	if cfg.SeedDemoUser {
		if err := services.NewUserService(pool.DB, cfg).EnsureDemoUser(context.Background()); err != nil {
			logger.Error("failed to seed demo user: %v", err)
			os.Exit(1)
		}
	}

	serviceContainer := container.NewServiceContainer(pool, cfg, nil, nil)
	handler := routes.SetupRouter(serviceContainer, cfg)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSystemInfo(pool)

	go func() {
		logger.Info("server listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown: %v", err)
	}

	serviceContainer.Close()
	if err := pool.Close(); err != nil {
		logger.Error("close database: %v", err)
	}
	logger.Info("server stopped")
}

func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		logger.Info("database pool: %+v", stats)
	}

	logger.Info("cpus: %d, goroutines: %d", runtime.NumCPU(), runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.Info("memory: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
