package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/formcraft/formcraft-backend/api/routes"
	"github.com/formcraft/formcraft-backend/internal/cart"
	"github.com/formcraft/formcraft-backend/internal/catalog"
	"github.com/formcraft/formcraft-backend/internal/export"
	"github.com/formcraft/formcraft-backend/internal/form"
	"github.com/formcraft/formcraft-backend/internal/submissions"
	"github.com/formcraft/formcraft-backend/pkg/config"
	"github.com/formcraft/formcraft-backend/pkg/db"
	"github.com/formcraft/formcraft-backend/pkg/env"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/migrate"
	"github.com/formcraft/formcraft-backend/pkg/redis"
	"github.com/formcraft/formcraft-backend/pkg/storage/gcs"
)

func main() {
	// Bootstrap logger for the window before config is loaded.
	logg := logger.New(env.Get("FORMCRAFT_LOG_LEVEL", "info"), env.Get("FORMCRAFT_LOG_FORMAT", "json"))

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, dbClient, logg); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	var slipUploader submissions.SlipUploader
	if cfg.GCS.Bucket != "" {
		gcsClient, err := gcs.New(ctx, cfg.GCS)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		slipUploader = gcsClient
	} else {
		logg.Warn(ctx, "gcs bucket not configured, slip uploads disabled")
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(dbClient, catalogRepo, logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	formService, err := form.NewService(form.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(ctx, "failed to create form service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Redis.CartTTL)
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, catalogService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	submissionsService, err := submissions.NewService(
		submissions.NewRepository(dbClient.DB()),
		cartService,
		formService,
		slipUploader,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create submissions service", err)
		os.Exit(1)
	}

	exportService, err := export.NewService(submissionsService, catalogService, formService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create export service", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			catalogService,
			formService,
			cartService,
			submissionsService,
			exportService,
			slipUploader,
		),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
