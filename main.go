package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unibordima/config"
	"unibordima/routes"
	"unibordima/services"
	"unibordima/services/logger"
)

// @title                       Unibordima API
// @version                     1.0
// @description                 Student boarding marketplace: listings, reviews, student accounts and admin back-office.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New("unibordima", cfg.LogLevel)

	if err := run(cfg, appLog); err != nil {
		appLog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLog *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg, appLog)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := config.Migrate(db); err != nil {
		return err
	}

	var cache services.Cache = services.NopCache{}
	rdb, err := config.ConnectRedis(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		cache = services.NewRedisCache(rdb)
	}

	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		return err
	}

	router := config.InitApp(cfg)
	routes.SetupRoutes(router, routes.Deps{
		Config: cfg,
		DB:     db,
		Images: services.NewCloudinaryStore(cld, cfg.CloudinaryFolder),
		Cache:  cache,
		Logger: appLog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
