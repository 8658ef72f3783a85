package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"statsdb/api/modules"
	"statsdb/api/routes"
	"statsdb/pkg/config"
	"statsdb/pkg/database"
	"statsdb/pkg/logger"
	"statsdb/pkg/metrics"
	"statsdb/pkg/redis"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// Time given to the in-flight requests when stopping.
const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load the configuration: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Couldn't start the logger: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("rankings api stopped", "error", err)
		appLogger.Close()
		os.Exit(1)
	}
	appLogger.Close()
}

func run(cfg *config.Config, appLogger *logger.Logger) error {
	ctx := context.Background()

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	// Redis is an optional second cache tier.
	var redisClient *redis.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			appLogger.Warn("redis unavailable, caching in memory only", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	gin.SetMode(cfg.Server.Mode)

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(&modules.ModuleDependencies{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Metrics: metrics.New(),
		Logger:  appLogger.Logger,
	})
	if err != nil {
		return fmt.Errorf("couldn't create the module: %w", err)
	}

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.RankingsHandler,
		module.HealthHandler,
		module.Metrics,
	)

	return serve(cfg, router.Engine(), appLogger)
}

// serve runs the http server until SIGINT or SIGTERM, then drains it.
func serve(cfg *config.Config, handler http.Handler, appLogger *logger.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("rankings api listening", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver, "redis", cfg.Redis.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChannel)

	select {
	case err := <-serverErr:
		return err
	case sig := <-signalChannel:
		appLogger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("couldn't stop the server: %w", err)
	}

	archiveLogs(ctx, appLogger)
	return nil
}

// archiveLogs sends the log file of this run to the bucket, if one is configured.
func archiveLogs(ctx context.Context, appLogger *logger.Logger) {
	if !appLogger.ArchivingEnabled() {
		return
	}

	hostname, _ := os.Hostname()
	objectKey := fmt.Sprintf("api/%s/%s.log", hostname, time.Now().Format("2006-01-02-15-04"))
	if err := appLogger.UploadToS3Bucket(ctx, objectKey); err != nil {
		appLogger.Warn("couldn't send the log to s3", "key", objectKey, "error", err)
		return
	}
	appLogger.Info("sent the log to s3", "key", objectKey)
}
