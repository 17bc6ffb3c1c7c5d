package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-backoffice/internal/db"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/salon-backoffice/internal/logging"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
	"github.com/BruksfildServices01/salon-backoffice/internal/routes"
	"github.com/BruksfildServices01/salon-backoffice/internal/storage"
	ucAppointment "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
)

func main() {

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// REALTIME FEED
	// ======================================================
	var feed realtime.Feed = realtime.NewBroker()

	rdb, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("redis unavailable", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		feed = realtime.NewRedisFeed(rdb, cfg.RealtimePrefix, logger)
		logger.Info("realtime feed on redis", zap.String("addr", cfg.RedisAddr))
	}

	// ======================================================
	// DATA GATEWAY
	// ======================================================
	var gw infra.Gateway
	if cfg.InMemory() {
		logger.Warn("using in-memory gateway, data is lost on restart")
		gw = infra.NewMemoryGateway(memory.NewStore().WithFeed(feed).WithLogger(logger))
	} else {
		db, err := dbpkg.NewDB(cfg, logger)
		if err != nil {
			logger.Fatal("database unavailable", zap.Error(err))
		}
		gw = infra.NewGormGateway(db, feed, logger)
	}

	// ======================================================
	// AUDIT
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(gw.Audit), logger)
	defer dispatcher.Close()

	// ======================================================
	// PHOTO STORAGE
	// ======================================================
	var photos ucAppointment.ObjectStore
	if cfg.PhotoUploadsEnabled() {
		photos = storage.NewPhotoStore(storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	} else {
		logger.Warn("S3_BUCKET not set, photo uploads disabled")
	}

	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		Logger:  logger,
		Gateway: gw,
		Audit:   dispatcher,
		Feed:    feed,
		Photos:  photos,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
