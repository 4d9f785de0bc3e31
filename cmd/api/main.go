package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"review-studio/internal/config"
	"review-studio/internal/logger"
	"review-studio/internal/server"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight acquisitions get the same budget as a single response write.
	ctx, cancel := context.WithTimeout(context.Background(), apiServer.WriteTimeout)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")
	done <- true
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting review studio functions",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("bucket", cfg.Storage.Bucket),
	)

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	deps, err := server.BuildDependencies(startupCtx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to wire dependencies", zap.Error(err))
	}

	srv := server.NewServer(cfg, log, deps)

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr), zap.Bool("rate_limited", deps.Redis != nil))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
