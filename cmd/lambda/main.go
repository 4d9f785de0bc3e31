package main

import (
	"context"
	"fmt"
	"time"

	"review-studio/internal/config"
	"review-studio/internal/lambdafn"
	"review-studio/internal/logger"
	"review-studio/internal/server"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	deps, err := server.BuildDependencies(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to wire dependencies", zap.Error(err))
	}

	handler := lambdafn.NewAcquireHandler(deps.Acquisition, log)
	lambda.Start(handler.Handle)
}
