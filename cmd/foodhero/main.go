package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"foodhero/internal/app"
	"foodhero/internal/config"
	"foodhero/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	h := app.NewHandler(ctx, cfg, log)

	lambda.Start(h.Handle)
}
