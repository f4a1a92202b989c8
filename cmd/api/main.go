package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"simpleq/internal/app/bootstrap"
)

// @title simpleQ API
// @version 1.0
// @description Questions, answers, blacklist moderation and AI provider proxy.
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name X-Session-Token

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Serve HTTP until SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Printf("simpleq api stopped with error: %v", err)
	}
}
