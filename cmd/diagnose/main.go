package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	// stdout carries the report
	logger.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		logger.Fatalf("diagnose: %v", err)
	}
}
